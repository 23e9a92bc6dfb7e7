package datasync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/question"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	QuestionsNew     int
	QuestionsSkipped int
	QuestionsUpdated int
	ExamSetsNew      int
	ExamSetsReplaced int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes course content into the database.
type Importer struct {
	db     *sqlx.DB
	writer io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(db *sqlx.DB, writer io.Writer) *Importer {
	return &Importer{db: db, writer: writer}
}

// ImportCourse imports a course file in one transaction. Existing questions
// are skipped unless UpdateExisting is set; exam sets are replaced as a
// whole. DryRun classifies everything and rolls the transaction back.
func (imp *Importer) ImportCourse(ctx context.Context, course *CourseFile, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}
	dryRun := errors.New("dry run")

	err := database.RunInTx(ctx, imp.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, spec := range course.Questions {
			if err := imp.importQuestion(ctx, tx, course.CourseID, spec, opts, result); err != nil {
				return err
			}
		}
		for _, set := range course.ExamSets {
			if err := imp.importExamSet(ctx, tx, course.CourseID, set, result); err != nil {
				return err
			}
		}
		if opts.DryRun {
			return dryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, dryRun) {
		return nil, err
	}
	return result, nil
}

func (imp *Importer) importQuestion(ctx context.Context, tx *sqlx.Tx, courseID string, spec QuestionSpec, opts ImportOptions, result *ImportResult) error {
	var existingID string
	err := tx.GetContext(ctx, &existingID, "SELECT id FROM questions WHERE id = ?", spec.ID)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check question %s: %w", spec.ID, err)
	}

	switch {
	case !exists:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, course_id, type, prompt, options, correct_answer, explanation, difficulty)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			spec.ID, courseID, spec.Type, spec.Prompt, question.Options(spec.Options),
			spec.CorrectAnswer, spec.Explanation, spec.Difficulty)
		if err != nil {
			return fmt.Errorf("insert question %s: %w", spec.ID, err)
		}
		result.QuestionsNew++
	case opts.UpdateExisting:
		_, err := tx.ExecContext(ctx,
			`UPDATE questions
			SET course_id = ?, type = ?, prompt = ?, options = ?, correct_answer = ?, explanation = ?, difficulty = ?
			WHERE id = ?`,
			courseID, spec.Type, spec.Prompt, question.Options(spec.Options),
			spec.CorrectAnswer, spec.Explanation, spec.Difficulty, spec.ID)
		if err != nil {
			return fmt.Errorf("update question %s: %w", spec.ID, err)
		}
		result.QuestionsUpdated++
	default:
		result.QuestionsSkipped++
	}
	return nil
}

func (imp *Importer) importExamSet(ctx context.Context, tx *sqlx.Tx, courseID string, set ExamSetSpec, result *ImportResult) error {
	var setID int64
	err := tx.GetContext(ctx, &setID,
		"SELECT id FROM exam_sets WHERE course_id = ? AND name = ?", courseID, set.Name)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check exam set %s: %w", set.Name, err)
	}

	if exists {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM exam_set_questions WHERE exam_set_id = ?", setID); err != nil {
			return fmt.Errorf("clear exam set %s: %w", set.Name, err)
		}
		result.ExamSetsReplaced++
	} else {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO exam_sets (course_id, name) VALUES (?, ?)", courseID, set.Name)
		if err != nil {
			return fmt.Errorf("insert exam set %s: %w", set.Name, err)
		}
		setID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("exam set %s id: %w", set.Name, err)
		}
		result.ExamSetsNew++
	}

	if len(set.Questions) == 0 {
		return nil
	}
	columns := []string{"exam_set_id", "question_id", "position"}
	query := database.BuildMultiRowInsert("exam_set_questions", columns, len(set.Questions))
	var args []interface{}
	for i, questionID := range set.Questions {
		args = append(args, setID, questionID, i+1)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert exam set questions for %s: %w", set.Name, err)
	}
	return nil
}

// PrintSummary writes a human-readable import summary.
func (imp *Importer) PrintSummary(result *ImportResult, opts ImportOptions) {
	fmt.Fprintln(imp.writer, "\nImport Summary:")
	if opts.DryRun {
		fmt.Fprintln(imp.writer, "  (dry run, no changes made)")
	}
	fmt.Fprintf(imp.writer, "  Questions: %d new, %d skipped, %d updated\n",
		result.QuestionsNew, result.QuestionsSkipped, result.QuestionsUpdated)
	fmt.Fprintf(imp.writer, "  Exam sets: %d new, %d replaced\n",
		result.ExamSetsNew, result.ExamSetsReplaced)
}
