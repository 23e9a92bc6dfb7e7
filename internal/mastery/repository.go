package mastery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/k-hayashi/quizloop/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/mastery/mock_repository.go -package=mock_mastery

// Repository defines operations on learning records and answer history.
//
// Upsert is only ever invoked from batch finalization; there is no other
// write path for the review schedule.
type Repository interface {
	// Find returns the record for (user, question), or nil if the user has
	// never been graded on the question.
	Find(ctx context.Context, userID, questionID string) (*LearningRecord, error)

	// FindForUpdate is Find with an exclusive row lock. Inside a
	// transaction it serializes the read-advance-upsert sequence of batch
	// finalization per (user, question); outside one it degrades to Find.
	FindForUpdate(ctx context.Context, userID, questionID string) (*LearningRecord, error)

	// ListByCourse returns all of the user's records in a course.
	ListByCourse(ctx context.Context, userID, courseID string) ([]LearningRecord, error)

	// Upsert inserts or replaces the record keyed by (user, question).
	Upsert(ctx context.Context, record *LearningRecord) error

	// AppendHistory appends answer history entries in one statement.
	AppendHistory(ctx context.Context, entries []*AnswerHistoryEntry) error

	// ListHistoryByCourse returns the user's answer history for a course,
	// oldest first.
	ListHistoryByCourse(ctx context.Context, userID, courseID string) ([]AnswerHistoryEntry, error)

	// ResetRoundFlags clears completed_in_round on every record of the
	// user/course. Called only while a round advances.
	ResetRoundFlags(ctx context.Context, userID, courseID string) error

	// Wipe soft-resets the user's course records to stage 0 with no review
	// time. History is kept.
	Wipe(ctx context.Context, userID, courseID string) error
}

// DBRepository implements Repository using MySQL. It runs over any
// sqlx.ExtContext, so the same code serves both direct access and
// transaction-scoped access during batch finalization.
type DBRepository struct {
	db sqlx.ExtContext
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db sqlx.ExtContext) *DBRepository {
	return &DBRepository{db: db}
}

// Find returns the record for (user, question), or nil when absent.
func (r *DBRepository) Find(ctx context.Context, userID, questionID string) (*LearningRecord, error) {
	return r.find(ctx, userID, questionID, "")
}

// FindForUpdate returns the record for (user, question) under an exclusive
// row lock, so a concurrent finalization touching the same record blocks
// until this transaction commits.
func (r *DBRepository) FindForUpdate(ctx context.Context, userID, questionID string) (*LearningRecord, error) {
	return r.find(ctx, userID, questionID, " FOR UPDATE")
}

func (r *DBRepository) find(ctx context.Context, userID, questionID, locking string) (*LearningRecord, error) {
	var record LearningRecord
	err := sqlx.GetContext(ctx, r.db, &record,
		"SELECT * FROM learning_records WHERE user_id = ? AND question_id = ?"+locking,
		userID, questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load learning record (%s, %s): %w", userID, questionID, err)
	}
	return &record, nil
}

// ListByCourse returns all of the user's records in a course.
func (r *DBRepository) ListByCourse(ctx context.Context, userID, courseID string) ([]LearningRecord, error) {
	var records []LearningRecord
	err := sqlx.SelectContext(ctx, r.db, &records,
		"SELECT * FROM learning_records WHERE user_id = ? AND course_id = ? ORDER BY question_id",
		userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("list learning records (%s, %s): %w", userID, courseID, err)
	}
	return records, nil
}

// Upsert inserts or replaces the record keyed by (user, question).
func (r *DBRepository) Upsert(ctx context.Context, record *LearningRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO learning_records (user_id, question_id, course_id, review_stage, next_review_at, completed_in_round)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			review_stage = VALUES(review_stage),
			next_review_at = VALUES(next_review_at),
			completed_in_round = VALUES(completed_in_round)`,
		record.UserID, record.QuestionID, record.CourseID,
		record.ReviewStage, record.NextReviewAt, record.CompletedInRound)
	if err != nil {
		return fmt.Errorf("upsert learning record (%s, %s): %w", record.UserID, record.QuestionID, err)
	}
	return nil
}

// AppendHistory appends answer history entries with a multi-row insert.
func (r *DBRepository) AppendHistory(ctx context.Context, entries []*AnswerHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	columns := []string{"user_id", "question_id", "course_id", "batch_id", "submitted_answer", "is_correct", "answered_at"}
	query := database.BuildMultiRowInsert("answer_history", columns, len(entries))

	var args []interface{}
	for _, e := range entries {
		args = append(args, e.UserID, e.QuestionID, e.CourseID, e.BatchID, e.SubmittedAnswer, e.IsCorrect, e.AnsweredAt)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append answer history: %w", err)
	}
	return nil
}

// ListHistoryByCourse returns the user's answer history for a course, oldest first.
func (r *DBRepository) ListHistoryByCourse(ctx context.Context, userID, courseID string) ([]AnswerHistoryEntry, error) {
	var entries []AnswerHistoryEntry
	err := sqlx.SelectContext(ctx, r.db, &entries,
		"SELECT * FROM answer_history WHERE user_id = ? AND course_id = ? ORDER BY answered_at, id",
		userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("list answer history (%s, %s): %w", userID, courseID, err)
	}
	return entries, nil
}

// ResetRoundFlags clears completed_in_round for every record of the user/course.
func (r *DBRepository) ResetRoundFlags(ctx context.Context, userID, courseID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE learning_records SET completed_in_round = FALSE WHERE user_id = ? AND course_id = ?",
		userID, courseID)
	if err != nil {
		return fmt.Errorf("reset round flags (%s, %s): %w", userID, courseID, err)
	}
	return nil
}

// Wipe soft-resets the user's course records to stage 0.
func (r *DBRepository) Wipe(ctx context.Context, userID, courseID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE learning_records
		SET review_stage = 0, next_review_at = NULL, completed_in_round = FALSE
		WHERE user_id = ? AND course_id = ?`,
		userID, courseID)
	if err != nil {
		return fmt.Errorf("wipe learning records (%s, %s): %w", userID, courseID, err)
	}
	return nil
}
