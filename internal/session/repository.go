package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/mastery"
)

//go:generate mockgen -source=repository.go -destination=../mocks/session/mock_repository.go -package=mock_session

// Finalization is everything a finishing batch writes: the graded answer
// slots, the history entries, and the advanced learning records. It is
// applied in a single transaction or not at all.
type Finalization struct {
	Answers []BatchAnswer
	History []*mastery.AnswerHistoryEntry
	Records []*mastery.LearningRecord
}

// Repository persists batches and their answer slots.
type Repository interface {
	// CreateBatch inserts the batch and one answer slot per question, in the
	// given order, atomically.
	CreateBatch(ctx context.Context, batch *Batch, questionIDs []string) error

	// FindBatch returns the batch with the given id, or ErrBatchNotFound.
	FindBatch(ctx context.Context, id string) (*Batch, error)

	// ListAnswers returns the batch's answer slots ordered by position.
	ListAnswers(ctx context.Context, batchID string) ([]BatchAnswer, error)

	// RecordAnswer stores the answer for one slot. The write succeeds only
	// while the batch is in progress and the slot has not been answered;
	// otherwise ErrInvalidBatchState, ErrAlreadyAnswered or
	// ErrUnknownQuestion.
	RecordAnswer(ctx context.Context, batchID, questionID, answer string, at time.Time) error

	// FinalizeBatch completes the batch in one transaction: it locks the
	// batch row, rejects anything but an in-progress batch, reads the answer
	// slots, calls grade to compute the outcome, then writes grading results,
	// history, learning records and the completed status together. The
	// records repository handed to grade is scoped to the same transaction,
	// so stage reads for the advancement happen under its locks.
	FinalizeBatch(ctx context.Context, batchID string, completedAt time.Time,
		grade func(ctx context.Context, records mastery.Repository, batch *Batch, answers []BatchAnswer) (*Finalization, error)) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// CreateBatch inserts the batch and its answer slots atomically.
func (r *DBRepository) CreateBatch(ctx context.Context, batch *Batch, questionIDs []string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO batches (id, user_id, course_id, mode, round_number, batch_size, status, started_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			batch.ID, batch.UserID, batch.CourseID, batch.Mode,
			batch.RoundNumber, batch.BatchSize, batch.Status, batch.StartedAt)
		if err != nil {
			return fmt.Errorf("insert batch %s: %w", batch.ID, err)
		}

		columns := []string{"batch_id", "question_id", "position"}
		query := database.BuildMultiRowInsert("batch_answers", columns, len(questionIDs))
		var args []interface{}
		for i, questionID := range questionIDs {
			args = append(args, batch.ID, questionID, i+1)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert batch answers for %s: %w", batch.ID, err)
		}
		return nil
	})
}

// FindBatch returns the batch with the given id.
func (r *DBRepository) FindBatch(ctx context.Context, id string) (*Batch, error) {
	var batch Batch
	err := r.db.GetContext(ctx, &batch, "SELECT * FROM batches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("batch %s: %w", id, ErrBatchNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load batch %s: %w", id, err)
	}
	return &batch, nil
}

// ListAnswers returns the batch's answer slots ordered by position.
func (r *DBRepository) ListAnswers(ctx context.Context, batchID string) ([]BatchAnswer, error) {
	var answers []BatchAnswer
	err := r.db.SelectContext(ctx, &answers,
		"SELECT * FROM batch_answers WHERE batch_id = ? ORDER BY position", batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch answers %s: %w", batchID, err)
	}
	return answers, nil
}

// RecordAnswer stores the answer for one slot via a conditional update.
// Joining the batch row makes the write block on the batch lock a running
// finalization holds, so a submit racing Finish either lands before the
// answers are read or fails after completion; the answered guard accepts
// exactly one of two concurrent submits for the same slot.
func (r *DBRepository) RecordAnswer(ctx context.Context, batchID, questionID, answer string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE batch_answers ba
		JOIN batches b ON b.id = ba.batch_id
		SET ba.user_answer = ?, ba.answered_at = ?
		WHERE ba.batch_id = ? AND ba.question_id = ? AND ba.user_answer IS NULL AND b.status = ?`,
		answer, at, batchID, questionID, StatusInProgress)
	if err != nil {
		return fmt.Errorf("record answer (%s, %s): %w", batchID, questionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record answer rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var slot struct {
		Answered bool   `db:"answered"`
		Status   Status `db:"status"`
	}
	err = r.db.GetContext(ctx, &slot,
		`SELECT ba.user_answer IS NOT NULL AS answered, b.status AS status
		FROM batch_answers ba
		JOIN batches b ON b.id = ba.batch_id
		WHERE ba.batch_id = ? AND ba.question_id = ?`,
		batchID, questionID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("answer (%s, %s): %w", batchID, questionID, ErrUnknownQuestion)
	}
	if err != nil {
		return fmt.Errorf("check batch answer slot (%s, %s): %w", batchID, questionID, err)
	}
	if slot.Answered {
		return fmt.Errorf("answer (%s, %s): %w", batchID, questionID, ErrAlreadyAnswered)
	}
	return fmt.Errorf("answer batch %s in status %s: %w", batchID, slot.Status, ErrInvalidBatchState)
}

// FinalizeBatch completes the batch in a single transaction.
func (r *DBRepository) FinalizeBatch(ctx context.Context, batchID string, completedAt time.Time,
	grade func(ctx context.Context, records mastery.Repository, batch *Batch, answers []BatchAnswer) (*Finalization, error)) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var batch Batch
		err := tx.GetContext(ctx, &batch, "SELECT * FROM batches WHERE id = ? FOR UPDATE", batchID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("batch %s: %w", batchID, ErrBatchNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock batch %s: %w", batchID, err)
		}
		if batch.Status != StatusInProgress {
			return fmt.Errorf("finish batch %s in status %s: %w", batchID, batch.Status, ErrInvalidBatchState)
		}

		var answers []BatchAnswer
		if err := tx.SelectContext(ctx, &answers,
			"SELECT * FROM batch_answers WHERE batch_id = ? ORDER BY position", batchID); err != nil {
			return fmt.Errorf("list batch answers %s: %w", batchID, err)
		}

		records := mastery.NewDBRepository(tx)
		finalization, err := grade(ctx, records, &batch, answers)
		if err != nil {
			return err
		}

		for _, answer := range finalization.Answers {
			if _, err := tx.ExecContext(ctx,
				"UPDATE batch_answers SET is_correct = ? WHERE batch_id = ? AND question_id = ?",
				answer.IsCorrect, answer.BatchID, answer.QuestionID); err != nil {
				return fmt.Errorf("grade batch answer (%s, %s): %w", answer.BatchID, answer.QuestionID, err)
			}
		}

		if err := records.AppendHistory(ctx, finalization.History); err != nil {
			return err
		}
		for _, record := range finalization.Records {
			if err := records.Upsert(ctx, record); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE batches SET status = ?, completed_at = ? WHERE id = ?",
			StatusCompleted, completedAt, batchID); err != nil {
			return fmt.Errorf("complete batch %s: %w", batchID, err)
		}
		return nil
	})
}
