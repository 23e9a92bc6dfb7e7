package round

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/mastery"
)

//go:generate mockgen -source=repository.go -destination=../mocks/round/mock_repository.go -package=mock_round

// Repository defines round progress operations.
type Repository interface {
	// Find returns the user's round progress for a course. A user who has
	// never studied the course gets round 1 with zero completions; no row
	// is created.
	Find(ctx context.Context, userID, courseID string) (*Progress, error)

	// Touch records study activity at the given time.
	Touch(ctx context.Context, userID, courseID string, at time.Time) error

	// Advance moves the user to the next round, guarded by the round the
	// caller observed when it decided no eligible questions remained. In the
	// same transaction it clears completed_in_round on every record of the
	// user/course. A lost race returns database.ErrConflict and changes
	// nothing, so two racing advances produce exactly one increment.
	Advance(ctx context.Context, userID, courseID string, observedRound int) (*Progress, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Find returns the user's round progress, defaulting to round 1 when absent.
func (r *DBRepository) Find(ctx context.Context, userID, courseID string) (*Progress, error) {
	var progress Progress
	err := r.db.GetContext(ctx, &progress,
		"SELECT * FROM round_progress WHERE user_id = ? AND course_id = ?",
		userID, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return &Progress{UserID: userID, CourseID: courseID, CurrentRound: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load round progress (%s, %s): %w", userID, courseID, err)
	}
	return &progress, nil
}

// Touch records study activity at the given time.
func (r *DBRepository) Touch(ctx context.Context, userID, courseID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO round_progress (user_id, course_id, current_round, total_rounds_completed, last_studied_at)
		VALUES (?, ?, 1, 0, ?)
		ON DUPLICATE KEY UPDATE last_studied_at = VALUES(last_studied_at)`,
		userID, courseID, at)
	if err != nil {
		return fmt.Errorf("touch round progress (%s, %s): %w", userID, courseID, err)
	}
	return nil
}

// Advance increments the round exactly once for the observed state.
func (r *DBRepository) Advance(ctx context.Context, userID, courseID string, observedRound int) (*Progress, error) {
	var progress Progress
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE round_progress
			SET current_round = current_round + 1, total_rounds_completed = total_rounds_completed + 1
			WHERE user_id = ? AND course_id = ? AND current_round = ?`,
			userID, courseID, observedRound)
		if err != nil {
			return fmt.Errorf("advance round (%s, %s): %w", userID, courseID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("advance round rows affected: %w", err)
		}

		if affected == 0 {
			// No row yet means the user is implicitly in round 1; create the
			// row already advanced. A duplicate key here is a lost race.
			if observedRound != 1 {
				return fmt.Errorf("advance round (%s, %s): %w", userID, courseID, database.ErrConflict)
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO round_progress (user_id, course_id, current_round, total_rounds_completed)
				VALUES (?, ?, 2, 1)`,
				userID, courseID)
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
				return fmt.Errorf("advance round (%s, %s): %w", userID, courseID, database.ErrConflict)
			}
			if err != nil {
				return fmt.Errorf("create advanced round progress (%s, %s): %w", userID, courseID, err)
			}
		}

		if err := mastery.NewDBRepository(tx).ResetRoundFlags(ctx, userID, courseID); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &progress,
			"SELECT * FROM round_progress WHERE user_id = ? AND course_id = ?",
			userID, courseID); err != nil {
			return fmt.Errorf("reload round progress (%s, %s): %w", userID, courseID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
