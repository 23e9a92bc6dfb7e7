// Package mastery stores per-user per-question learning records and the
// append-only answer history.
package mastery

import (
	"time"

	"github.com/k-hayashi/quizloop/internal/schedule"
)

// LearningRecord tracks one user's progress on one question. It carries two
// independent axes: the review schedule (ReviewStage/NextReviewAt) and the
// round flag (CompletedInRound). Round advancement resets the flag without
// touching the schedule.
//
// A record is created lazily on first exposure; absence of a record is the
// brand-new-question signal. Records are never hard-deleted: a data wipe
// resets them to stage 0.
type LearningRecord struct {
	UserID           string         `db:"user_id"`
	QuestionID       string         `db:"question_id"`
	CourseID         string         `db:"course_id"`
	ReviewStage      schedule.Stage `db:"review_stage"`
	NextReviewAt     *time.Time     `db:"next_review_at"`
	CompletedInRound bool           `db:"completed_in_round"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// DueForReview reports whether the record sits in a reviewing stage with a
// review time at or before now and has not been completed this round.
func (r *LearningRecord) DueForReview(now time.Time) bool {
	if !r.ReviewStage.Reviewing() || r.CompletedInRound || r.NextReviewAt == nil {
		return false
	}
	return !now.Before(*r.NextReviewAt)
}

// AnswerHistoryEntry is one submitted answer. Entries are append-only and
// never mutated.
type AnswerHistoryEntry struct {
	ID              int64     `db:"id"`
	UserID          string    `db:"user_id"`
	QuestionID      string    `db:"question_id"`
	CourseID        string    `db:"course_id"`
	BatchID         *string   `db:"batch_id"`
	SubmittedAnswer string    `db:"submitted_answer"`
	IsCorrect       bool      `db:"is_correct"`
	AnsweredAt      time.Time `db:"answered_at"`
}
