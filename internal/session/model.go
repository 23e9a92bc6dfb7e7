// Package session manages batch study sessions: a fixed set of questions the
// user answers in any order, graded all at once when the batch finishes.
package session

import (
	"time"

	"github.com/k-hayashi/quizloop/internal/question"
)

// Mode distinguishes how a batch was sourced.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeExam     Mode = "exam"
)

// Status is the batch lifecycle state. Completed is terminal.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Batch is one study session. Its question set is fixed at open time.
type Batch struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	CourseID    string     `db:"course_id" json:"course_id"`
	Mode        Mode       `db:"mode" json:"mode"`
	RoundNumber int        `db:"round_number" json:"round_number"`
	BatchSize   int        `db:"batch_size" json:"batch_size"`
	Status      Status     `db:"status" json:"status"`
	StartedAt   time.Time  `db:"started_at" json:"started_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// BatchAnswer is the per-question slot of a batch. UserAnswer stays nil until
// the learner submits; IsCorrect stays nil until the batch finishes.
type BatchAnswer struct {
	BatchID    string     `db:"batch_id" json:"batch_id"`
	QuestionID string     `db:"question_id" json:"question_id"`
	Position   int        `db:"position" json:"position"`
	UserAnswer *string    `db:"user_answer" json:"user_answer,omitempty"`
	IsCorrect  *bool      `db:"is_correct" json:"is_correct,omitempty"`
	AnsweredAt *time.Time `db:"answered_at" json:"answered_at,omitempty"`
}

// Summary is the result of a finished batch.
type Summary struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Accuracy float64 `json:"accuracy"`
}

// QuestionView is a batch question as shown to the learner. While the batch
// is in progress the answer-key fields of Question and the grading result are
// left empty; they are populated only once the batch has completed.
type QuestionView struct {
	Position   int               `json:"position"`
	Question   question.Question `json:"question"`
	UserAnswer *string           `json:"user_answer,omitempty"`
	IsCorrect  *bool             `json:"is_correct,omitempty"`
}
