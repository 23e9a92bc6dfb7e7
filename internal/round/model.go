// Package round tracks per-user per-course study rounds. A round is one full
// pass through a course's question pool; it advances only when no eligible
// questions remain.
package round

import "time"

// Progress is the round counter for one user and course. A user with no row
// is implicitly in round 1 with nothing completed.
type Progress struct {
	UserID               string     `db:"user_id"`
	CourseID             string     `db:"course_id"`
	CurrentRound         int        `db:"current_round"`
	TotalRoundsCompleted int        `db:"total_rounds_completed"`
	LastStudiedAt        *time.Time `db:"last_studied_at"`
}
