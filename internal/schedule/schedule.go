// Package schedule implements the forgetting-curve review schedule.
//
// A question moves through nine stages per user: stage 0 is a question the
// user has never answered, stages 1-7 are timed review levels with expanding
// intervals, and stage 8 is mastered and never scheduled again. A correct
// answer moves the record up one stage; a wrong answer drops it back to
// stage 1 regardless of where it was.
package schedule

import "time"

// Stage is a position on the review schedule.
type Stage int

const (
	// StageNew marks a question the user has never been graded on.
	StageNew Stage = 0
	// StageMastered is the terminal stage. Mastered records are never
	// scheduled for review again.
	StageMastered Stage = 8
)

// Intervals maps a review stage (1-7) to the delay in minutes before the
// next review of a record entering that stage.
var Intervals = map[Stage]time.Duration{
	1: 30 * time.Minute,
	2: 720 * time.Minute,
	3: 1440 * time.Minute,
	4: 2880 * time.Minute,
	5: 5760 * time.Minute,
	6: 10080 * time.Minute,
	7: 21600 * time.Minute,
}

// Reviewing reports whether the stage has a scheduled review time (1-7).
func (s Stage) Reviewing() bool {
	return s >= 1 && s < StageMastered
}

// Mastered reports whether the stage is terminal.
func (s Stage) Mastered() bool {
	return s >= StageMastered
}

// Valid reports whether the stage is within the schedule.
func (s Stage) Valid() bool {
	return s >= StageNew && s <= StageMastered
}
