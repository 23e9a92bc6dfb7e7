package schedule

import "time"

// Outcome is the result of grading one answer against the schedule.
// NextReviewAt is nil exactly when Stage is mastered: a mastered record has
// no scheduled review, structurally.
type Outcome struct {
	Stage        Stage
	NextReviewAt *time.Time
}

// Advance computes the stage transition for one graded answer.
//
// Correct answers climb one stage, capping at mastered. A wrong answer sends
// the record to stage 1 no matter how high it was; a learner who has been
// exposed to a question never drops back to stage 0.
func Advance(current Stage, correct bool, now time.Time) Outcome {
	var next Stage
	if correct {
		next = current + 1
		if next > StageMastered {
			next = StageMastered
		}
	} else {
		next = 1
	}

	if next.Mastered() {
		return Outcome{Stage: next}
	}

	due := now.Add(Intervals[next])
	return Outcome{Stage: next, NextReviewAt: &due}
}
