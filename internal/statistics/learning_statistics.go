package statistics

import (
	"fmt"
	"sort"

	"github.com/k-hayashi/quizloop/internal/mastery"
	"github.com/k-hayashi/quizloop/internal/schedule"
)

// MonthlyStatistics holds study statistics for one month
type MonthlyStatistics struct {
	Period        string  // "2025-01"
	Attempts      int     // Total graded answers
	Correct       int     // Correct answers
	Accuracy      float64 // Correct / Attempts
	NewlyMastered int     // Questions that reached the mastered stage this month
}

// AggregateStatistics holds totals across all periods
type AggregateStatistics struct {
	Attempts      int
	Correct       int
	Accuracy      float64
	NewlyMastered int
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []MonthlyStatistics
	Aggregate AggregateStatistics
}

// periodData tracks counts per period
type periodData struct {
	attempts      int
	correct       int
	newlyMastered int
}

// CalculateStatistics aggregates a user's answer history per month. It
// accepts optional year and month filters (0 means no filter).
//
// Mastery transitions are recovered by replaying the review schedule over
// the history in submission order, so a question counts as newly mastered in
// the month its answer first pushed it to the terminal stage. The replay
// always covers the full history; the filter only limits which months are
// reported.
func CalculateStatistics(entries []mastery.AnswerHistoryEntry, year, month int) StatisticsResult {
	sorted := make([]mastery.AnswerHistoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AnsweredAt.Before(sorted[j].AnsweredAt)
	})

	stats := make(map[string]*periodData)
	stages := make(map[string]schedule.Stage)
	mastered := make(map[string]bool)
	aggregate := AggregateStatistics{}

	for _, entry := range sorted {
		outcome := schedule.Advance(stages[entry.QuestionID], entry.IsCorrect, entry.AnsweredAt)
		stages[entry.QuestionID] = outcome.Stage

		newlyMastered := outcome.Stage.Mastered() && !mastered[entry.QuestionID]
		if newlyMastered {
			mastered[entry.QuestionID] = true
		}

		if !matchesFilter(entry.AnsweredAt.Year(), int(entry.AnsweredAt.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", entry.AnsweredAt.Year(), int(entry.AnsweredAt.Month()))
		if stats[period] == nil {
			stats[period] = &periodData{}
		}

		stats[period].attempts++
		aggregate.Attempts++
		if entry.IsCorrect {
			stats[period].correct++
			aggregate.Correct++
		}
		if newlyMastered {
			stats[period].newlyMastered++
			aggregate.NewlyMastered++
		}
	}

	return buildResult(stats, aggregate)
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func buildResult(stats map[string]*periodData, aggregate AggregateStatistics) StatisticsResult {
	periods := make([]MonthlyStatistics, 0, len(stats))
	for period, data := range stats {
		periods = append(periods, MonthlyStatistics{
			Period:        period,
			Attempts:      data.attempts,
			Correct:       data.correct,
			Accuracy:      accuracy(data.correct, data.attempts),
			NewlyMastered: data.newlyMastered,
		})
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})

	aggregate.Accuracy = accuracy(aggregate.Correct, aggregate.Attempts)
	return StatisticsResult{Periods: periods, Aggregate: aggregate}
}

func accuracy(correct, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return float64(correct) / float64(attempts)
}
