package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/k-hayashi/quizloop/internal/mastery"
)

func mustParseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func answered(questionID, date string, correct bool) mastery.AnswerHistoryEntry {
	return mastery.AnswerHistoryEntry{
		UserID:     "u1",
		QuestionID: questionID,
		CourseID:   "c1",
		IsCorrect:  correct,
		AnsweredAt: mustParseDate(date),
	}
}

func TestCalculateStatistics(t *testing.T) {
	tests := []struct {
		name              string
		entries           []mastery.AnswerHistoryEntry
		year              int
		month             int
		expectedPeriods   []MonthlyStatistics
		expectedAggregate AggregateStatistics
	}{
		{
			name: "single month mixes correct and wrong",
			entries: []mastery.AnswerHistoryEntry{
				answered("q1", "2025-01-15", true),
				answered("q2", "2025-01-16", false),
				answered("q2", "2025-01-18", true),
				answered("q3", "2025-01-20", true),
			},
			expectedPeriods: []MonthlyStatistics{
				{Period: "2025-01", Attempts: 4, Correct: 3, Accuracy: 0.75},
			},
			expectedAggregate: AggregateStatistics{Attempts: 4, Correct: 3, Accuracy: 0.75},
		},
		{
			name: "attempts split across months, newest first",
			entries: []mastery.AnswerHistoryEntry{
				answered("q1", "2025-01-15", true),
				answered("q1", "2025-02-10", true),
				answered("q2", "2025-02-12", false),
			},
			expectedPeriods: []MonthlyStatistics{
				{Period: "2025-02", Attempts: 2, Correct: 1, Accuracy: 0.5},
				{Period: "2025-01", Attempts: 1, Correct: 1, Accuracy: 1},
			},
			expectedAggregate: AggregateStatistics{Attempts: 3, Correct: 2, Accuracy: 2.0 / 3.0},
		},
		{
			name: "eight straight correct answers master a question once",
			entries: []mastery.AnswerHistoryEntry{
				answered("q1", "2025-01-01", true),
				answered("q1", "2025-01-05", true),
				answered("q1", "2025-01-10", true),
				answered("q1", "2025-01-15", true),
				answered("q1", "2025-01-20", true),
				answered("q1", "2025-02-01", true),
				answered("q1", "2025-02-10", true),
				answered("q1", "2025-03-01", true),
				// already mastered; stays mastered, no second count
				answered("q1", "2025-03-10", true),
			},
			expectedPeriods: []MonthlyStatistics{
				{Period: "2025-03", Attempts: 2, Correct: 2, Accuracy: 1, NewlyMastered: 1},
				{Period: "2025-02", Attempts: 2, Correct: 2, Accuracy: 1},
				{Period: "2025-01", Attempts: 5, Correct: 5, Accuracy: 1},
			},
			expectedAggregate: AggregateStatistics{Attempts: 9, Correct: 9, Accuracy: 1, NewlyMastered: 1},
		},
		{
			name: "a wrong answer resets the climb to mastery",
			entries: []mastery.AnswerHistoryEntry{
				answered("q1", "2025-01-01", true),
				answered("q1", "2025-01-02", true),
				answered("q1", "2025-01-03", true),
				answered("q1", "2025-01-04", true),
				answered("q1", "2025-01-05", true),
				answered("q1", "2025-01-06", true),
				answered("q1", "2025-01-07", true),
				answered("q1", "2025-01-08", false), // back to stage 1
				answered("q1", "2025-01-09", true),
			},
			expectedPeriods: []MonthlyStatistics{
				{Period: "2025-01", Attempts: 9, Correct: 8, Accuracy: 8.0 / 9.0},
			},
			expectedAggregate: AggregateStatistics{Attempts: 9, Correct: 8, Accuracy: 8.0 / 9.0},
		},
		{
			name: "month filter reports one period but replays the whole history",
			entries: []mastery.AnswerHistoryEntry{
				answered("q1", "2024-10-01", true),
				answered("q1", "2024-11-01", true),
				answered("q1", "2024-12-01", true),
				answered("q1", "2024-12-10", true),
				answered("q1", "2024-12-20", true),
				answered("q1", "2025-01-02", true),
				answered("q1", "2025-01-10", true),
				answered("q1", "2025-01-20", true), // eighth correct: mastered in the filtered month
			},
			year:  2025,
			month: 1,
			expectedPeriods: []MonthlyStatistics{
				{Period: "2025-01", Attempts: 3, Correct: 3, Accuracy: 1, NewlyMastered: 1},
			},
			expectedAggregate: AggregateStatistics{Attempts: 3, Correct: 3, Accuracy: 1, NewlyMastered: 1},
		},
		{
			name:              "no history",
			entries:           nil,
			expectedPeriods:   []MonthlyStatistics{},
			expectedAggregate: AggregateStatistics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateStatistics(tt.entries, tt.year, tt.month)
			assert.Equal(t, tt.expectedPeriods, result.Periods)
			assert.Equal(t, tt.expectedAggregate, result.Aggregate)
		})
	}
}
