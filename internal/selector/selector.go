// Package selector picks the next questions a user should study, combining
// the review schedule, round progress, and the course catalog.
package selector

import (
	"context"
	"fmt"
	"sort"

	"github.com/k-hayashi/quizloop/internal/clock"
	"github.com/k-hayashi/quizloop/internal/mastery"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/round"
)

//go:generate mockgen -source=selector.go -destination=../mocks/selector/mock_selector.go -package=mock_selector

// Selector produces an ordered candidate set of question ids for a user.
type Selector interface {
	// SelectNext returns up to batchSize question ids in strict priority
	// order: due reviews, then questions not yet completed this round, then
	// brand-new questions. When every tier is empty and allowNewRound is
	// true, the round advances and tiers 2 and 3 run once more against the
	// reset flags. An empty result is not an error.
	SelectNext(ctx context.Context, userID, courseID string, batchSize int, allowNewRound bool) ([]string, error)
}

// Service implements Selector over the catalog and the persistence layer.
type Service struct {
	catalog question.Catalog
	records mastery.Repository
	rounds  round.Repository
	clock   clock.Clock
}

// NewService creates a new Service.
func NewService(catalog question.Catalog, records mastery.Repository, rounds round.Repository, clk clock.Clock) *Service {
	return &Service{catalog: catalog, records: records, rounds: rounds, clock: clk}
}

// SelectNext implements the tiered priority policy.
func (s *Service) SelectNext(ctx context.Context, userID, courseID string, batchSize int, allowNewRound bool) ([]string, error) {
	if batchSize <= 0 {
		return nil, nil
	}

	courseIDs, err := s.catalog.List(ctx, courseID, question.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list course questions: %w", err)
	}
	// A course with no questions never yields candidates and never advances
	// the round.
	if len(courseIDs) == 0 {
		return nil, nil
	}

	selected, err := s.selectTiers(ctx, userID, courseID, courseIDs, batchSize, true)
	if err != nil {
		return nil, err
	}
	if len(selected) > 0 || !allowNewRound {
		return selected, nil
	}

	progress, err := s.rounds.Find(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.rounds.Advance(ctx, userID, courseID, progress.CurrentRound); err != nil {
		return nil, err
	}

	// After the advance only tiers 2 and 3 rerun: every record was reset to
	// not-completed, so ordering is purely by stage, review time, then id.
	return s.selectTiers(ctx, userID, courseID, courseIDs, batchSize, false)
}

// selectTiers runs the priority tiers against the current persisted state,
// exhausting each tier before consulting the next and never repeating a
// question. With dueFirst, records due for review form their own leading
// tier; without it they order among the rest.
func (s *Service) selectTiers(ctx context.Context, userID, courseID string, courseIDs []string, batchSize int, dueFirst bool) ([]string, error) {
	records, err := s.records.ListByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	inCourse := make(map[string]bool, len(courseIDs))
	for _, id := range courseIDs {
		inCourse[id] = true
	}
	// Records can outlive catalog membership; drop ones whose question no
	// longer lists.
	byID := make(map[string]*mastery.LearningRecord, len(records))
	for i := range records {
		if inCourse[records[i].QuestionID] {
			byID[records[i].QuestionID] = &records[i]
		}
	}

	now := s.clock.Now()

	var due, pending []*mastery.LearningRecord
	for _, record := range byID {
		if dueFirst && record.DueForReview(now) {
			due = append(due, record)
		} else if !record.CompletedInRound {
			pending = append(pending, record)
		}
	}
	sortRecords(due)
	sortRecords(pending)

	taken := make(map[string]bool, batchSize)
	var selected []string
	take := func(id string) bool {
		if taken[id] {
			return len(selected) < batchSize
		}
		taken[id] = true
		selected = append(selected, id)
		return len(selected) < batchSize
	}

	for _, record := range due {
		if !take(record.QuestionID) {
			return selected, nil
		}
	}
	for _, record := range pending {
		if !take(record.QuestionID) {
			return selected, nil
		}
	}
	// Brand-new questions have no record at all; courseIDs is already in id
	// order.
	for _, id := range courseIDs {
		if _, seen := byID[id]; seen {
			continue
		}
		if !take(id) {
			return selected, nil
		}
	}
	return selected, nil
}

// sortRecords orders by ascending stage, then earliest review time, then
// question id. A missing review time sorts after any concrete one.
func sortRecords(records []*mastery.LearningRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ReviewStage != b.ReviewStage {
			return a.ReviewStage < b.ReviewStage
		}
		switch {
		case a.NextReviewAt == nil && b.NextReviewAt != nil:
			return false
		case a.NextReviewAt != nil && b.NextReviewAt == nil:
			return true
		case a.NextReviewAt != nil && b.NextReviewAt != nil && !a.NextReviewAt.Equal(*b.NextReviewAt):
			return a.NextReviewAt.Before(*b.NextReviewAt)
		}
		return a.QuestionID < b.QuestionID
	})
}
