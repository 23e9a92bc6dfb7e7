// Package exam opens exam-mode batches: fixed question sets or random
// extractions with per-type quotas and a difficulty range.
package exam

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/selector"
	"github.com/k-hayashi/quizloop/internal/session"
)

// InsufficientQuestionsError reports that the course cannot satisfy an
// extraction quota. No batch is opened; the caller learns how many questions
// of which type are missing.
type InsufficientQuestionsError struct {
	Type      question.Type
	Shortfall int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("insufficient %s questions: %d short of the requested quota", e.Type, e.Shortfall)
}

// ExtractionSpec describes a random exam draw: how many questions of each
// type, limited to a difficulty range. A zero DifficultyMax means unbounded.
type ExtractionSpec struct {
	Quotas        map[question.Type]int
	DifficultyMin int
	DifficultyMax int
}

// BatchOpener opens a batch over a prepared question list. Satisfied by
// session.Manager.
type BatchOpener interface {
	OpenWithQuestions(ctx context.Context, userID, courseID string, mode session.Mode, questionIDs []string) (*session.Batch, error)
}

// Adapter sources exam batches from the catalog and hands them to the
// session layer.
type Adapter struct {
	catalog  question.Catalog
	selector selector.Selector
	opener   BatchOpener
}

// NewAdapter creates a new Adapter.
func NewAdapter(catalog question.Catalog, sel selector.Selector, opener BatchOpener) *Adapter {
	return &Adapter{catalog: catalog, selector: sel, opener: opener}
}

// OpenExtraction draws a random exam for the given extraction and opens it.
// Each type
// quota samples uniformly without replacement from the questions matching
// the difficulty range; any quota that cannot be filled fails the whole
// extraction with InsufficientQuestionsError.
func (a *Adapter) OpenExtraction(ctx context.Context, userID, courseID string, spec ExtractionSpec) (*session.Batch, error) {
	if err := a.probeRound(ctx, userID, courseID); err != nil {
		return nil, err
	}

	// Deterministic quota order so the same shortfall always surfaces.
	types := make([]question.Type, 0, len(spec.Quotas))
	for t := range spec.Quotas {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var questionIDs []string
	for _, t := range types {
		quota := spec.Quotas[t]
		if quota <= 0 {
			continue
		}

		pool, err := a.catalog.List(ctx, courseID, question.Filter{
			Types:         []question.Type{t},
			DifficultyMin: spec.DifficultyMin,
			DifficultyMax: spec.DifficultyMax,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s questions: %w", t, err)
		}
		if len(pool) < quota {
			return nil, &InsufficientQuestionsError{Type: t, Shortfall: quota - len(pool)}
		}

		rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		questionIDs = append(questionIDs, pool[:quota]...)
	}

	return a.opener.OpenWithQuestions(ctx, userID, courseID, session.ModeExam, questionIDs)
}

// OpenFixedSet opens an exam over a pre-built question set, optionally
// shuffled. An unknown set name surfaces question.ErrNotFound.
func (a *Adapter) OpenFixedSet(ctx context.Context, userID, courseID, name string, shuffle bool) (*session.Batch, error) {
	if err := a.probeRound(ctx, userID, courseID); err != nil {
		return nil, err
	}

	questionIDs, err := a.catalog.GetFixedSet(ctx, courseID, name)
	if err != nil {
		return nil, fmt.Errorf("load exam set %q: %w", name, err)
	}
	if shuffle {
		rand.Shuffle(len(questionIDs), func(i, j int) {
			questionIDs[i], questionIDs[j] = questionIDs[j], questionIDs[i]
		})
	}
	return a.opener.OpenWithQuestions(ctx, userID, courseID, session.ModeExam, questionIDs)
}

// probeRound runs a one-question selection with round advancement enabled,
// so an exam taken right when a round is exhausted still rolls the round
// over before the batch opens. The picked id is discarded.
func (a *Adapter) probeRound(ctx context.Context, userID, courseID string) error {
	if _, err := a.selector.SelectNext(ctx, userID, courseID, 1, true); err != nil {
		return fmt.Errorf("round probe for (%s, %s): %w", userID, courseID, err)
	}
	return nil
}
