package question

import (
	"context"
	"errors"
)

// ErrNotFound reports that no question (or exam set) exists for the given key.
var ErrNotFound = errors.New("question not found")

// Filter narrows a course question listing.
type Filter struct {
	Types         []Type
	DifficultyMin int
	DifficultyMax int
}

//go:generate mockgen -source=catalog.go -destination=../mocks/question/mock_catalog.go -package=mock_question

// Catalog is the read-only question bank the engine consults. Implementations
// are the local database catalog and a remote question-bank service.
type Catalog interface {
	// Get returns the question with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Question, error)

	// List returns the ids of all course questions matching the filter,
	// ordered by question id for determinism.
	List(ctx context.Context, courseID string, filter Filter) ([]string, error)

	// GetFixedSet returns the pre-built exam question list with the given
	// name, in its stored order, or ErrNotFound.
	GetFixedSet(ctx context.Context, courseID string, name string) ([]string, error)
}
