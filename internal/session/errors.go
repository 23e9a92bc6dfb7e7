package session

import "errors"

var (
	// ErrEmptySelection reports a batch open with no questions to serve.
	ErrEmptySelection = errors.New("no questions available for a new batch")

	// ErrBatchNotFound reports an unknown batch id.
	ErrBatchNotFound = errors.New("batch not found")

	// ErrInvalidBatchState reports an operation against a batch whose
	// lifecycle state does not allow it, such as answering a completed batch
	// or finishing one twice.
	ErrInvalidBatchState = errors.New("operation not allowed in current batch state")

	// ErrUnknownQuestion reports an answer for a question that is not part
	// of the batch.
	ErrUnknownQuestion = errors.New("question is not part of the batch")

	// ErrAlreadyAnswered reports a second answer for the same batch question.
	ErrAlreadyAnswered = errors.New("question already answered in this batch")
)
