package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/k-hayashi/quizloop/internal/clock"
	"github.com/k-hayashi/quizloop/internal/mastery"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/round"
	"github.com/k-hayashi/quizloop/internal/schedule"
	"github.com/k-hayashi/quizloop/internal/selector"
)

// Manager drives the batch lifecycle. Grading is deferred: answers carry no
// correctness while the batch is open, and every review-schedule write
// happens once, when the batch finishes.
type Manager struct {
	repo             Repository
	catalog          question.Catalog
	selector         selector.Selector
	rounds           round.Repository
	clock            clock.Clock
	defaultBatchSize int
}

// NewManager creates a new Manager.
func NewManager(
	repo Repository,
	catalog question.Catalog,
	sel selector.Selector,
	rounds round.Repository,
	clk clock.Clock,
	defaultBatchSize int,
) *Manager {
	return &Manager{
		repo:             repo,
		catalog:          catalog,
		selector:         sel,
		rounds:           rounds,
		clock:            clk,
		defaultBatchSize: defaultBatchSize,
	}
}

// Open starts a practice batch with questions picked by the selector,
// advancing the round when the current one is exhausted. Returns
// ErrEmptySelection when the course has nothing to serve.
func (m *Manager) Open(ctx context.Context, userID, courseID string, batchSize int) (*Batch, error) {
	if batchSize <= 0 {
		batchSize = m.defaultBatchSize
	}

	questionIDs, err := m.selector.SelectNext(ctx, userID, courseID, batchSize, true)
	if err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		return nil, fmt.Errorf("open batch for (%s, %s): %w", userID, courseID, ErrEmptySelection)
	}
	return m.open(ctx, userID, courseID, ModePractice, questionIDs)
}

// OpenWithQuestions starts a batch over a caller-provided question list, in
// the given order. Exam sourcing uses this after building its set.
func (m *Manager) OpenWithQuestions(ctx context.Context, userID, courseID string, mode Mode, questionIDs []string) (*Batch, error) {
	if len(questionIDs) == 0 {
		return nil, fmt.Errorf("open %s batch for (%s, %s): %w", mode, userID, courseID, ErrEmptySelection)
	}
	return m.open(ctx, userID, courseID, mode, questionIDs)
}

func (m *Manager) open(ctx context.Context, userID, courseID string, mode Mode, questionIDs []string) (*Batch, error) {
	progress, err := m.rounds.Find(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	batch := &Batch{
		ID:          uuid.NewString(),
		UserID:      userID,
		CourseID:    courseID,
		Mode:        mode,
		RoundNumber: progress.CurrentRound,
		BatchSize:   len(questionIDs),
		Status:      StatusInProgress,
		StartedAt:   now,
	}
	if err := m.repo.CreateBatch(ctx, batch, questionIDs); err != nil {
		return nil, err
	}
	if err := m.rounds.Touch(ctx, userID, courseID, now); err != nil {
		return nil, err
	}
	return batch, nil
}

// SubmitAnswer stores an answer without grading it. Each slot accepts one
// answer; later submissions fail with ErrAlreadyAnswered.
func (m *Manager) SubmitAnswer(ctx context.Context, batchID, questionID, answer string) error {
	batch, err := m.repo.FindBatch(ctx, batchID)
	if err != nil {
		return err
	}
	if batch.Status != StatusInProgress {
		return fmt.Errorf("answer batch %s in status %s: %w", batchID, batch.Status, ErrInvalidBatchState)
	}
	return m.repo.RecordAnswer(ctx, batchID, questionID, answer, m.clock.Now())
}

// Finish grades every slot of the batch, unanswered ones as wrong, advances
// the review schedule per question, and marks the batch completed. All
// writes land in one transaction; a second Finish fails with
// ErrInvalidBatchState and changes nothing.
func (m *Manager) Finish(ctx context.Context, batchID string) (*Summary, error) {
	now := m.clock.Now()

	var summary Summary
	err := m.repo.FinalizeBatch(ctx, batchID, now,
		func(ctx context.Context, records mastery.Repository, batch *Batch, answers []BatchAnswer) (*Finalization, error) {
			finalization := &Finalization{}
			for i := range answers {
				answer := answers[i]
				q, err := m.catalog.Get(ctx, answer.QuestionID)
				if err != nil {
					return nil, err
				}

				var submitted string
				if answer.UserAnswer != nil {
					submitted = *answer.UserAnswer
				}
				correct := q.Grade(submitted)
				answer.IsCorrect = &correct

				// The locking read pins the stage for this (user, question)
				// until the transaction commits; a concurrent finalization
				// advancing the same record waits here instead of computing
				// from the same stage.
				currentStage := schedule.StageNew
				record, err := records.FindForUpdate(ctx, batch.UserID, answer.QuestionID)
				if err != nil {
					return nil, err
				}
				if record != nil {
					currentStage = record.ReviewStage
				}
				outcome := schedule.Advance(currentStage, correct, now)

				finalization.Answers = append(finalization.Answers, answer)
				finalization.History = append(finalization.History, &mastery.AnswerHistoryEntry{
					UserID:          batch.UserID,
					QuestionID:      answer.QuestionID,
					CourseID:        batch.CourseID,
					BatchID:         &batch.ID,
					SubmittedAnswer: submitted,
					IsCorrect:       correct,
					AnsweredAt:      now,
				})
				finalization.Records = append(finalization.Records, &mastery.LearningRecord{
					UserID:           batch.UserID,
					QuestionID:       answer.QuestionID,
					CourseID:         batch.CourseID,
					ReviewStage:      outcome.Stage,
					NextReviewAt:     outcome.NextReviewAt,
					CompletedInRound: true,
				})

				summary.Total++
				if correct {
					summary.Correct++
				} else {
					summary.Wrong++
				}
			}
			if summary.Total > 0 {
				summary.Accuracy = float64(summary.Correct) / float64(summary.Total)
			}
			return finalization, nil
		})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetQuestions returns the batch and its questions in position order. While
// the batch is in progress the answer key and grading results are withheld;
// a completed batch returns the full correction.
func (m *Manager) GetQuestions(ctx context.Context, batchID string) (*Batch, []QuestionView, error) {
	batch, err := m.repo.FindBatch(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	answers, err := m.repo.ListAnswers(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}

	completed := batch.Status == StatusCompleted
	views := make([]QuestionView, 0, len(answers))
	for _, answer := range answers {
		q, err := m.catalog.Get(ctx, answer.QuestionID)
		if err != nil {
			return nil, nil, err
		}
		view := QuestionView{
			Position:   answer.Position,
			Question:   *q,
			UserAnswer: answer.UserAnswer,
		}
		if !completed {
			view.Question.CorrectAnswer = ""
			view.Question.Explanation = ""
		} else {
			view.IsCorrect = answer.IsCorrect
		}
		views = append(views, view)
	}
	return batch, views, nil
}
