package session_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/k-hayashi/quizloop/internal/clock"
	"github.com/k-hayashi/quizloop/internal/mastery"
	mock_mastery "github.com/k-hayashi/quizloop/internal/mocks/mastery"
	mock_question "github.com/k-hayashi/quizloop/internal/mocks/question"
	mock_round "github.com/k-hayashi/quizloop/internal/mocks/round"
	mock_selector "github.com/k-hayashi/quizloop/internal/mocks/selector"
	mock_session "github.com/k-hayashi/quizloop/internal/mocks/session"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/round"
	"github.com/k-hayashi/quizloop/internal/schedule"
	. "github.com/k-hayashi/quizloop/internal/session"
)

type managerMocks struct {
	repo     *mock_session.MockRepository
	catalog  *mock_question.MockCatalog
	selector *mock_selector.MockSelector
	records  *mock_mastery.MockRepository
	rounds   *mock_round.MockRepository
}

func newManager(t *testing.T, now time.Time) (*Manager, managerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := managerMocks{
		repo:     mock_session.NewMockRepository(ctrl),
		catalog:  mock_question.NewMockCatalog(ctrl),
		selector: mock_selector.NewMockSelector(ctrl),
		records:  mock_mastery.NewMockRepository(ctrl),
		rounds:   mock_round.NewMockRepository(ctrl),
	}
	manager := NewManager(m.repo, m.catalog, m.selector, m.rounds, clock.Fixed(now), 20)
	return manager, m
}

func TestManager_Open(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("opens a practice batch from the selector", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 5, true).
			Return([]string{"q2", "q1"}, nil)
		m.rounds.EXPECT().Find(gomock.Any(), "u1", "c1").
			Return(&round.Progress{UserID: "u1", CourseID: "c1", CurrentRound: 2}, nil)
		m.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), []string{"q2", "q1"}).
			Return(nil)
		m.rounds.EXPECT().Touch(gomock.Any(), "u1", "c1", now).Return(nil)

		batch, err := manager.Open(context.Background(), "u1", "c1", 5)
		require.NoError(t, err)
		_, err = uuid.Parse(batch.ID)
		assert.NoError(t, err)
		assert.Equal(t, ModePractice, batch.Mode)
		assert.Equal(t, StatusInProgress, batch.Status)
		assert.Equal(t, 2, batch.RoundNumber)
		assert.Equal(t, 2, batch.BatchSize)
		assert.Equal(t, now, batch.StartedAt)
		assert.Nil(t, batch.CompletedAt)
	})

	t.Run("zero batch size falls back to the configured default", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 20, true).
			Return([]string{"q1"}, nil)
		m.rounds.EXPECT().Find(gomock.Any(), "u1", "c1").
			Return(&round.Progress{CurrentRound: 1}, nil)
		m.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), []string{"q1"}).Return(nil)
		m.rounds.EXPECT().Touch(gomock.Any(), "u1", "c1", now).Return(nil)

		_, err := manager.Open(context.Background(), "u1", "c1", 0)
		require.NoError(t, err)
	})

	t.Run("empty selection is a typed failure", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 5, true).
			Return(nil, nil)

		_, err := manager.Open(context.Background(), "u1", "c1", 5)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})
}

func TestManager_OpenWithQuestions(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("opens an exam batch over the given list", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.rounds.EXPECT().Find(gomock.Any(), "u1", "c1").
			Return(&round.Progress{CurrentRound: 4}, nil)
		m.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), []string{"q3", "q1", "q2"}).
			Return(nil)
		m.rounds.EXPECT().Touch(gomock.Any(), "u1", "c1", now).Return(nil)

		batch, err := manager.OpenWithQuestions(context.Background(), "u1", "c1", ModeExam, []string{"q3", "q1", "q2"})
		require.NoError(t, err)
		assert.Equal(t, ModeExam, batch.Mode)
		assert.Equal(t, 4, batch.RoundNumber)
		assert.Equal(t, 3, batch.BatchSize)
	})

	t.Run("empty list is a typed failure", func(t *testing.T) {
		manager, _ := newManager(t, now)

		_, err := manager.OpenWithQuestions(context.Background(), "u1", "c1", ModeExam, nil)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})
}

func TestManager_SubmitAnswer(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("records the answer for an in-progress batch", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.repo.EXPECT().FindBatch(gomock.Any(), "b1").
			Return(&Batch{ID: "b1", Status: StatusInProgress}, nil)
		m.repo.EXPECT().RecordAnswer(gomock.Any(), "b1", "q1", "B", now).Return(nil)

		require.NoError(t, manager.SubmitAnswer(context.Background(), "b1", "q1", "B"))
	})

	t.Run("rejects answers to a completed batch", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.repo.EXPECT().FindBatch(gomock.Any(), "b1").
			Return(&Batch{ID: "b1", Status: StatusCompleted}, nil)

		err := manager.SubmitAnswer(context.Background(), "b1", "q1", "B")
		assert.ErrorIs(t, err, ErrInvalidBatchState)
	})
}

func TestManager_Finish(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	answerB := "B"
	answerWrong := "A"

	t.Run("grades every slot and advances the schedule", func(t *testing.T) {
		manager, m := newManager(t, now)

		batch := &Batch{ID: "b1", UserID: "u1", CourseID: "c1", Status: StatusInProgress}
		answers := []BatchAnswer{
			{BatchID: "b1", QuestionID: "q1", Position: 1, UserAnswer: &answerB},
			{BatchID: "b1", QuestionID: "q2", Position: 2, UserAnswer: &answerWrong},
			{BatchID: "b1", QuestionID: "q3", Position: 3}, // never answered
		}

		m.catalog.EXPECT().Get(gomock.Any(), "q1").
			Return(&question.Question{ID: "q1", Type: question.TypeSingleChoice, CorrectAnswer: "B"}, nil)
		m.catalog.EXPECT().Get(gomock.Any(), "q2").
			Return(&question.Question{ID: "q2", Type: question.TypeSingleChoice, CorrectAnswer: "C"}, nil)
		m.catalog.EXPECT().Get(gomock.Any(), "q3").
			Return(&question.Question{ID: "q3", Type: question.TypeTrueFalse, CorrectAnswer: "true"}, nil)

		// Stage reads go through the repository the finalizing transaction
		// hands to the grade callback, under its row locks, never through a
		// pooled connection that could race a concurrent finalization.
		dueAt := now.Add(-time.Hour)
		m.records.EXPECT().FindForUpdate(gomock.Any(), "u1", "q1").
			Return(&mastery.LearningRecord{UserID: "u1", QuestionID: "q1", ReviewStage: 3, NextReviewAt: &dueAt}, nil)
		m.records.EXPECT().FindForUpdate(gomock.Any(), "u1", "q2").
			Return(&mastery.LearningRecord{UserID: "u1", QuestionID: "q2", ReviewStage: 5, NextReviewAt: &dueAt}, nil)
		m.records.EXPECT().FindForUpdate(gomock.Any(), "u1", "q3").Return(nil, nil)

		var got *Finalization
		m.repo.EXPECT().FinalizeBatch(gomock.Any(), "b1", now, gomock.Any()).
			DoAndReturn(func(ctx context.Context, batchID string, completedAt time.Time,
				grade func(context.Context, mastery.Repository, *Batch, []BatchAnswer) (*Finalization, error)) error {
				var err error
				got, err = grade(ctx, m.records, batch, answers)
				return err
			})

		summary, err := manager.Finish(context.Background(), "b1")
		require.NoError(t, err)
		assert.Equal(t, &Summary{Total: 3, Correct: 1, Wrong: 2, Accuracy: 1.0 / 3.0}, summary)

		require.Len(t, got.Answers, 3)
		assert.True(t, *got.Answers[0].IsCorrect)
		assert.False(t, *got.Answers[1].IsCorrect)
		assert.False(t, *got.Answers[2].IsCorrect)

		require.Len(t, got.Records, 3)
		// correct answer moves 3 -> 4
		assert.Equal(t, schedule.Stage(4), got.Records[0].ReviewStage)
		require.NotNil(t, got.Records[0].NextReviewAt)
		assert.Equal(t, now.Add(schedule.Intervals[4]), *got.Records[0].NextReviewAt)
		// wrong answer resets 5 -> 1
		assert.Equal(t, schedule.Stage(1), got.Records[1].ReviewStage)
		// unanswered new question grades wrong, 0 -> 1
		assert.Equal(t, schedule.Stage(1), got.Records[2].ReviewStage)
		for _, record := range got.Records {
			assert.True(t, record.CompletedInRound)
		}

		require.Len(t, got.History, 3)
		assert.Equal(t, "B", got.History[0].SubmittedAnswer)
		assert.True(t, got.History[0].IsCorrect)
		assert.Equal(t, "", got.History[2].SubmittedAnswer)
		require.NotNil(t, got.History[0].BatchID)
		assert.Equal(t, "b1", *got.History[0].BatchID)
	})

	t.Run("persistence failure leaves no summary", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.repo.EXPECT().FinalizeBatch(gomock.Any(), "b1", now, gomock.Any()).
			Return(fmt.Errorf("finish batch b1 in status completed: %w", ErrInvalidBatchState))

		summary, err := manager.Finish(context.Background(), "b1")
		assert.Nil(t, summary)
		assert.ErrorIs(t, err, ErrInvalidBatchState)
	})
}

func TestManager_GetQuestions(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	answerB := "B"
	correct := true

	fullQuestion := question.Question{
		ID: "q1", CourseID: "c1", Type: question.TypeSingleChoice,
		Prompt: "2+2?", Options: question.Options{"3", "4"},
		CorrectAnswer: "B", Explanation: "basic arithmetic",
	}

	t.Run("withholds the answer key while in progress", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.repo.EXPECT().FindBatch(gomock.Any(), "b1").
			Return(&Batch{ID: "b1", Status: StatusInProgress}, nil)
		m.repo.EXPECT().ListAnswers(gomock.Any(), "b1").
			Return([]BatchAnswer{
				{BatchID: "b1", QuestionID: "q1", Position: 1, UserAnswer: &answerB},
			}, nil)
		m.catalog.EXPECT().Get(gomock.Any(), "q1").Return(&fullQuestion, nil)

		_, views, err := manager.GetQuestions(context.Background(), "b1")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Empty(t, views[0].Question.CorrectAnswer)
		assert.Empty(t, views[0].Question.Explanation)
		assert.Nil(t, views[0].IsCorrect)
		assert.Equal(t, "2+2?", views[0].Question.Prompt)
		assert.Equal(t, &answerB, views[0].UserAnswer)
	})

	t.Run("returns the full correction once completed", func(t *testing.T) {
		manager, m := newManager(t, now)

		m.repo.EXPECT().FindBatch(gomock.Any(), "b1").
			Return(&Batch{ID: "b1", Status: StatusCompleted, CompletedAt: &now}, nil)
		m.repo.EXPECT().ListAnswers(gomock.Any(), "b1").
			Return([]BatchAnswer{
				{BatchID: "b1", QuestionID: "q1", Position: 1, UserAnswer: &answerB, IsCorrect: &correct},
			}, nil)
		m.catalog.EXPECT().Get(gomock.Any(), "q1").Return(&fullQuestion, nil)

		_, views, err := manager.GetQuestions(context.Background(), "b1")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "B", views[0].Question.CorrectAnswer)
		assert.Equal(t, "basic arithmetic", views[0].Question.Explanation)
		require.NotNil(t, views[0].IsCorrect)
		assert.True(t, *views[0].IsCorrect)
	})
}
