package exam

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_question "github.com/k-hayashi/quizloop/internal/mocks/question"
	mock_selector "github.com/k-hayashi/quizloop/internal/mocks/selector"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/session"
)

type adapterMocks struct {
	catalog  *mock_question.MockCatalog
	selector *mock_selector.MockSelector
}

func newAdapter(t *testing.T, opener BatchOpener) (*Adapter, adapterMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := adapterMocks{
		catalog:  mock_question.NewMockCatalog(ctrl),
		selector: mock_selector.NewMockSelector(ctrl),
	}
	return NewAdapter(m.catalog, m.selector, opener), m
}

// recordingOpener captures the question list handed to the session layer.
type recordingOpener struct {
	gotMode session.Mode
	gotIDs  []string
	batch   *session.Batch
	err     error
}

func (o *recordingOpener) OpenWithQuestions(ctx context.Context, userID, courseID string, mode session.Mode, questionIDs []string) (*session.Batch, error) {
	o.gotMode = mode
	o.gotIDs = questionIDs
	if o.err != nil {
		return nil, o.err
	}
	if o.batch == nil {
		o.batch = &session.Batch{ID: "b1", UserID: userID, CourseID: courseID, Mode: mode, BatchSize: len(questionIDs), Status: session.StatusInProgress, StartedAt: time.Now()}
	}
	return o.batch, nil
}

func TestAdapter_OpenExtraction(t *testing.T) {
	t.Run("fills each quota from its difficulty-filtered pool", func(t *testing.T) {
		opener := &recordingOpener{}
		adapter, m := newAdapter(t, opener)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 1, true).Return(nil, nil)
		m.catalog.EXPECT().List(gomock.Any(), "c1", question.Filter{
			Types: []question.Type{question.TypeMultipleChoice}, DifficultyMin: 2, DifficultyMax: 4,
		}).Return([]string{"m1", "m2", "m3"}, nil)
		m.catalog.EXPECT().List(gomock.Any(), "c1", question.Filter{
			Types: []question.Type{question.TypeSingleChoice}, DifficultyMin: 2, DifficultyMax: 4,
		}).Return([]string{"s1", "s2", "s3", "s4", "s5"}, nil)

		batch, err := adapter.OpenExtraction(context.Background(), "u1", "c1", ExtractionSpec{
			Quotas: map[question.Type]int{
				question.TypeSingleChoice:   3,
				question.TypeMultipleChoice: 2,
			},
			DifficultyMin: 2,
			DifficultyMax: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, session.ModeExam, opener.gotMode)
		assert.Equal(t, "b1", batch.ID)

		// 2 multiple-choice then 3 single-choice, no duplicates, all from
		// the right pools.
		require.Len(t, opener.gotIDs, 5)
		seen := map[string]bool{}
		for _, id := range opener.gotIDs[:2] {
			assert.Contains(t, []string{"m1", "m2", "m3"}, id)
			assert.False(t, seen[id])
			seen[id] = true
		}
		for _, id := range opener.gotIDs[2:] {
			assert.Contains(t, []string{"s1", "s2", "s3", "s4", "s5"}, id)
			assert.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("shortfall fails the whole extraction with the missing count", func(t *testing.T) {
		opener := &recordingOpener{}
		adapter, m := newAdapter(t, opener)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 1, true).Return(nil, nil)
		pool := make([]string, 25)
		for i := range pool {
			pool[i] = string(rune('a' + i))
		}
		m.catalog.EXPECT().List(gomock.Any(), "c1", gomock.Any()).Return(pool, nil)

		_, err := adapter.OpenExtraction(context.Background(), "u1", "c1", ExtractionSpec{
			Quotas: map[question.Type]int{question.TypeSingleChoice: 40},
		})
		var insufficientErr *InsufficientQuestionsError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, question.TypeSingleChoice, insufficientErr.Type)
		assert.Equal(t, 15, insufficientErr.Shortfall)
		assert.Nil(t, opener.gotIDs)
	})

	t.Run("probe runs before any catalog access", func(t *testing.T) {
		opener := &recordingOpener{}
		adapter, m := newAdapter(t, opener)

		probe := m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 1, true).Return(nil, nil)
		m.catalog.EXPECT().List(gomock.Any(), "c1", gomock.Any()).
			After(probe).
			Return([]string{"q1"}, nil)

		_, err := adapter.OpenExtraction(context.Background(), "u1", "c1", ExtractionSpec{
			Quotas: map[question.Type]int{question.TypeTrueFalse: 1},
		})
		require.NoError(t, err)
	})
}

func TestAdapter_OpenFixedSet(t *testing.T) {
	t.Run("opens the stored set in order", func(t *testing.T) {
		opener := &recordingOpener{}
		adapter, m := newAdapter(t, opener)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 1, true).Return(nil, nil)
		m.catalog.EXPECT().GetFixedSet(gomock.Any(), "c1", "midterm").
			Return([]string{"q3", "q1", "q2"}, nil)

		batch, err := adapter.OpenFixedSet(context.Background(), "u1", "c1", "midterm", false)
		require.NoError(t, err)
		assert.Equal(t, session.ModeExam, batch.Mode)
		assert.Equal(t, []string{"q3", "q1", "q2"}, opener.gotIDs)
	})

	t.Run("shuffle keeps the same question set", func(t *testing.T) {
		opener := &recordingOpener{}
		adapter, m := newAdapter(t, opener)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 1, true).Return(nil, nil)
		m.catalog.EXPECT().GetFixedSet(gomock.Any(), "c1", "midterm").
			Return([]string{"q1", "q2", "q3", "q4"}, nil)

		_, err := adapter.OpenFixedSet(context.Background(), "u1", "c1", "midterm", true)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"q1", "q2", "q3", "q4"}, opener.gotIDs)
	})

	t.Run("unknown set name surfaces not found", func(t *testing.T) {
		opener := &recordingOpener{}
		adapter, m := newAdapter(t, opener)

		m.selector.EXPECT().SelectNext(gomock.Any(), "u1", "c1", 1, true).Return(nil, nil)
		m.catalog.EXPECT().GetFixedSet(gomock.Any(), "c1", "nope").
			Return(nil, question.ErrNotFound)

		_, err := adapter.OpenFixedSet(context.Background(), "u1", "c1", "nope", false)
		assert.ErrorIs(t, err, question.ErrNotFound)
	})
}
