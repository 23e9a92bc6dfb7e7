package mastery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k-hayashi/quizloop/internal/schedule"
)

func newMockRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

func recordColumns() []string {
	return []string{"user_id", "question_id", "course_id", "review_stage", "next_review_at", "completed_in_round", "created_at", "updated_at"}
}

func TestDBRepository_Find(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := now.Add(30 * time.Minute)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *LearningRecord
		wantErr   bool
	}{
		{
			name: "returns record",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(recordColumns()).
					AddRow("u1", "q1", "c1", 3, due, false, now, now)
				mock.ExpectQuery("SELECT \\* FROM learning_records WHERE user_id = \\? AND question_id = \\?").
					WithArgs("u1", "q1").
					WillReturnRows(rows)
			},
			want: &LearningRecord{
				UserID: "u1", QuestionID: "q1", CourseID: "c1",
				ReviewStage: 3, NextReviewAt: &due,
				CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name: "absent record returns nil without error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM learning_records").
					WithArgs("u1", "q1").
					WillReturnRows(sqlmock.NewRows(recordColumns()))
			},
			want: nil,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM learning_records").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.Find(context.Background(), "u1", "q1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_FindForUpdate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := now.Add(30 * time.Minute)

	repo, mock := newMockRepository(t)
	rows := sqlmock.NewRows(recordColumns()).
		AddRow("u1", "q1", "c1", 3, due, false, now, now)
	mock.ExpectQuery("SELECT \\* FROM learning_records WHERE user_id = \\? AND question_id = \\? FOR UPDATE").
		WithArgs("u1", "q1").
		WillReturnRows(rows)

	got, err := repo.FindForUpdate(context.Background(), "u1", "q1")
	require.NoError(t, err)
	assert.Equal(t, schedule.Stage(3), got.ReviewStage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Upsert(t *testing.T) {
	due := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)

	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO learning_records .+ ON DUPLICATE KEY UPDATE").
		WithArgs("u1", "q1", "c1", schedule.Stage(2), &due, true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &LearningRecord{
		UserID: "u1", QuestionID: "q1", CourseID: "c1",
		ReviewStage: 2, NextReviewAt: &due, CompletedInRound: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_AppendHistory(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	batchID := "b1"

	tests := []struct {
		name      string
		entries   []*AnswerHistoryEntry
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "multi-row insert",
			entries: []*AnswerHistoryEntry{
				{UserID: "u1", QuestionID: "q1", CourseID: "c1", BatchID: &batchID, SubmittedAnswer: "B", IsCorrect: true, AnsweredAt: now},
				{UserID: "u1", QuestionID: "q2", CourseID: "c1", BatchID: &batchID, SubmittedAnswer: "", IsCorrect: false, AnsweredAt: now},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO answer_history \\(user_id, question_id, course_id, batch_id, submitted_answer, is_correct, answered_at\\) VALUES \\(\\?, \\?, \\?, \\?, \\?, \\?, \\?\\), \\(\\?, \\?, \\?, \\?, \\?, \\?, \\?\\)").
					WithArgs(
						"u1", "q1", "c1", &batchID, "B", true, now,
						"u1", "q2", "c1", &batchID, "", false, now,
					).
					WillReturnResult(sqlmock.NewResult(1, 2))
			},
		},
		{
			name:      "empty slice is a no-op",
			entries:   nil,
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "db error propagates",
			entries: []*AnswerHistoryEntry{
				{UserID: "u1", QuestionID: "q1", CourseID: "c1", SubmittedAnswer: "B", IsCorrect: true, AnsweredAt: now},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO answer_history").
					WillReturnError(fmt.Errorf("table full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			err := repo.AppendHistory(context.Background(), tt.entries)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_ResetRoundFlags(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("UPDATE learning_records SET completed_in_round = FALSE WHERE user_id = \\? AND course_id = \\?").
		WithArgs("u1", "c1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.ResetRoundFlags(context.Background(), "u1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Wipe(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("UPDATE learning_records\\s+SET review_stage = 0, next_review_at = NULL, completed_in_round = FALSE\\s+WHERE user_id = \\? AND course_id = \\?").
		WithArgs("u1", "c1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.Wipe(context.Background(), "u1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearningRecord_DueForReview(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name   string
		record LearningRecord
		want   bool
	}{
		{name: "overdue reviewing record", record: LearningRecord{ReviewStage: 3, NextReviewAt: &past}, want: true},
		{name: "due exactly now", record: LearningRecord{ReviewStage: 1, NextReviewAt: &now}, want: true},
		{name: "not yet due", record: LearningRecord{ReviewStage: 3, NextReviewAt: &future}, want: false},
		{name: "completed this round", record: LearningRecord{ReviewStage: 3, NextReviewAt: &past, CompletedInRound: true}, want: false},
		{name: "mastered has no due time", record: LearningRecord{ReviewStage: schedule.StageMastered}, want: false},
		{name: "new record", record: LearningRecord{ReviewStage: schedule.StageNew}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.DueForReview(now))
		})
	}
}
