package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/k-hayashi/quizloop/internal/mastery"
	mock_mastery "github.com/k-hayashi/quizloop/internal/mocks/mastery"
	mock_round "github.com/k-hayashi/quizloop/internal/mocks/round"
	"github.com/k-hayashi/quizloop/internal/round"
)

func newReportsCLI(t *testing.T, input string) (*ReportsCLI, *mock_mastery.MockRepository, *mock_round.MockRepository, *bytes.Buffer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	records := mock_mastery.NewMockRepository(ctrl)
	rounds := mock_round.NewMockRepository(ctrl)
	out := &bytes.Buffer{}
	cli := &ReportsCLI{
		records:      records,
		rounds:       rounds,
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: out,
		bold:         color.New(color.Bold),
	}
	return cli, records, rounds, out
}

func TestReportsCLI_ShowRounds(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	lastStudied := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	cli, _, rounds, out := newReportsCLI(t, "")

	rounds.EXPECT().Find(gomock.Any(), "u1", "c1").
		Return(&round.Progress{
			UserID: "u1", CourseID: "c1",
			CurrentRound: 3, TotalRoundsCompleted: 2, LastStudiedAt: &lastStudied,
		}, nil)

	require.NoError(t, cli.ShowRounds(context.Background(), "u1", "c1"))
	output := out.String()
	assert.Contains(t, output, "Current round:    3")
	assert.Contains(t, output, "Rounds completed: 2")
	assert.Contains(t, output, "2025-01-10 09:30")
}

func TestReportsCLI_ShowStatistics(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	t.Run("prints monthly rows and a total", func(t *testing.T) {
		cli, records, _, out := newReportsCLI(t, "")

		records.EXPECT().ListHistoryByCourse(gomock.Any(), "u1", "c1").
			Return([]mastery.AnswerHistoryEntry{
				{QuestionID: "q1", IsCorrect: true, AnsweredAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
				{QuestionID: "q2", IsCorrect: false, AnsweredAt: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)},
			}, nil)

		require.NoError(t, cli.ShowStatistics(context.Background(), "u1", "c1", 0, 0))
		output := out.String()
		assert.Contains(t, output, "2025-01")
		assert.Contains(t, output, "Total")
	})

	t.Run("no history", func(t *testing.T) {
		cli, records, _, out := newReportsCLI(t, "")

		records.EXPECT().ListHistoryByCourse(gomock.Any(), "u1", "c1").Return(nil, nil)

		require.NoError(t, cli.ShowStatistics(context.Background(), "u1", "c1", 0, 0))
		assert.Contains(t, out.String(), "No study history yet.")
	})
}

func TestReportsCLI_Wipe(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	t.Run("confirmed wipe resets records", func(t *testing.T) {
		cli, records, _, out := newReportsCLI(t, "y\n")

		records.EXPECT().Wipe(gomock.Any(), "u1", "c1").Return(nil)

		require.NoError(t, cli.Wipe(context.Background(), "u1", "c1"))
		assert.Contains(t, out.String(), "Review progress reset.")
	})

	t.Run("anything but y aborts", func(t *testing.T) {
		cli, _, _, out := newReportsCLI(t, "\n")

		require.NoError(t, cli.Wipe(context.Background(), "u1", "c1"))
		assert.Contains(t, out.String(), "Aborted.")
	})
}
