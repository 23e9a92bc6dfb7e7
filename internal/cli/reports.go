package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/k-hayashi/quizloop/internal/mastery"
	"github.com/k-hayashi/quizloop/internal/round"
	"github.com/k-hayashi/quizloop/internal/statistics"
)

// ReportsCLI prints round progress and study statistics, and handles the
// destructive data reset.
type ReportsCLI struct {
	records      mastery.Repository
	rounds       round.Repository
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
}

// NewReportsCLI creates a new ReportsCLI on the process's standard streams.
func NewReportsCLI(records mastery.Repository, rounds round.Repository) *ReportsCLI {
	return &ReportsCLI{
		records:      records,
		rounds:       rounds,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
	}
}

// ShowRounds prints the user's round progress for a course.
func (cli *ReportsCLI) ShowRounds(ctx context.Context, userID, courseID string) error {
	progress, err := cli.rounds.Find(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("rounds.Find() > %w", err)
	}

	cli.bold.Fprintf(cli.stdoutWriter, "Course %s\n", courseID)
	fmt.Fprintf(cli.stdoutWriter, "Current round:    %d\n", progress.CurrentRound)
	fmt.Fprintf(cli.stdoutWriter, "Rounds completed: %d\n", progress.TotalRoundsCompleted)
	if progress.LastStudiedAt != nil {
		fmt.Fprintf(cli.stdoutWriter, "Last studied:     %s\n", progress.LastStudiedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// ShowStatistics prints monthly statistics for a course, optionally filtered
// by year and month (0 means no filter).
func (cli *ReportsCLI) ShowStatistics(ctx context.Context, userID, courseID string, year, month int) error {
	entries, err := cli.records.ListHistoryByCourse(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("records.ListHistoryByCourse() > %w", err)
	}

	result := statistics.CalculateStatistics(entries, year, month)
	if len(result.Periods) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "No study history yet.")
		return nil
	}

	cli.bold.Fprintf(cli.stdoutWriter, "%-10s %10s %10s %10s %10s\n",
		"Period", "Attempts", "Correct", "Accuracy", "Mastered")
	for _, period := range result.Periods {
		fmt.Fprintf(cli.stdoutWriter, "%-10s %10d %10d %9.0f%% %10d\n",
			period.Period, period.Attempts, period.Correct, period.Accuracy*100, period.NewlyMastered)
	}
	fmt.Fprintf(cli.stdoutWriter, "%-10s %10d %10d %9.0f%% %10d\n",
		"Total", result.Aggregate.Attempts, result.Aggregate.Correct,
		result.Aggregate.Accuracy*100, result.Aggregate.NewlyMastered)
	return nil
}

// Wipe resets the user's review progress for a course after confirmation.
// Answer history is kept.
func (cli *ReportsCLI) Wipe(ctx context.Context, userID, courseID string) error {
	fmt.Fprintf(cli.stdoutWriter, "Reset all review progress for course %s? [y/N] ", courseID)
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input > %w", err)
	}
	if !strings.EqualFold(strings.TrimSpace(line), "y") {
		fmt.Fprintln(cli.stdoutWriter, "Aborted.")
		return nil
	}

	if err := cli.records.Wipe(ctx, userID, courseID); err != nil {
		return fmt.Errorf("records.Wipe() > %w", err)
	}
	fmt.Fprintln(cli.stdoutWriter, "Review progress reset.")
	return nil
}
