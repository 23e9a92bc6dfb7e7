// Package cli implements the interactive terminal surfaces: study and exam
// sessions, round progress, statistics and data maintenance.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/fatih/color"

	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/session"
)

//go:generate mockgen -source=study.go -destination=../mocks/cli/mock_session.go -package=mock_cli BatchSession

// BatchSession is the slice of session.Manager the CLI drives.
type BatchSession interface {
	Open(ctx context.Context, userID, courseID string, batchSize int) (*session.Batch, error)
	SubmitAnswer(ctx context.Context, batchID, questionID, answer string) error
	Finish(ctx context.Context, batchID string) (*session.Summary, error)
	GetQuestions(ctx context.Context, batchID string) (*session.Batch, []session.QuestionView, error)
}

// StudyCLI runs interactive practice batches in the terminal.
type StudyCLI struct {
	sessions     BatchSession
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
}

// NewStudyCLI creates a new StudyCLI on the process's standard streams.
func NewStudyCLI(sessions BatchSession) *StudyCLI {
	return &StudyCLI{
		sessions:     sessions,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
	}
}

// Run opens practice batches until the course has nothing left to serve or
// the user stops.
func (cli *StudyCLI) Run(ctx context.Context, userID, courseID string, batchSize int) error {
	for {
		batch, err := cli.openWithRetry(ctx, userID, courseID, batchSize)
		if errors.Is(err, session.ErrEmptySelection) {
			fmt.Fprintln(cli.stdoutWriter, "Nothing left to study in this course. Well done!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("sessions.Open() > %w", err)
		}

		if err := cli.runBatch(ctx, batch); err != nil {
			return err
		}

		again, err := cli.prompt("Study another batch? [y/N] ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(again), "y") {
			return nil
		}
	}
}

// openWithRetry retries batch opening when a concurrent session for the same
// user races the round advance.
func (cli *StudyCLI) openWithRetry(ctx context.Context, userID, courseID string, batchSize int) (*session.Batch, error) {
	var batch *session.Batch
	if err := retry.Do(
		func() error {
			opened, err := cli.sessions.Open(ctx, userID, courseID, batchSize)
			if err != nil {
				if !database.IsRetryableConflict(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			batch = opened
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
	); err != nil {
		return nil, err
	}
	return batch, nil
}

func (cli *StudyCLI) runBatch(ctx context.Context, batch *session.Batch) error {
	_, views, err := cli.sessions.GetQuestions(ctx, batch.ID)
	if err != nil {
		return fmt.Errorf("sessions.GetQuestions() > %w", err)
	}

	cli.bold.Fprintf(cli.stdoutWriter, "Round %d, %d questions\n\n", batch.RoundNumber, len(views))

	for _, view := range views {
		printQuestion(cli.stdoutWriter, cli.bold, view)

		answer, err := cli.prompt("Your answer: ")
		if err != nil {
			return err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		if err := cli.sessions.SubmitAnswer(ctx, batch.ID, view.Question.ID, answer); err != nil {
			return fmt.Errorf("sessions.SubmitAnswer() > %w", err)
		}
	}

	summary, err := cli.sessions.Finish(ctx, batch.ID)
	if err != nil {
		return fmt.Errorf("sessions.Finish() > %w", err)
	}
	printSummary(cli.stdoutWriter, summary)

	// Re-read after completion for the correction with answer keys.
	_, graded, err := cli.sessions.GetQuestions(ctx, batch.ID)
	if err != nil {
		return fmt.Errorf("sessions.GetQuestions() > %w", err)
	}
	printCorrection(cli.stdoutWriter, graded)
	return nil
}

func (cli *StudyCLI) prompt(message string) (string, error) {
	fmt.Fprint(cli.stdoutWriter, message)
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input > %w", err)
	}
	return line, nil
}

func printQuestion(w io.Writer, bold *color.Color, view session.QuestionView) {
	bold.Fprintf(w, "Q%d. %s\n", view.Position, view.Question.Prompt)
	for i, option := range view.Question.Options {
		fmt.Fprintf(w, "  %c) %s\n", 'A'+i, option)
	}
}

func printSummary(w io.Writer, summary *session.Summary) {
	fmt.Fprintf(w, "\n%d/%d correct (%.0f%%)\n", summary.Correct, summary.Total, summary.Accuracy*100)
}

func printCorrection(w io.Writer, views []session.QuestionView) {
	for _, view := range views {
		submitted := "(no answer)"
		if view.UserAnswer != nil {
			submitted = *view.UserAnswer
		}
		if view.IsCorrect != nil && *view.IsCorrect {
			color.Green("Q%d correct: %s", view.Position, submitted)
		} else {
			color.Red("Q%d wrong: answered %s, correct answer is %s",
				view.Position, submitted, view.Question.CorrectAnswer)
			if view.Question.Explanation != "" {
				fmt.Fprintf(w, "  %s\n", view.Question.Explanation)
			}
		}
	}
}
