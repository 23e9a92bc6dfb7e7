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

	"github.com/k-hayashi/quizloop/internal/exam"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/session"
)

// ExamOpener is the slice of exam.Adapter the CLI drives.
type ExamOpener interface {
	OpenExtraction(ctx context.Context, userID, courseID string, spec exam.ExtractionSpec) (*session.Batch, error)
	OpenFixedSet(ctx context.Context, userID, courseID, name string, shuffle bool) (*session.Batch, error)
}

// ExamCLI runs one exam batch in the terminal.
type ExamCLI struct {
	exams        ExamOpener
	sessions     BatchSession
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
}

// NewExamCLI creates a new ExamCLI on the process's standard streams.
func NewExamCLI(exams ExamOpener, sessions BatchSession) *ExamCLI {
	return &ExamCLI{
		exams:        exams,
		sessions:     sessions,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
	}
}

// ExamOptions selects the exam sourcing: a named fixed set, or an extraction
// described by per-type counts and a difficulty range.
type ExamOptions struct {
	SetName       string
	Shuffle       bool
	SingleChoice  int
	MultiChoice   int
	TrueFalse     int
	DifficultyMin int
	DifficultyMax int
}

// Run opens the exam, asks every question, and prints the result.
func (cli *ExamCLI) Run(ctx context.Context, userID, courseID string, opts ExamOptions) error {
	batch, err := cli.openExam(ctx, userID, courseID, opts)
	var insufficientErr *exam.InsufficientQuestionsError
	if errors.As(err, &insufficientErr) {
		fmt.Fprintf(cli.stdoutWriter, "Cannot build this exam: %d more %s questions needed.\n",
			insufficientErr.Shortfall, insufficientErr.Type)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open exam > %w", err)
	}

	_, views, err := cli.sessions.GetQuestions(ctx, batch.ID)
	if err != nil {
		return fmt.Errorf("sessions.GetQuestions() > %w", err)
	}

	cli.bold.Fprintf(cli.stdoutWriter, "Exam: %d questions\n\n", len(views))
	for _, view := range views {
		printQuestion(cli.stdoutWriter, cli.bold, view)

		fmt.Fprint(cli.stdoutWriter, "Your answer: ")
		line, err := cli.stdinReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input > %w", err)
		}
		answer := strings.TrimSpace(line)
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

	_, graded, err := cli.sessions.GetQuestions(ctx, batch.ID)
	if err != nil {
		return fmt.Errorf("sessions.GetQuestions() > %w", err)
	}
	printCorrection(cli.stdoutWriter, graded)
	return nil
}

func (cli *ExamCLI) openExam(ctx context.Context, userID, courseID string, opts ExamOptions) (*session.Batch, error) {
	if opts.SetName != "" {
		return cli.exams.OpenFixedSet(ctx, userID, courseID, opts.SetName, opts.Shuffle)
	}

	quotas := map[question.Type]int{}
	if opts.SingleChoice > 0 {
		quotas[question.TypeSingleChoice] = opts.SingleChoice
	}
	if opts.MultiChoice > 0 {
		quotas[question.TypeMultipleChoice] = opts.MultiChoice
	}
	if opts.TrueFalse > 0 {
		quotas[question.TypeTrueFalse] = opts.TrueFalse
	}
	if len(quotas) == 0 {
		return nil, fmt.Errorf("an exam needs a set name or at least one question count")
	}
	return cli.exams.OpenExtraction(ctx, userID, courseID, exam.ExtractionSpec{
		Quotas:        quotas,
		DifficultyMin: opts.DifficultyMin,
		DifficultyMax: opts.DifficultyMax,
	})
}
