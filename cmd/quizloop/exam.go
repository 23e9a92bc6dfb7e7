package main

import (
	"github.com/spf13/cobra"

	"github.com/k-hayashi/quizloop/internal/cli"
)

func newExamCommand() *cobra.Command {
	var (
		userID string
		opts   cli.ExamOptions
	)

	cmd := &cobra.Command{
		Use:   "exam <course-id>",
		Short: "Take an exam built from quotas or a named fixed set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			return cli.NewExamCLI(eng.exams, eng.sessions).Run(cmd.Context(), userID, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "default", "User ID to take the exam as")
	cmd.Flags().StringVar(&opts.SetName, "set", "", "Named fixed exam set to open")
	cmd.Flags().BoolVar(&opts.Shuffle, "shuffle", false, "Shuffle fixed set question order")
	cmd.Flags().IntVar(&opts.SingleChoice, "single-choice", 0, "Number of single choice questions to extract")
	cmd.Flags().IntVar(&opts.MultiChoice, "multi-choice", 0, "Number of multiple choice questions to extract")
	cmd.Flags().IntVar(&opts.TrueFalse, "true-false", 0, "Number of true/false questions to extract")
	cmd.Flags().IntVar(&opts.DifficultyMin, "difficulty-min", 0, "Minimum difficulty for extraction (0 for no bound)")
	cmd.Flags().IntVar(&opts.DifficultyMax, "difficulty-max", 0, "Maximum difficulty for extraction (0 for no bound)")

	return cmd
}
