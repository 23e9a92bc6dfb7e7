package main

import (
	"github.com/spf13/cobra"

	"github.com/k-hayashi/quizloop/internal/cli"
)

func newStudyCommand() *cobra.Command {
	var (
		userID    string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "study <course-id>",
		Short: "Run interactive review batches for a course",
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

			return cli.NewStudyCLI(eng.sessions).Run(cmd.Context(), userID, args[0], batchSize)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "default", "User ID to study as")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Questions per batch (0 uses the configured default)")

	return cmd
}
