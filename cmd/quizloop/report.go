package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/k-hayashi/quizloop/internal/cli"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Review progress reports",
	}
	cmd.AddCommand(
		newReportRoundsCommand(),
		newReportStatsCommand(),
		newReportWipeCommand(),
	)
	return cmd
}

func newReportRoundsCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "rounds <course-id>",
		Short: "Show round progress for a course",
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

			return cli.NewReportsCLI(eng.records, eng.rounds).ShowRounds(cmd.Context(), userID, args[0])
		},
	}
	cmd.Flags().StringVar(&userID, "user", "default", "User ID to report on")
	return cmd
}

func newReportStatsCommand() *cobra.Command {
	var (
		userID      string
		year, month int
	)

	cmd := &cobra.Command{
		Use:   "stats <course-id>",
		Short: "Show monthly/yearly learning statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			return cli.NewReportsCLI(eng.records, eng.rounds).ShowStatistics(cmd.Context(), userID, args[0], year, month)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "default", "User ID to report on")
	cmd.Flags().IntVar(&year, "year", 0, "Filter by year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month (1-12), requires --year")

	return cmd
}

func newReportWipeCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "wipe <course-id>",
		Short: "Reset review progress for a course",
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

			return cli.NewReportsCLI(eng.records, eng.rounds).Wipe(cmd.Context(), userID, args[0])
		},
	}
	cmd.Flags().StringVar(&userID, "user", "default", "User ID to reset")
	return cmd
}
