package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/k-hayashi/quizloop/internal/clock"
	"github.com/k-hayashi/quizloop/internal/config"
	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/exam"
	"github.com/k-hayashi/quizloop/internal/mastery"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/round"
	"github.com/k-hayashi/quizloop/internal/selector"
	"github.com/k-hayashi/quizloop/internal/session"
)

var (
	configFile string
)

func main() {
	var debugMode bool
	rootCommand := cobra.Command{
		Use:           "quizloop",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newStudyCommand(),
		newExamCommand(),
		newReportCommand(),
		newDatasyncCommand(),
		newMigrateCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// engine bundles the wired review engine for CLI commands.
type engine struct {
	db       *sqlx.DB
	records  mastery.Repository
	rounds   round.Repository
	sessions *session.Manager
	exams    *exam.Adapter
}

func newEngine(cfg *config.Config) (*engine, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}

	catalog := newCatalog(cfg, db)
	records := mastery.NewDBRepository(db)
	rounds := round.NewDBRepository(db)
	clk := clock.SystemClock{}

	sel := selector.NewService(catalog, records, rounds, clk)
	sessions := session.NewManager(
		session.NewDBRepository(db), catalog, sel, rounds, clk,
		cfg.Engine.DefaultBatchSize,
	)
	return &engine{
		db:       db,
		records:  records,
		rounds:   rounds,
		sessions: sessions,
		exams:    exam.NewAdapter(catalog, sel, sessions),
	}, nil
}

func (e *engine) Close() error {
	return e.db.Close()
}

func newCatalog(cfg *config.Config, db *sqlx.DB) question.Catalog {
	if cfg.QuestionBank.Source == "remote" {
		return question.NewRemoteCatalog(question.RemoteConfig{
			BaseURL: cfg.QuestionBank.Remote.BaseURL,
			APIKey:  cfg.QuestionBank.Remote.APIKey,
			Timeout: time.Duration(cfg.QuestionBank.Remote.TimeoutSeconds) * time.Second,
		})
	}
	return question.NewDBCatalog(db)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
