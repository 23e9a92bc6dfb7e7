package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/k-hayashi/quizloop/internal/bootstrap"
	"github.com/k-hayashi/quizloop/internal/clock"
	"github.com/k-hayashi/quizloop/internal/config"
	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/exam"
	"github.com/k-hayashi/quizloop/internal/mastery"
	"github.com/k-hayashi/quizloop/internal/question"
	"github.com/k-hayashi/quizloop/internal/round"
	"github.com/k-hayashi/quizloop/internal/selector"
	"github.com/k-hayashi/quizloop/internal/server"
	"github.com/k-hayashi/quizloop/internal/session"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "quizloop-server",
		Short:         "Quizloop review engine HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
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
	exams := exam.NewAdapter(catalog, sel, sessions)

	handler := server.NewHandler(sel, sessions, exams, slog.Default())

	mux := http.NewServeMux()
	handler.Register(mux)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
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

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
