package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/k-hayashi/quizloop/internal/database"
	"github.com/k-hayashi/quizloop/internal/datasync"
)

func newDatasyncCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import <course-file>...",
		Short: "Import course files into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			importer := datasync.NewImporter(db, os.Stdout)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}

			for _, path := range args {
				course, err := datasync.LoadCourseFile(path)
				if err != nil {
					return fmt.Errorf("load course file: %w", err)
				}

				result, err := importer.ImportCourse(ctx, course, opts)
				if err != nil {
					return fmt.Errorf("import course %s: %w", course.CourseID, err)
				}

				fmt.Printf("\nCourse %s:", course.CourseID)
				importer.PrintSummary(result, opts)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}
