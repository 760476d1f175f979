// Package cli implements the non-server subcommands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/antonbelau/folio/internal/audit"
	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/database"
	dbaudit "github.com/antonbelau/folio/internal/database/audit"
	"github.com/antonbelau/folio/internal/database/projects"
	"github.com/antonbelau/folio/internal/importers"
)

// ImportProjectsCommand bulk-loads projects from a JSON file.
type ImportProjectsCommand struct {
	FilePath     string
	DatabasePath string
	DatabaseDSN  string
	Verbose      bool
	DryRun       bool
}

func NewImportProjectsCommand() *ImportProjectsCommand {
	return &ImportProjectsCommand{}
}

func (cmd *ImportProjectsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-projects", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the JSON import file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.StringVar(&cmd.DatabaseDSN, "dsn", "", "Postgres DSN (overrides -db when set)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-projects -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Bulk-import projects from a JSON array of project records.\n")
		fmt.Fprintf(os.Stderr, "Records are upserted by slug, so re-running the same file is safe.\n")
		fmt.Fprintf(os.Stderr, "Metrics are parsed leniently: malformed entries are dropped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import-projects -file projects.json -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportProjectsCommand) Run() error {
	fmt.Println("Project Import")
	fmt.Println("==============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	records, err := importers.ParseProjectsFile(cmd.FilePath)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d project records in %s\n", len(records), cmd.FilePath)

	if cmd.Verbose {
		for i, r := range records {
			fmt.Printf("%d. %s (%s)\n", i+1, r.Title, r.Slug)
		}
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	db, err := database.NewDatabase(cmd.DatabasePath, cmd.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	importer := importers.NewProjectImporter(projects.NewRepository(db.DB))
	result := importer.Import(records)

	auditor := audit.NewService(dbaudit.NewRepository(db.DB))
	auditor.LogImport("projects",
		fmt.Sprintf("Imported %d projects from %s", result.Processed, cmd.FilePath),
		result.Processed, result.Failed, nil)

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Projects saved: %d/%d\n", result.Processed, len(records))

	if result.Failed > 0 {
		fmt.Printf("\n%d records skipped:\n", result.Failed)
		for _, errMsg := range result.Errors {
			fmt.Printf("  [ERROR] %s\n", errMsg)
		}
	}

	fmt.Println("\nImport complete!")
	return nil
}
