package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/antonbelau/folio/internal/audit"
	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/content"
	"github.com/antonbelau/folio/internal/database"
	dbaudit "github.com/antonbelau/folio/internal/database/audit"
	dbdocuments "github.com/antonbelau/folio/internal/database/documents"
	"github.com/antonbelau/folio/internal/documents"
	"github.com/antonbelau/folio/internal/importers"
	"github.com/antonbelau/folio/internal/storage"
)

// ImportDocsCommand bulk-loads MDX files from a directory into the document
// store. Storage credentials come from the environment, same as the server.
type ImportDocsCommand struct {
	Directory    string
	DatabasePath string
	DatabaseDSN  string
	Verbose      bool
}

func NewImportDocsCommand() *ImportDocsCommand {
	return &ImportDocsCommand{}
}

func (cmd *ImportDocsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-docs", flag.ExitOnError)

	fs.StringVar(&cmd.Directory, "dir", "", "Directory of .mdx/.md files to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.StringVar(&cmd.DatabaseDSN, "dsn", "", "Postgres DSN (overrides -db when set)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-docs -dir <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Upload every .mdx and .md file under the directory to the content\n")
		fmt.Fprintf(os.Stderr, "bucket and register it in the document store. The document key is the\n")
		fmt.Fprintf(os.Stderr, "file path relative to the directory.\n\n")
		fmt.Fprintf(os.Stderr, "Storage credentials are read from the environment (STORAGE_ENDPOINT,\n")
		fmt.Fprintf(os.Stderr, "STORAGE_ACCESS_KEY_ID, STORAGE_SECRET_ACCESS_KEY).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import-docs -dir ./content -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Directory == "" {
		return fmt.Errorf("required flag -dir not provided")
	}

	return nil
}

func (cmd *ImportDocsCommand) Run() error {
	fmt.Println("Document Import")
	fmt.Println("===============")

	if _, err := os.Stat(cmd.Directory); os.IsNotExist(err) {
		return fmt.Errorf("directory not found: %s", cmd.Directory)
	}

	cfg := config.NewConfig()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if !store.Configured() {
		return fmt.Errorf("object storage is not configured, set STORAGE_ENDPOINT and credentials")
	}

	ctx := context.Background()
	if err := store.EnsureBuckets(ctx); err != nil {
		return fmt.Errorf("failed to ensure buckets: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath, cmd.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	resolver := content.NewResolver(cfg.Storage.PublicBaseURL, cfg.Storage.ContentBucket)
	svc := documents.NewService(dbdocuments.NewRepository(db.DB), store, resolver, nil)

	fmt.Printf("Importing from %s\n", cmd.Directory)

	importer := importers.NewDocImporter(svc)
	result, err := importer.ImportDir(ctx, cmd.Directory)
	if err != nil {
		return err
	}

	auditor := audit.NewService(dbaudit.NewRepository(db.DB))
	auditor.LogImport("docs",
		fmt.Sprintf("Imported %d documents from %s", result.Processed, cmd.Directory),
		result.Processed, result.Failed, nil)

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Documents saved: %d\n", result.Processed)

	if result.Failed > 0 {
		fmt.Printf("\n%d files skipped:\n", result.Failed)
		for _, errMsg := range result.Errors {
			fmt.Printf("  [ERROR] %s\n", errMsg)
		}
	}

	fmt.Println("\nImport complete!")
	return nil
}
