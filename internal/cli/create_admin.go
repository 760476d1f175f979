package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/antonbelau/folio/internal/auth"
	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/database"
)

// CreateAdminCommand bootstraps the single admin account.
type CreateAdminCommand struct {
	Username     string
	Email        string
	DatabasePath string
	DatabaseDSN  string
}

func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Admin username (required)")
	fs.StringVar(&cmd.Email, "email", "", "Admin email (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.StringVar(&cmd.DatabaseDSN, "dsn", "", "Postgres DSN (overrides -db when set)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -username <name> -email <email> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the administrator account. Only one admin account may exist.\n")
		fmt.Fprintf(os.Stderr, "The password is read from the ADMIN_PASSWORD environment variable,\n")
		fmt.Fprintf(os.Stderr, "or prompted for on stdin when unset. Minimum length is %d characters.\n\n", auth.MinPasswordLength)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}

	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		fmt.Printf("Password (min %d characters): ", auth.MinPasswordLength)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	db, err := database.NewDatabase(cmd.DatabasePath, cmd.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(db.DB, config.Auth{Mode: config.AuthModeLocal})

	admin, err := service.CreateAdmin(cmd.Username, cmd.Email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Admin account %q created.\n", admin.Username)
	return nil
}
