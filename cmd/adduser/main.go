package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/logging"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/service"
	"expense-tracker-api/internal/storage"
)

const defaultDBPath = "expenses.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", defaultDBPath, "Path to database file")
	driver := fs.String("driver", "sqlite", "Database driver (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> [-password <password>] [-db <db_path>] [-driver <driver>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // Print newline after password input
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// Allow overriding db path via env var if not explicitly set via flag (flag default is used)
	if path := os.Getenv("DB_PATH"); path != "" && *dbPath == defaultDBPath {
		*dbPath = path
	}

	ctx := context.Background()
	logger := logging.New("warn", "text", stderr)

	db, err := storage.Open(ctx, config.DatabaseConfig{Driver: *driver, DSN: *dbPath}, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// No token is issued here, so no signing secret is needed.
	accounts := service.New(db, nil, logger).Auth

	user, err := accounts.CreateAccount(ctx, models.Credentials{Email: *email, Password: password})
	switch {
	case apperr.Is(err, apperr.Conflict):
		return fmt.Errorf("user %s already exists", *email)
	case apperr.Is(err, apperr.Validation):
		return fmt.Errorf("invalid input: %s", apperr.PublicMessage(err))
	case err != nil:
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Email, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
