package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"gorm.io/gorm"

	"github.com/terraincognita07/samaan/internal/cli"
	"github.com/terraincognita07/samaan/internal/config"
	"github.com/terraincognita07/samaan/internal/db"
	"github.com/terraincognita07/samaan/internal/services"
)

type createOwnerCmd struct {
	envFile *string
	email   string
	prompt  bool
}

func (*createOwnerCmd) Name() string     { return "create-owner" }
func (*createOwnerCmd) Synopsis() string { return "create the owner account" }
func (*createOwnerCmd) Usage() string {
	return `create-owner -email <email> [-prompt]

  Creates the single owner account. Without -prompt a password is generated
  and printed once.
`
}

func (c *createOwnerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "owner email address (required)")
	f.BoolVar(&c.prompt, "prompt", false, "read the password from the terminal instead of generating one")
}

func (c *createOwnerCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.email) == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required.")
		return subcommands.ExitUsageError
	}

	password := ""
	if c.prompt {
		value, err := cli.PromptNewPassword(os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		password = value
	}

	database, err := openDatabase(*c.envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeDatabase(database)

	auth := services.NewAuthService(db.NewUserRepository(database))
	if err := cli.CreateOwner(auth, c.email, password, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type resetPasswordCmd struct {
	envFile *string
	email   string
}

func (*resetPasswordCmd) Name() string     { return "reset-password" }
func (*resetPasswordCmd) Synopsis() string { return "replace a user password with a temporary one" }
func (*resetPasswordCmd) Usage() string {
	return `reset-password -email <email>

  Prints a temporary password. The user must change it on next login.
`
}

func (c *resetPasswordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "account email address (required)")
}

func (c *resetPasswordCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.email) == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required.")
		return subcommands.ExitUsageError
	}

	database, err := openDatabase(*c.envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeDatabase(database)

	auth := services.NewAuthService(db.NewUserRepository(database))
	if err := cli.ResetPassword(auth, c.email, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// openDatabase reads only the DB_* settings, so maintenance commands work
// without SECRET_KEY.
func openDatabase(envFile string) (*gorm.DB, error) {
	databaseConfig, err := config.LoadDatabase(envFile)
	if err != nil {
		return nil, err
	}
	database, err := db.Open(databaseConfig)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
