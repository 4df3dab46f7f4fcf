package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/service"
	"github.com/userhub/userhub/internal/store"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		Long:  "Create and list user accounts directly against the store, bypassing the HTTP API.",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserListCmd())

	return cmd
}

// ---------- user create ----------

func newUserCreateCmd() *cobra.Command {
	var (
		email     string
		password  string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user account",
		Example: `  userhub user create --email admin@example.com --password secret123
  userhub user create --email admin@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(email, password, firstName, lastName)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runUserCreate(email, password, firstName, lastName string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %q", email)
	}

	// Prompt for password if not provided
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
	}
	if err := st.CreateUser(context.Background(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("a user with email %q already exists", email)
		}
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created user %q (id %s)\n", email, user.ID)
	return nil
}

// ---------- user list ----------

func newUserListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserList(cmd)
		},
	}

	return cmd
}

func runUserList(cmd *cobra.Command) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	users, total, err := st.ListUsers(context.Background(), 0, 100)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-38s %-30s %-8s\n", "ID", "EMAIL", "ACTIVE")
	for _, u := range users {
		fmt.Fprintf(cmd.OutOrStdout(), "%-38s %-30s %-8t\n", u.ID, u.Email, u.IsActive)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d user(s)\n", total)
	return nil
}

// openStore opens the configured database for CLI commands. The JWT secret
// is not needed here, so only the database settings are read.
func openStore() (*store.Store, error) {
	v := viper.GetViper()
	v.SetDefault("database.driver", "sqlite")
	driver := v.GetString("database.driver")
	dsn := v.GetString("database.dsn")

	st, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
