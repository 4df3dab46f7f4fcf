package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/service"
	"github.com/userhub/userhub/internal/store"
)

// seedFile is the YAML fixture format for the seed command.
type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	IsActive  *bool  `yaml:"is_active"`
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load user accounts from a YAML fixture",
		Long: `Seed the database with user accounts from a YAML file. Accounts whose
email already exists are skipped, so seeding is idempotent.`,
		Example: `  userhub seed --file seed.yaml

  # seed.yaml
  users:
    - email: admin@example.com
      password: Password123!
      first_name: Admin
      last_name: User
    - email: inactive@example.com
      password: Password123!
      is_active: false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "Path to the seed file")

	return cmd
}

func runSeed(cmd *cobra.Command, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(seed.Users) == 0 {
		return fmt.Errorf("seed file %s contains no users", path)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	created, skipped := 0, 0

	for _, su := range seed.Users {
		if su.Email == "" || su.Password == "" {
			return fmt.Errorf("seed entry missing email or password: %+v", su.Email)
		}

		hash, err := service.HashPassword(su.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.Email, err)
		}

		active := true
		if su.IsActive != nil {
			active = *su.IsActive
		}

		user := &model.User{
			Email:        su.Email,
			PasswordHash: hash,
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			IsActive:     active,
		}
		if err := st.CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				fmt.Fprintf(cmd.OutOrStdout(), "- skipped %s (already exists)\n", su.Email)
				skipped++
				continue
			}
			return fmt.Errorf("create %s: %w", su.Email, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "+ created %s\n", su.Email)
		created++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seed complete: %d created, %d skipped\n", created, skipped)
	return nil
}
