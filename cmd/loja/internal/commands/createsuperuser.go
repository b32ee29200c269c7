package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/devNatanFrei/e-commerce/internal/platform/db"
	"github.com/devNatanFrei/e-commerce/internal/platform/hash"
	"github.com/devNatanFrei/e-commerce/internal/platform/validation"
	"github.com/devNatanFrei/e-commerce/internal/user"
	"github.com/spf13/cobra"
)

const envSuperuserPassword = "SUPERUSER_PASSWORD"

func newCreateSuperuserCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a superuser account for the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			input := struct {
				Email string `json:"email" validate:"required,email"`
			}{Email: email}
			if errs := validation.NewGoPlaygroundValidator().ValidateStruct(input); len(errs) > 0 {
				return fmt.Errorf("invalid email: %s", errs["email"])
			}

			if password == "" {
				password = os.Getenv(envSuperuserPassword)
			}
			if password == "" {
				return fmt.Errorf("no password given: pass --password or set %s", envSuperuserPassword)
			}

			conn, err := db.Connect(cmd.Context(), cfg.DB)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer closeDB(conn)

			users := user.NewModule(conn, hash.NewArgon2Hasher(cfg.Argon2, cfg.SecretKey))
			created, err := users.Service().CreateUser(cmd.Context(), user.CreateUserParams{
				Email:       email,
				Password:    password,
				IsSuperuser: true,
			})
			if err != nil {
				if errors.Is(err, user.ErrEmailTaken) {
					return fmt.Errorf("a user with email %q already exists", email)
				}
				return fmt.Errorf("create superuser: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created.\n", created.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address of the superuser")
	cmd.Flags().StringVar(&password, "password", "", "password (falls back to "+envSuperuserPassword+")")

	return cmd
}
