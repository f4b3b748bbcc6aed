package cli

import (
	"errors"
	"fmt"
	"time"

	model "diamond-exchange/internal/models"
	"diamond-exchange/internal/server"

	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command, which signs a bearer token with
// the configured key. Meant for local development and smoke tests.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Sign a bearer token for an actor",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSigningKey == "" {
				return errors.New("token: JWT_SIGNING_KEY is not set")
			}
			switch model.Role(role) {
			case model.RoleAdmin, model.RoleUser:
			default:
				return fmt.Errorf("token: unknown role %q", role)
			}

			tokens := server.NewTokenService(cfg.JWTSigningKey, server.Issuer)
			signed, err := tokens.Issue(model.Actor{ID: subject, Role: model.Role(role)}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "actor id (required)")
	cmd.Flags().StringVar(&role, "role", string(model.RoleUser), "actor role (user|admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
