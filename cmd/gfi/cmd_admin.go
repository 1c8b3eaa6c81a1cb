package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gfi/internal/config"
	"gfi/internal/middleware"
	jwtsvc "gfi/internal/pkg/jwt"
)

func newAdminTokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Print a bearer token for the admin lead API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			token, err := jwtsvc.New(cfg.AdminJWTSecret, cfg.AdminTokenTTL).GenerateToken(subject, middleware.RoleAdmin)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "who the token is issued to")
	return cmd
}
