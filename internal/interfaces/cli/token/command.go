// Package token issues access tokens for operators and integrations.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reliefops/cva/internal/infrastructure/auth"
	"github.com/reliefops/cva/internal/interfaces/cli/clienv"
	"github.com/reliefops/cva/internal/shared/authorization"
)

var (
	env        string
	configPath string
	actorID    string
	role       string
	ttl        time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Access token tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newIssueCommand())
	return cmd
}

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed access token",
		RunE:  runIssue,
	}
	cmd.Flags().StringVar(&actorID, "actor", "", "Actor id placed in the token subject (required)")
	cmd.Flags().StringVar(&role, "role", string(authorization.RoleViewer), "Role: admin, programme_manager, field_staff or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: auth.jwt.access_exp_minutes)")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, _, err := clienv.Init(clienv.Resolve(env), configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is not configured")
	}

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	issued, err := svc.Issue(actorID, authorization.UserRole(role), ttl)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, issued.AccessToken)
	fmt.Fprintf(out, "expires_at: %s\n", issued.ExpiresAt.Format(time.RFC3339))
	return nil
}
