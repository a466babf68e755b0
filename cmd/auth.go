package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/puchtools/puchcal/internal/config"
	"github.com/puchtools/puchcal/internal/googleauth"
	"github.com/puchtools/puchcal/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var grantServiceAccount bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize calendar access interactively",
		Long: `Run the one-time Google OAuth consent flow and cache the resulting
token for the serve command.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in the environment
(or a .env file). The token is written to TOKEN_CACHE_FILE (default:
token.json).

With --grant-service-account, the authorized user also grants writer
access on the calendar to SERVICE_ACCOUNT_EMAIL, so the service account
credential can manage events afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(grantServiceAccount)
		},
	}

	cmd.Flags().BoolVar(&grantServiceAccount, "grant-service-account", false, "Grant the service account writer access on the calendar after authorizing")

	return cmd
}

func runAuth(grantServiceAccount bool) error {
	logging.Setup(false)

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.HasOAuthClient() {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set for the consent flow")
	}

	oauthConfig := googleauth.OAuthConfig(cfg.OAuthClientID, cfg.OAuthClientSecret, "")
	flow := &googleauth.LocalConsentFlow{Config: oauthConfig}

	token, err := flow.Obtain(ctx)
	if err != nil {
		return fmt.Errorf("consent flow failed: %w", err)
	}

	if err := googleauth.SaveToken(cfg.TokenCacheFile, token); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Token cached at %s\n", cfg.TokenCacheFile)

	if grantServiceAccount {
		if cfg.ServiceAccountEmail == "" {
			return fmt.Errorf("SERVICE_ACCOUNT_EMAIL must be set to grant calendar access")
		}
		ts := oauthConfig.TokenSource(ctx, token)
		if err := googleauth.GrantWriterAccess(ctx, ts, cfg.CalendarID, cfg.ServiceAccountEmail); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Granted writer access on %s to %s\n", cfg.CalendarID, cfg.ServiceAccountEmail)
	}

	return nil
}
