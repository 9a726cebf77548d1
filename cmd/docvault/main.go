package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docvault-api/internal"
	"docvault-api/internal/infrastructure/jwt"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "docvault: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "docvault",
		Short:        "Identity document storage API",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newTokenCmd(),
	)
	return cmd
}

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the message workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logger, cfg, err := internal.Bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if migrate {
				if err = internal.Migrate(ctx, logger, cfg); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			app, err := internal.NewApp(ctx, logger, cfg)
			if err != nil {
				logger.Error("init app failed", zap.Error(err))
				return err
			}
			defer app.Close()

			app.InitControllers()

			if err = app.Run(ctx); err != nil {
				app.Logger().Sugar().Errorf("docvaultapi stopped with error: %v", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply database migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := internal.Bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			return internal.Migrate(cmd.Context(), logger, cfg)
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		userID    uint64
		cognitoID string
		ttl       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user-id is required")
			}

			logger, cfg, err := internal.Bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.App.JWTSecret == "" {
				return fmt.Errorf("SERVICE_JWT_SECRET is not set")
			}

			tok, err := jwt.New(cfg.App.JWTSecret).GenerateJWT(userID, cognitoID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&userID, "user-id", 0, "Internal user id to embed in the token")
	cmd.Flags().StringVar(&cognitoID, "cognito-id", "", "Cognito subject to embed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
