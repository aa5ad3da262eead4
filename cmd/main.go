package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Go-Recipe-Hub/cmd/config"
	migration "Go-Recipe-Hub/cmd/database/migrate"
	"Go-Recipe-Hub/internal/logging"
	"Go-Recipe-Hub/internal/utils"
	"Go-Recipe-Hub/pkg/jwt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "recipe-hub",
		Short: "Recipe sharing backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.LoadConfig(cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", utils.DefaultConfigPath, "Path to configuration file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServer(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(func(db *gorm.DB, logger *zap.Logger) error {
					return migration.Migrate(db, logger)
				})
			},
		},
		tokenCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func tokenCommand() *cobra.Command {
	var (
		userID uint
		email  string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 && email == "" {
				return errors.New("either --user-id or --email is required")
			}
			token, err := jwt.NewJWTService(utils.GetConfig("JWT_SECRET")).GenerateTokenUser(userID, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user-id", 0, "User id carried by the token")
	cmd.Flags().StringVar(&email, "email", "", "User email carried by the token")
	return cmd
}

func withDatabase(run func(db *gorm.DB, logger *zap.Logger) error) error {
	logger, err := logging.NewLogger(utils.GetConfig("LOG_LEVEL"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := config.ConnectDB(logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return run(db, logger)
}

func runServer(ctx context.Context) error {
	return withDatabase(func(db *gorm.DB, logger *zap.Logger) error {
		app, err := config.NewApp(db, logger)
		if err != nil {
			return err
		}

		signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Listen(":" + utils.GetConfig("APP_PORT"))
		}()
		logger.Info("server started", zap.String("port", utils.GetConfig("APP_PORT")))

		select {
		case err := <-errCh:
			return err
		case <-signalCtx.Done():
			logger.Info("shutting down")
			return app.ShutdownWithTimeout(10 * time.Second)
		}
	})
}
