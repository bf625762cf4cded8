package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/khrees2412/hireboard/internal/app"
	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/internal/config"
	"github.com/khrees2412/hireboard/internal/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hireboard",
	Short: "Job marketplace record keeper",
	Long: `Hireboard keeps the records of a small job marketplace: employers post vacancies,
job seekers apply for or save them, and both sides manage their accounts.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		cfg := *config.AppConfig
		if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
			cfg.DBPath = dbPath
		}

		// Initialize app with all dependencies
		application, err := app.New(cmd.Context(), &cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		cmd.SetContext(app.WithApp(cmd.Context(), application))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.FromContext(cmd.Context())
		if err != nil {
			return nil
		}
		return application.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), describe(err))
		os.Exit(1)
	}
}

// describe adds a hint for the failures a user can act on
func describe(err error) string {
	var ue *apperr.UnauthorizedError
	if errors.As(err, &ue) {
		return err.Error() + " (pass --email and --password, or set them with 'hireboard config set')"
	}
	return err.Error()
}

func getApp(cmd *cobra.Command) (*app.App, error) {
	return app.FromContext(cmd.Context())
}

// loginSession logs in with --email/--password, falling back to the
// configured credentials, and returns the established session.
func loginSession(cmd *cobra.Command, a *app.App) (*session.Session, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" {
		email = a.Config.Email
	}
	if password == "" {
		password = a.Config.Password
	}
	if email == "" && password == "" {
		return nil, &apperr.UnauthorizedError{}
	}

	if _, err := a.Market.Login(cmd.Context(), a.Session, email, password); err != nil {
		return nil, err
	}
	return a.Session, nil
}

func init() {
	rootCmd.PersistentFlags().String("email", "", "Login email (defaults to the configured email)")
	rootCmd.PersistentFlags().String("password", "", "Login password (defaults to the configured password)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database (defaults to db_path)")
}
