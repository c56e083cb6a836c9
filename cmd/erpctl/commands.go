package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/app"
	"github.com/noah-isme/aviation-erp-api/internal/config"
	"github.com/noah-isme/aviation-erp-api/internal/database"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/service"
)

const commandTimeout = 2 * time.Minute

type options struct {
	databaseURL string
	verbose     bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "erpctl",
		Short: "Administrative tasks for the aviation ERP API",
		Long: `erpctl runs maintenance tasks against the ERP database without going through HTTP.

Configuration is read the same way as the API server (ERP_* environment variables and an
optional .env file). --database overrides ERP_DATABASE_URL.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.databaseURL, "database", "", "database url (sqlite://path or a postgres dsn)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log service activity to stderr")

	root.AddCommand(newMigrateCommand(opts))
	root.AddCommand(newBootstrapCommand(opts))
	root.AddCommand(newUndoCommand(opts))
	return root
}

func newMigrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, err := opts.open(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

func newBootstrapCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Provision the superuser and any missing student credentials",
		Long: `Creates the superuser credential if absent and a credential for every student that has
none. Generated passwords are printed once and cannot be recovered later.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, _, err := opts.open(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			provisioned, err := container.Auth.Bootstrap(ctx, "erpctl")
			if err != nil {
				return fmt.Errorf("bootstrap credentials: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(provisioned) == 0 {
				fmt.Fprintln(out, "No new credentials")
				return nil
			}
			for _, cred := range provisioned {
				fmt.Fprintf(out, "%s\t%s\n", cred.Username, cred.Password)
			}
			return nil
		},
	}
}

func newUndoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <activity-id>",
		Short: "Reverse a logged action as the superuser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid activity id %q", args[0])
			}

			container, _, err := opts.open(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			resp, err := container.Undo.Undo(ctx, service.NewPrincipal(models.SuperuserID, ""), uint(id))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Undid %s #%d\n", resp.ActionType, resp.ActivityID)
			return nil
		},
	}
}

// open loads configuration, connects, migrates and wires services without external providers.
func (o *options) open(cmd *cobra.Command) (*app.Container, *gorm.DB, error) {
	if o.databaseURL != "" {
		if err := os.Setenv("ERP_DATABASE_URL", o.databaseURL); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}

	logger := zerolog.Nop()
	if o.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	}
	return app.Build(cfg, db, app.Providers{}, logger), db, nil
}
