// Package cli implements the stockctl command line.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"stockbook/internal/config"
	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/security"
	"stockbook/internal/domain/store"
	"stockbook/internal/infrastructure/storage"
	"stockbook/pkg/logger"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string
	As      string // user id to act as; empty acts as the system actor

	Storage config.StorageConfig
	JWT     config.JWTConfig

	IDs         id.Source
	SeedOptions []store.SeedOption
}

// NewRootCommand creates the root command. cfg supplies flag defaults.
func NewRootCommand(cfg *config.Config, ids id.Source, seedOpts ...store.SeedOption) *cobra.Command {
	opts := &RootOptions{
		Storage:     cfg.Storage,
		JWT:         cfg.JWT,
		IDs:         ids,
		SeedOptions: seedOpts,
	}

	cmd := &cobra.Command{
		Use:   "stockctl",
		Short: "stockctl - operate the stockbook ledger",
		Long:  "Inspect and reset the stockbook ledger document and issue local access tokens.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}

			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			log, err := logger.New(logger.Config{Level: level, OutputPaths: []string{"stderr"}})
			if err != nil {
				return WrapExitError(ExitCommandError, "init logger", err)
			}
			cmd.SetContext(logger.WithLogger(cmd.Context(), log))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.As, "as", "", "act as this user id (default: system)")
	cmd.PersistentFlags().StringVar(&opts.Storage.Driver, "driver", opts.Storage.Driver, "storage driver (memory|file|sqlite|postgres)")
	cmd.PersistentFlags().StringVar(&opts.Storage.Path, "path", opts.Storage.Path, "document file or sqlite database")
	cmd.PersistentFlags().StringVar(&opts.Storage.DatabaseURL, "database-url", opts.Storage.DatabaseURL, "postgres connection string")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewLedgerCommand(opts))
	cmd.AddCommand(NewAuditCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// ledger is an open session plus its backend.
type ledger struct {
	session *store.Session
	backend *storage.Backend
}

func (l *ledger) Close() {
	l.backend.Close()
}

func (o *RootOptions) seeder() store.Seeder {
	return store.Seed(o.IDs, o.SeedOptions...)
}

// openLedger opens the configured backend, seeding it when empty.
func (o *RootOptions) openLedger(ctx context.Context) (*ledger, error) {
	backend, err := storage.Open(ctx, o.Storage)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open storage", err)
	}

	session, err := store.Open(ctx, backend.Repository, o.seeder())
	if err != nil {
		backend.Close()
		return nil, WrapExitError(ExitCommandError, "open ledger", err)
	}
	return &ledger{session: session, backend: backend}, nil
}

// actor resolves --as against the document's users.
func (o *RootOptions) actor(ctx context.Context, l *ledger) (security.Actor, error) {
	if o.As == "" {
		return security.System, nil
	}

	var actor security.Actor
	err := l.session.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		u, ok := doc.User(o.As)
		if !ok {
			return apperror.NewNotFound("user", o.As)
		}
		actor = u.Actor()
		return nil
	})
	return actor, err
}

// fail renders err and returns an ExitError for main to map to a status code.
func (o *RootOptions) fail(cmd *cobra.Command, code int, message string, err error) error {
	_ = o.formatter(cmd).Error(err)
	return WrapExitError(code, message, err)
}
