package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stockbook/internal/domain/store"
)

// SeedResult reports what a reset wrote.
type SeedResult struct {
	Driver    string `json:"driver"`
	Users     int    `json:"users"`
	Products  int    `json:"products"`
	Movements int    `json:"movements"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the ledger to the demo document",
		Long: `Replace the stored ledger document with a freshly seeded one.

All orders, movements and audit entries are discarded.

Examples:
  stockctl seed --driver file --path ./stockbook.json
  stockctl seed --driver sqlite --path ./stockbook.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}
}

func runSeed(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()

	l, err := opts.openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.session.Reset(ctx, opts.seeder()); err != nil {
		return opts.fail(cmd, ExitCommandError, "reset ledger", err)
	}

	var res SeedResult
	_ = l.session.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		res = SeedResult{
			Driver:    l.backend.Driver,
			Users:     len(doc.Users),
			Products:  len(doc.Products),
			Movements: len(doc.Movements),
		}
		return nil
	})

	return opts.formatter(cmd).Success(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Seeded %s ledger: %d users, %d products, %d opening movements\n",
			res.Driver, res.Users, res.Products, res.Movements)
		return err
	})
}
