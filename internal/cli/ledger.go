package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/domain/store"
)

// LedgerRow is one product's on-hand line.
type LedgerRow struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	Quantity     int64  `json:"quantity"`
	PiecesPerBox int64  `json:"piecesPerBox"`
}

// NewLedgerCommand creates the ledger command.
func NewLedgerCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Print on-hand quantities",
		Long: `Print the on-hand quantity of every catalog product, sorted by SKU.

Examples:
  stockctl ledger
  stockctl ledger --as u-seller --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedger(cmd, opts)
		},
	}
}

func runLedger(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()

	l, err := opts.openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	actor, err := opts.actor(ctx, l)
	if err != nil {
		return opts.fail(cmd, ExitFailure, "resolve actor", err)
	}

	svc := stock.NewService(l.session, opts.IDs, audit.NewService(l.session, opts.IDs))
	balances, err := svc.Balances(ctx, actor)
	if err != nil {
		return opts.fail(cmd, ExitFailure, "read ledger", err)
	}

	rows := make([]LedgerRow, 0, len(balances))
	_ = l.session.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		for _, b := range balances {
			row := LedgerRow{ProductID: b.ProductID, Quantity: b.Quantity}
			if p, ok := doc.Product(b.ProductID); ok {
				row.Name = p.Name
				row.PiecesPerBox = p.PiecesPerBox
			}
			rows = append(rows, row)
		}
		return nil
	})

	return opts.formatter(cmd).Success(rows, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SKU\tNAME\tON HAND\tBOXES")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d+%d\n", r.ProductID, r.Name, r.Quantity,
				r.Quantity/max(r.PiecesPerBox, 1), r.Quantity%max(r.PiecesPerBox, 1))
		}
		return tw.Flush()
	})
}
