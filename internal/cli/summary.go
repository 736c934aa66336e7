package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stockbook/internal/domain/reports"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the KPI summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, opts)
		},
	}
}

func runSummary(cmd *cobra.Command, opts *RootOptions) error {
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

	sum, err := reports.NewService(l.session, opts.IDs).Summary(ctx, actor)
	if err != nil {
		return opts.fail(cmd, ExitFailure, "build summary", err)
	}

	return opts.formatter(cmd).Success(sum, func(w io.Writer) error {
		lowStock := "none"
		if len(sum.LowStockSKUs) > 0 {
			lowStock = strings.Join(sum.LowStockSKUs, ", ")
		}
		_, err := fmt.Fprintf(w,
			"Products:        %d\nOn hand:         %d pieces\nStock value:     %s\nShipped revenue: %s\nWasted:          %d pieces\nLow stock:       %s\n",
			sum.Products, sum.TotalOnHand, sum.StockValue.StringFixed(2),
			sum.ShippedRevenue.StringFixed(2), sum.WastedPieces, lowStock)
		return err
	})
}
