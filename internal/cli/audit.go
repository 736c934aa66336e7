package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"stockbook/internal/domain/audit"
)

// NewAuditCommand creates the audit command.
func NewAuditCommand(opts *RootOptions) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Print the most recent audit entries",
		Long: `Print audit entries, newest first.

Examples:
  stockctl audit --last 20
  stockctl audit --last 0 --format json   # whole trail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, opts, last)
		},
	}

	cmd.Flags().IntVarP(&last, "last", "n", 20, "number of entries (0 for all)")
	return cmd
}

func runAudit(cmd *cobra.Command, opts *RootOptions, last int) error {
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

	entries, err := audit.NewService(l.session, opts.IDs).Last(ctx, actor, last)
	if err != nil {
		return opts.fail(cmd, ExitFailure, "read audit", err)
	}

	return opts.formatter(cmd).Success(entries, func(w io.Writer) error {
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s  %-10s  %-24s  %s\n",
				e.At.Format(time.RFC3339), e.ActorID, e.Action, e.Message); err != nil {
				return err
			}
		}
		return nil
	})
}
