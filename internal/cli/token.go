package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stockbook/internal/domain/auth"
)

// NewTokenCommand creates the token command.
func NewTokenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <userID>",
		Short: "Issue an access token without a password",
		Long: `Issue a bearer token for a user in the ledger document.

Intended for local use: whoever can run stockctl against the storage can
already rewrite the document.

Examples:
  stockctl token u-warehouse
  curl -H "Authorization: Bearer $(stockctl token u-admin)" localhost:8080/api/v1/inventory`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, opts, args[0])
		},
	}
}

func runToken(cmd *cobra.Command, opts *RootOptions, userID string) error {
	ctx := cmd.Context()

	l, err := opts.openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	jwtCfg := auth.DefaultJWTConfig(opts.JWT.Secret)
	if opts.JWT.TTL > 0 {
		jwtCfg.AccessTokenTTL = opts.JWT.TTL
	}
	svc := auth.NewService(l.session, auth.NewJWTService(jwtCfg, nil))

	token, err := svc.IssueToken(ctx, userID)
	if err != nil {
		return opts.fail(cmd, ExitFailure, "issue token", err)
	}

	return opts.formatter(cmd).Success(token, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, token.AccessToken)
		return err
	})
}
