// Command stockctl inspects and resets the stockbook ledger.
package main

import (
	"fmt"
	"os"

	"stockbook/internal/cli"
	"stockbook/internal/config"
	"stockbook/internal/core/id"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	if err := cli.NewRootCommand(cfg, id.System{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
