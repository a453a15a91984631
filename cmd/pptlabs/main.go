// Command pptlabs aligns the edges of shapes in PowerPoint (.pptx) files.
//
//	pptlabs shapes deck.pptx --slide 2
//	pptlabs stretch left deck.pptx --slide 2 --shape "Title 1" --shape "#7"
//	pptlabs preview deck.pptx --all
//
// Interrupting a save leaves the input untouched and exits with status 130.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptlabs/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the command line in args, logging to logs. --verbose only
// exists here so the level is known before any subcommand logs.
func run(ctx context.Context, args []string, logs io.Writer) error {
	c := cli.New(logs, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "log debug details such as the reference shape and slide part")

	attachLogger := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return attachLogger(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
