package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/featuremap/internal/cli"
	"github.com/matzehuels/featuremap/pkg/errors"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitConfig   = 2   // unusable featuremap.yaml or FEATUREMAP_* values
	exitCanceled = 130 // shell convention for SIGINT
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level must be set before config loading so its debug lines show.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return loadConfig(cmd, args)
	}

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, context.Canceled) || ctx.Err() != nil:
		return exitCanceled
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	if errors.Is(err, errors.ErrCodeInvalidConfig) {
		return exitConfig
	}
	return exitError
}
