// Command relaycal validates, expands and exports calendar event recurrences.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	root := &cobra.Command{
		Use:          "relaycal",
		Short:        "Calendar recurrence tools for the relay network client",
		Version:      version + " (" + buildDate + ")",
		SilenceUsage: true,
	}
	root.AddCommand(
		newExpandCmd(),
		newValidateCmd(),
		newICSCmd(logger),
		newCoordCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
