package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"autoshorts/internal/cli"
	"autoshorts/internal/status"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		status.Error("%v", err)
		os.Exit(1)
	}
}
