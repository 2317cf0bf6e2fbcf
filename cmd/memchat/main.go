package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"memory-agent/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(nil).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
