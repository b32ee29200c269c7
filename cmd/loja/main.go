// Package main is the entry point of the loja management CLI. It registers
// the subcommands and executes them under a signal-aware context.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/devNatanFrei/e-commerce/cmd/loja/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("Command failed.", "reason", err)
		stop()
		os.Exit(1)
	}
}
