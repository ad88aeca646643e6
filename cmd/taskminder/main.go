// Package main is the entry point for the taskminder CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskminder/internal/cli"
	"taskminder/internal/commands"
)

func main() {
	// Cancel on interrupt so watch and ui shut down cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, commands.OpenEnv)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
