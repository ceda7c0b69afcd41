// Package main is the entry point for the recon CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/filerecon/recon/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(cli.Execute(ctx))
}
