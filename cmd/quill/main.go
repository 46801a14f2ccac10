// Package main provides the entry point for the quill CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrz1836/quill/internal/cli"
)

// Build metadata injected via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run is separated from main so deferred cleanup runs before the process
// exits with the mapped code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer cli.CloseLogFile()

	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})

	return cli.ExitCodeForError(err)
}
