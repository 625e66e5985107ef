package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"osrcdl/internal/download"
)

const (
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	if errors.Is(err, download.ErrInterrupted) {
		fmt.Fprintln(os.Stderr, "Interrupted")
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCodeForError(err))
}

// exitCodeForError maps a command error to the process exit status: 130 for
// a user interrupt, 1 for everything else.
func exitCodeForError(err error) int {
	if errors.Is(err, download.ErrInterrupted) {
		return exitInterrupted
	}
	return exitError
}
