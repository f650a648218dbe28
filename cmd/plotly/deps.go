package main

import (
	"io"
	"os"
	"time"
)

// Dependencies is what a subcommand touches outside its arguments: the
// clock behind the per-file timings of render and the two output streams.
// Tests swap in a fixed clock and buffers.
type Dependencies struct {
	Now    func() time.Time
	Stdout io.Writer // per-file results and help
	Stderr io.Writer // slog output and failures
}

// DefaultDeps wires the wall clock and the process streams.
func DefaultDeps() *Dependencies {
	return &Dependencies{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
