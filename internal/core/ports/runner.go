package ports

import (
	"context"
	"iter"

	"go.trai.ch/crater/internal/core/domain"
)

// CommandRunner runs subprocesses.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd to completion and captures its output.
	// A non-zero exit status is reported through the result, not the error.
	Run(ctx context.Context, cmd domain.Command) (*domain.CommandResult, error)

	// Lines streams the standard output of cmd line by line.
	// Stopping the iteration terminates the process.
	// A non-zero exit status is yielded as a final error.
	Lines(ctx context.Context, cmd domain.Command) iter.Seq2[string, error]
}
