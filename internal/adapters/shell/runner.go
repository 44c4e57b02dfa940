// Package shell runs subprocesses for the backends.
package shell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger  ports.Logger
	environ func() []string
}

// NewRunner creates a new Runner inheriting the process environment through each command's policy.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger:  logger,
		environ: os.Environ,
	}
}

var _ ports.CommandRunner = (*Runner)(nil)

// Run executes cmd and waits for it to complete.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (*domain.CommandResult, error) {
	var stdout, stderr bytes.Buffer
	c := r.command(ctx, cmd)

	outW, errW, closeLogs := r.sinks(ctx, cmd, &stdout, &stderr)
	c.Stdout = outW
	c.Stderr = errW

	err := c.Run()
	closeLogs()

	result := &domain.CommandResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.String())
}

// Lines streams the standard output of cmd line by line.
func (r *Runner) Lines(ctx context.Context, cmd domain.Command) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var stderr bytes.Buffer
		c := r.command(ctx, cmd)
		c.Stderr = &stderr

		pipe, err := c.StdoutPipe()
		if err != nil {
			yield("", zerr.Wrap(err, domain.ErrCommandStartFailed.Error()))
			return
		}
		if err := c.Start(); err != nil {
			yield("", zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.String()))
			return
		}

		scanner := bufio.NewScanner(pipe)
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				cancel()
				_, _ = io.Copy(io.Discard, pipe)
				_ = c.Wait()
				return
			}
		}
		scanErr := scanner.Err()
		waitErr := c.Wait()

		switch {
		case ctx.Err() != nil:
			yield("", ctx.Err())
		case waitErr != nil:
			yield("", CommandError(cmd, exitCode(waitErr), stderr.Bytes()))
		case scanErr != nil:
			yield("", zerr.Wrap(scanErr, "failed to read command output"))
		}
	}
}

func (r *Runner) command(ctx context.Context, cmd domain.Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // commands are built by backends
	c.Dir = cmd.Dir
	c.Env = cmd.Env.Apply(r.environ())
	return c
}

// sinks returns the writers for a command. Output is teed to the vertex carried by ctx;
// diagnostics of progress commands are also forwarded to the logger.
func (r *Runner) sinks(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (io.Writer, io.Writer, func()) {
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout = io.MultiWriter(stdout, v.Stdout())
		stderr = io.MultiWriter(stderr, v.Stderr())
	}
	if !cmd.Progress || r.logger == nil {
		return stdout, stderr, func() {}
	}
	lw := &logWriter{logger: r.logger}
	return stdout, io.MultiWriter(stderr, lw), func() { _ = lw.Close() }
}

// CommandError describes a non-zero exit of cmd.
func CommandError(cmd domain.Command, code int, stderr []byte) error {
	err := zerr.Wrap(domain.ErrCommandFailed, cmd.String())
	err = zerr.With(err, "exit_code", code)
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		err = zerr.With(err, "stderr", msg)
	}
	return err
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexAny(w.buf, "\r\n")
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	if msg := strings.TrimSpace(string(line)); msg != "" {
		w.logger.Info(msg)
	}
}
