// Package shell provides the subprocess executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"go.trai.ch/mkdeb/internal/core/domain"
	"go.trai.ch/mkdeb/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
	stdin  io.Reader
}

// NewExecutor creates a new Executor. Child processes share the terminal's stdin
// so that sudo and gpg can prompt.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		stdin:  os.Stdin,
	}
}

// WithStdin replaces the stdin handed to child processes.
func (e *Executor) WithStdin(r io.Reader) *Executor {
	e.stdin = r
	return e
}

// Execute runs cmd in cmd.Dir with the process environment plus cmd.Env.
// Streams without a writer are forwarded to the logger line by line.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if cmd.Name == "" {
		return zerr.Wrap(domain.ErrSubprocessFailed, "empty command")
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // commands are composed by the toolchain
	c.Dir = cmd.Dir
	c.Env = resolveEnvironment(os.Environ(), cmd.Env)
	c.Stdin = e.stdin

	stdoutLog := &logWriter{logger: e.logger, level: levelInfo}
	stderrLog := &logWriter{logger: e.logger, level: levelWarn}
	c.Stdout = orLog(stdout, stdoutLog)
	c.Stderr = orLog(stderr, stderrLog)

	err := c.Run()
	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.With(zerr.Wrap(ctxErr, fmt.Sprintf("%s interrupted", cmd.Name)), "command", cmd.String())
	}

	exitCode := -1
	msg := fmt.Sprintf("failed to start %s", cmd.Name)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
		msg = fmt.Sprintf("%s exited with status %d", cmd.Name, exitCode)
	}

	failure := zerr.Wrap(domain.ErrSubprocessFailed, msg)
	failure = zerr.With(failure, "command", cmd.String())
	if cmd.Dir != "" {
		failure = zerr.With(failure, "dir", cmd.Dir)
	}
	failure = zerr.With(failure, "exit_code", exitCode)
	if exitCode == -1 {
		failure = zerr.With(failure, "cause", err.Error())
	}
	return failure
}

func orLog(w io.Writer, fallback *logWriter) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

type level int

const (
	levelInfo level = iota
	levelWarn
)

// logWriter buffers partial writes and logs complete lines.
type logWriter struct {
	logger ports.Logger
	level  level
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close logs any trailing partial line.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == levelInfo {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// resolveEnvironment overlays overrides on the system environment.
// Packaging tools rely on HOME, GNUPGHOME, DEBEMAIL and friends, so nothing is filtered.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}
