package gitcmd

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Runner executes git commands with shared logging and output handling.
type Runner struct {
	Dir    string
	Logger *zap.Logger
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	output := string(r.Stdout)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Result) StderrString(trim bool) string {
	output := string(r.Stderr)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Runner) withDefaults() Runner {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	return r
}

func (r Runner) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	return cmd
}

// Run executes a git command and captures stdout/stderr.
func (r Runner) Run(ctx context.Context, args ...string) (Result, error) {
	r = r.withDefaults()
	cmd := r.command(ctx, args...)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	err := cmd.Run()
	r.Logger.Debug("git command finished",
		zap.Strings("args", args),
		zap.Int("exit_code", cmd.ProcessState.ExitCode()),
		zap.Duration("duration", time.Since(start)),
		zap.Int("stdout_bytes", outBuf.Len()))

	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}

// CommandLine renders args the way they would be typed in a shell, for error messages.
func CommandLine(args []string) string {
	return "git " + strings.Join(args, " ")
}
