package linker

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/logging"
)

// Command is one subprocess invocation
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is appended to the runner's environment
	Env []string
}

// Runner executes commands synchronously
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands on the local host, streaming their output
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	// Env is appended to the inherited environment
	Env []string

	logger zerolog.Logger
}

// NewExecRunner creates an ExecRunner writing to stdout and stderr
func NewExecRunner(stdout, stderr io.Writer, env ...string) *ExecRunner {
	return &ExecRunner{
		Stdout: stdout,
		Stderr: stderr,
		Env:    env,
		logger: logging.GetLogger("linker.exec"),
	}
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	logging.LogCommand(r.logger, c.Name, c.Args, c.Dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if env := append(append([]string(nil), r.Env...), c.Env...); len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := 127
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return errors.Wrapf(err, errors.ErrSubprocess, "%s %v failed", c.Name, c.Args).
		WithDetail("command", c.Name).
		WithDetail("args", c.Args).
		WithDetail("dir", c.Dir).
		WithDetail("exitCode", exitCode)
}
