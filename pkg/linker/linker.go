package linker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fedwiki/wikikit/pkg/logging"
)

// Linker runs steps through a package manager
type Linker struct {
	runner Runner
	env    []string
	logger zerolog.Logger
}

// New creates a Linker using runner. env is passed to every command.
func New(runner Runner, env ...string) *Linker {
	return &Linker{
		runner: runner,
		env:    env,
		logger: logging.GetLogger("linker"),
	}
}

// Run executes every step that is not done, in order. onChange is called
// after each status transition with the full step list. The first failure
// stops the run; later steps stay pending.
func (l *Linker) Run(ctx context.Context, packageManager string, steps []Step, onChange func([]Step) error) error {
	notify := func() error {
		if onChange == nil {
			return nil
		}
		return onChange(steps)
	}

	for i := range steps {
		step := &steps[i]
		if step.Status == StatusDone {
			l.logger.Debug().Str("step", step.Name).Msg("Step already done, skipping")
			continue
		}

		l.logger.Info().Str("step", step.Name).Str("dir", step.Dir).Msg("Running step")
		step.Status = StatusRunning
		if err := notify(); err != nil {
			return err
		}

		err := l.runner.Run(ctx, Command{Name: packageManager, Args: step.Args, Dir: step.Dir, Env: l.env})
		if err != nil {
			step.Status = StatusFailed
			l.logger.Error().Err(err).Str("step", step.Name).Msg("Step failed")
			if nerr := notify(); nerr != nil {
				l.logger.Warn().Err(nerr).Msg("Failed to record step failure")
			}
			return err
		}

		step.Status = StatusDone
		if err := notify(); err != nil {
			return err
		}
	}
	return nil
}
