package testutil

import (
	"context"
	"sync"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/linker"
)

// RecordingRunner records every command it is asked to run. FailOn makes
// the n-th call (1-based) fail with a subprocess error.
type RecordingRunner struct {
	mu       sync.Mutex
	Commands []linker.Command
	FailOn   int
}

// Run implements linker.Runner
func (r *RecordingRunner) Run(_ context.Context, cmd linker.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Commands = append(r.Commands, cmd)
	if r.FailOn > 0 && len(r.Commands) == r.FailOn {
		return errors.Newf(errors.ErrSubprocess, "%s exited with status 1", cmd.Name).
			WithDetail("exitCode", 1)
	}
	return nil
}

// Calls returns a copy of the recorded commands
func (r *RecordingRunner) Calls() []linker.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]linker.Command(nil), r.Commands...)
}

// Reset forgets recorded commands and clears FailOn
func (r *RecordingRunner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = nil
	r.FailOn = 0
}
