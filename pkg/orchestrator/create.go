package orchestrator

import (
	"context"

	"github.com/fedwiki/wikikit/pkg/bundles"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/install"
	"github.com/fedwiki/wikikit/pkg/linker"
	"github.com/fedwiki/wikikit/pkg/logging"
	"github.com/fedwiki/wikikit/pkg/nodejs"
)

// CreateOptions controls a create run
type CreateOptions struct {
	// Update reprovisions an existing install. Artifacts already on disk are
	// reused; every linker step runs again.
	Update bool
}

// Outcome reports what Create did
type Outcome struct {
	State *install.State
	// AlreadyProvisioned is set when the directory held a document and
	// Update was not requested; nothing else happened.
	AlreadyProvisioned bool
	// Resumed is set when progress from an earlier failed run was picked up
	Resumed bool
	// Downloads counts artifacts fetched from the network
	Downloads int
	Bundles   []bundles.Bundle
}

// Create provisions state.Dir: runtime, bundles, dependency links and
// finally the install document
func (o *Orchestrator) Create(ctx context.Context, state *install.State, opts CreateOptions) (*Outcome, error) {
	logger := o.logger.With().Str("dir", state.Dir).Logger()
	done := logging.LogOperationStart(logger, "create")
	defer done()

	out := &Outcome{State: state}
	if o.store.Exists(state.Dir) && !opts.Update {
		logger.Info().Msg("Already provisioned")
		out.AlreadyProvisioned = true
		return out, nil
	}

	if !opts.Update {
		resumed, err := o.resume(state)
		if err != nil {
			return nil, err
		}
		out.Resumed = resumed
	}

	if err := o.fs.MkdirAll(state.Dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", state.Dir).
			WithDetail("path", state.Dir)
	}

	start := o.fetcher.downloads
	defer func() { out.Downloads = o.fetcher.downloads - start }()

	o.phase(PhaseRuntime)
	runtime := nodejs.New(o.fs, o.fetcher, o.extractor(state), o.platform, o.settings.Runtime)
	if err := runtime.Provision(ctx, state.Dir, &state.Runtime); err != nil {
		o.checkpoint(state)
		return nil, err
	}
	o.checkpoint(state)

	o.phase(PhaseBundles)
	provisioner := bundles.New(state.Dir, o.settings.Archive.Host, o.fetcher, o.extractor(state))
	provisioned, err := provisioner.Provision(ctx, state.Bundles()...)
	if err != nil {
		o.checkpoint(state)
		return nil, err
	}
	out.Bundles = provisioned
	o.checkpoint(state)

	o.phase(PhaseLink)
	steps := linker.Plan(layoutOf(provisioned))
	if !opts.Update {
		steps = linker.Merge(steps, state.Steps)
	}
	state.Steps = steps

	npm := nodejs.PackageManager(o.platform, state.Runtime.Path)
	l := linker.New(o.runner, nodejs.Env(o.platform, state.Runtime.Path)...)
	if err := l.Run(ctx, npm, state.Steps, func([]linker.Step) error {
		return o.store.SaveCheckpoint(state)
	}); err != nil {
		return nil, err
	}

	o.phase(PhaseSave)
	if err := o.store.Save(state); err != nil {
		return nil, err
	}
	if err := o.store.ClearCheckpoint(state); err != nil {
		logger.Warn().Err(err).Msg("Failed to remove checkpoint")
	}
	logger.Info().Msg("Install complete")
	return out, nil
}

// resume folds a checkpoint left by a failed run into state
func (o *Orchestrator) resume(state *install.State) (bool, error) {
	cp, err := o.store.LoadCheckpoint(state.Dir)
	if err != nil || cp == nil {
		return false, err
	}

	if state.Runtime.IsZero() {
		state.Runtime = cp.Runtime
	}
	if state.Extractions == nil {
		state.Extractions = make(map[string]string, len(cp.Extractions))
	}
	for name, root := range cp.Extractions {
		if _, ok := state.Extractions[name]; !ok {
			state.Extractions[name] = root
		}
	}
	state.Steps = cp.Steps

	o.logger.Info().Str("dir", state.Dir).Int("pending", linker.Pending(cp.Steps)).Msg("Resuming from checkpoint")
	return true, nil
}

// checkpoint records progress; a failure here does not abort the run
func (o *Orchestrator) checkpoint(state *install.State) {
	if err := o.store.SaveCheckpoint(state); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to write checkpoint")
	}
}

func layoutOf(provisioned []bundles.Bundle) linker.Layout {
	l := linker.Layout{
		Wiki:   provisioned[0].Path,
		Server: provisioned[1].Path,
		Client: provisioned[2].Path,
	}
	for _, b := range provisioned[3:] {
		l.Plugins = append(l.Plugins, b.Path)
	}
	return l
}
