package orchestrator

import (
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/filesystem"
	"github.com/fedwiki/wikikit/pkg/install"
)

// DeleteAll removes the whole install directory. It reports whether
// anything was removed.
func (o *Orchestrator) DeleteAll(state *install.State) (bool, error) {
	return o.remove(state.Dir, "install")
}

// DeleteRuntime removes the extracted runtime directory. The downloaded
// archive and the document are kept.
//
// Without a document the runtime recorded by an unfinished create's
// checkpoint is used. A runtime path outside state.Dir is never removed.
func (o *Orchestrator) DeleteRuntime(state *install.State) (bool, error) {
	path := state.Runtime.Path
	if path == "" && !o.store.Exists(state.Dir) {
		cp, err := o.store.LoadCheckpoint(state.Dir)
		if err != nil {
			return false, err
		}
		if cp != nil {
			cp.Rebase(state.Dir)
			path = cp.Runtime.Path
		}
	}
	if path == "" {
		o.logger.Info().Str("dir", state.Dir).Msg("No runtime recorded, nothing to delete")
		return false, nil
	}
	if !state.Contains(path) {
		return false, errors.Newf(errors.ErrInvalidInput, "runtime %s is outside the install %s", path, state.Dir).
			WithDetail("path", path).
			WithDetail("dir", state.Dir)
	}
	return o.remove(path, "runtime")
}

// DeleteBundle removes one bundle directory by kind (wiki, server or client)
func (o *Orchestrator) DeleteBundle(state *install.State, kind string) (bool, error) {
	spec, ok := state.Spec(kind)
	if !ok {
		return false, errors.Newf(errors.ErrInvalidInput, "unknown bundle %q; expected one of %v", kind, install.Kinds).
			WithDetail("kind", kind)
	}
	return o.remove(state.BundleDir(spec), kind)
}

func (o *Orchestrator) remove(path, what string) (bool, error) {
	logger := o.logger.With().Str("target", what).Str("path", path).Logger()
	if !filesystem.Exists(o.fs, path) {
		logger.Info().Msg("Nothing to delete")
		return false, nil
	}
	if err := o.fs.RemoveAll(path); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to delete %s", path).
			WithDetail("path", path)
	}
	logger.Info().Msg("Deleted")
	return true, nil
}
