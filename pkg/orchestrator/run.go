package orchestrator

import (
	"context"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/install"
	"github.com/fedwiki/wikikit/pkg/linker"
	"github.com/fedwiki/wikikit/pkg/nodejs"
)

// Run starts the wiki server in the foreground. It returns when the server exits.
func (o *Orchestrator) Run(ctx context.Context, state *install.State) error {
	if state.Runtime.Path == "" {
		return errors.Newf(errors.ErrNotProvisioned, "%s has no runtime; run create first", state.Dir).
			WithDetail("dir", state.Dir)
	}

	args := []string{"start"}
	if flags := o.settings.Run.Flags; len(flags) > 0 {
		args = append(append(args, "--"), flags...)
	}

	cmd := linker.Command{
		Name: nodejs.PackageManager(o.platform, state.Runtime.Path),
		Args: args,
		Dir:  state.BundleDir(state.Wiki),
		Env:  nodejs.Env(o.platform, state.Runtime.Path),
	}
	o.logger.Info().Str("dir", cmd.Dir).Strs("args", args).Msg("Starting wiki")
	return o.runner.Run(ctx, cmd)
}
