package create

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fedwiki/wikikit/pkg/branchspec"
	"github.com/fedwiki/wikikit/pkg/config"
	"github.com/fedwiki/wikikit/pkg/fetch"
	"github.com/fedwiki/wikikit/pkg/install"
	"github.com/fedwiki/wikikit/pkg/orchestrator"
	"github.com/fedwiki/wikikit/pkg/paths"
	"github.com/fedwiki/wikikit/pkg/style"
)

type createFlags struct {
	update  bool
	wiki    string
	server  string
	client  string
	plugins []string
	node    string
}

// app holds the flags and the environment shared by every command
type app struct {
	deps Deps

	verbosity    int
	dir          string
	document     string
	settingsPath string
	format       string
	create       createFlags

	env      paths.Environment
	fs       afero.Fs
	settings *config.Settings
	printer  *style.Printer
}

func (a *app) init(cmd *cobra.Command) error {
	env, err := paths.Detect()
	if err != nil {
		return err
	}
	if a.deps.Platform != (paths.Platform{}) {
		env.Platform = a.deps.Platform
	}
	a.env = env

	a.fs = a.deps.Fs
	if a.fs == nil {
		a.fs = afero.NewOsFs()
	}

	format, err := style.ParseFormat(a.format)
	if err != nil {
		return err
	}
	if format == style.FormatAuto {
		format = style.FormatFor(cmd.OutOrStdout())
	}
	a.printer = style.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)

	opts := config.LoadOptions{Path: env.SettingsPath()}
	if a.settingsPath != "" {
		opts.Path = env.ExpandHome(a.settingsPath)
		opts.Required = true
	}
	if a.create.node != "" {
		opts.Overrides = map[string]interface{}{"runtime.version": a.create.node}
	}
	a.settings, err = config.Load(opts)
	return err
}

func (a *app) orchestrator(cmd *cobra.Command) *orchestrator.Orchestrator {
	opts := orchestrator.Options{
		Fs:       a.fs,
		Platform: a.env.Platform,
		Settings: a.settings,
		Runner:   a.deps.Runner,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		OnPhase: func(p orchestrator.Phase) {
			a.printer.Info("%s", phaseMessage(p))
		},
	}
	if a.deps.HTTPClient != nil {
		opts.Fetcher = fetch.New(a.fs, a.deps.HTTPClient)
	}
	return orchestrator.New(opts)
}

// state resolves the install the command operates on
func (a *app) state(o *orchestrator.Orchestrator) (*install.State, error) {
	if a.document != "" {
		path, err := a.env.Resolve(a.document)
		if err != nil {
			return nil, err
		}
		s, err := o.LoadFile(path)
		if err != nil {
			return nil, err
		}
		dir, err := a.env.Resolve(s.Dir)
		if err != nil {
			return nil, err
		}
		s.Rebase(dir)
		return s, nil
	}

	dir := a.dir
	if dir == "" {
		dir = a.settings.Defaults.Dir
	}
	dir, err := a.env.Resolve(dir)
	if err != nil {
		return nil, err
	}
	return o.Load(dir)
}

// applyBundleFlags overrides the bundle specs of s from the command line
func (a *app) applyBundleFlags(s *install.State) error {
	set := func(dst *branchspec.BranchSpec, value string) error {
		if value == "" {
			return nil
		}
		spec, err := branchspec.Parse(value)
		if err != nil {
			return err
		}
		*dst = spec
		return nil
	}
	if err := set(&s.Wiki, a.create.wiki); err != nil {
		return err
	}
	if err := set(&s.Server, a.create.server); err != nil {
		return err
	}
	if err := set(&s.Client, a.create.client); err != nil {
		return err
	}
	if len(a.create.plugins) > 0 {
		s.Plugins = nil
		for _, p := range a.create.plugins {
			spec, err := branchspec.Parse(p)
			if err != nil {
				return err
			}
			s.Plugins = append(s.Plugins, spec)
		}
	}
	return nil
}

func phaseMessage(p orchestrator.Phase) string {
	switch p {
	case orchestrator.PhaseRuntime:
		return MsgPhaseRuntime
	case orchestrator.PhaseBundles:
		return MsgPhaseBundles
	case orchestrator.PhaseLink:
		return MsgPhaseLink
	default:
		return MsgPhaseSave
	}
}
