// Package sites implements the wiki-changes and wiki-print command trees.
package sites

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fedwiki/wikikit/pkg/config"
	"github.com/fedwiki/wikikit/pkg/logging"
	"github.com/fedwiki/wikikit/pkg/paths"
	"github.com/fedwiki/wikikit/pkg/sitemap"
	"github.com/fedwiki/wikikit/pkg/style"
)

const (
	// PodSite hosts the learning pod roster
	PodSite = "http://code.fed.wiki"
	// PodSlug is the roster page on PodSite
	PodSlug = "our-learning-pod"
)

// Deps replaces the host facilities a command tree uses. Zero values mean
// the real filesystem, network and clock.
type Deps struct {
	Fs         afero.Fs
	HTTPClient *http.Client
	Now        func() time.Time
	PodSite    string
}

type app struct {
	deps Deps

	verbosity    int
	settingsPath string
	format       string

	env      paths.Environment
	fs       afero.Fs
	settings *config.Settings
	printer  *style.Printer
	client   *sitemap.Client
}

func newApp(deps Deps) *app {
	return &app{deps: deps}
}

func (a *app) bind(cmd *cobra.Command) {
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.SetupLogger(a.verbosity)
		log.Debug().Str("command", cmd.Name()).Msg("Command started")
		return a.init(cmd)
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	pf := cmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.settingsPath, "settings", "", MsgFlagSettings)
	pf.StringVar(&a.format, "format", "auto", MsgFlagFormat)
}

func (a *app) init(cmd *cobra.Command) error {
	env, err := paths.Detect()
	if err != nil {
		return err
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
	if a.settings, err = config.Load(opts); err != nil {
		return err
	}

	httpClient := a.deps.HTTPClient
	if httpClient == nil && a.settings.Fetch.Timeout > 0 {
		httpClient = &http.Client{Timeout: a.settings.Fetch.Timeout}
	}
	a.client = sitemap.NewClient(httpClient)
	return nil
}

func (a *app) now() time.Time {
	if a.deps.Now != nil {
		return a.deps.Now()
	}
	return time.Now()
}

func (a *app) podSite() string {
	if a.deps.PodSite != "" {
		return a.deps.PodSite
	}
	return PodSite
}
