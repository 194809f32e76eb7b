package orchestrator

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/fedwiki/wikikit/pkg/archive"
	"github.com/fedwiki/wikikit/pkg/config"
	"github.com/fedwiki/wikikit/pkg/fetch"
	"github.com/fedwiki/wikikit/pkg/install"
	"github.com/fedwiki/wikikit/pkg/linker"
	"github.com/fedwiki/wikikit/pkg/logging"
	"github.com/fedwiki/wikikit/pkg/paths"
)

// Fetcher downloads a URL to a file unless the file exists
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) (fetch.Result, error)
}

// Phase names a stage of the create sequence
type Phase string

const (
	PhaseRuntime Phase = "runtime"
	PhaseBundles Phase = "bundles"
	PhaseLink    Phase = "link"
	PhaseSave    Phase = "save"
)

// Options configures an Orchestrator
type Options struct {
	// Fs is where installs live. Defaults to the OS filesystem.
	Fs afero.Fs
	// Platform selects the runtime distribution.
	Platform paths.Platform
	// Settings supplies runtime, archive and run configuration. Required.
	Settings *config.Settings
	// Fetcher downloads artifacts. Defaults to an HTTP fetcher bounded by
	// Settings.Fetch.Timeout.
	Fetcher Fetcher
	// Runner executes package manager commands. Defaults to an exec runner
	// streaming to Stdout and Stderr.
	Runner linker.Runner
	// Stdout and Stderr receive subprocess output. Default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// OnPhase is called as each create phase starts.
	OnPhase func(Phase)
}

// Orchestrator runs lifecycle operations against install directories
type Orchestrator struct {
	fs       afero.Fs
	platform paths.Platform
	settings *config.Settings
	fetcher  *countingFetcher
	runner   linker.Runner
	store    *install.Store
	onPhase  func(Phase)
	logger   zerolog.Logger
}

// New creates an Orchestrator, filling defaults for unset options
func New(opts Options) *Orchestrator {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Platform == (paths.Platform{}) {
		opts.Platform = paths.CurrentPlatform()
	}
	if opts.Settings == nil {
		if s, err := config.Default(); err == nil {
			opts.Settings = s
		} else {
			opts.Settings = &config.Settings{}
		}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Fetcher == nil {
		client := &http.Client{Timeout: opts.Settings.Fetch.Timeout}
		if client.Timeout == 0 {
			client.Timeout = fetch.DefaultTimeout
		}
		opts.Fetcher = fetch.New(opts.Fs, client)
	}
	if opts.Runner == nil {
		opts.Runner = linker.NewExecRunner(opts.Stdout, opts.Stderr)
	}

	return &Orchestrator{
		fs:       opts.Fs,
		platform: opts.Platform,
		settings: opts.Settings,
		fetcher:  &countingFetcher{next: opts.Fetcher},
		runner:   opts.Runner,
		store:    install.NewStore(opts.Fs),
		onPhase:  opts.OnPhase,
		logger:   logging.GetLogger("orchestrator"),
	}
}

// Load returns the install in dir, or a fresh state seeded from settings
// when dir holds no document. The state always points at dir; a document
// written elsewhere has its recorded paths rebased onto dir.
func (o *Orchestrator) Load(dir string) (*install.State, error) {
	if !o.store.Exists(dir) {
		return install.FromSettings(dir, o.settings)
	}
	s, err := o.store.Load(dir)
	if err != nil {
		return nil, err
	}
	s.Rebase(dir)
	return s, nil
}

// LoadFile reads an install document from an explicit path
func (o *Orchestrator) LoadFile(path string) (*install.State, error) {
	return o.store.LoadFile(path)
}

func (o *Orchestrator) phase(p Phase) {
	o.logger.Debug().Str("phase", string(p)).Msg("Starting phase")
	if o.onPhase != nil {
		o.onPhase(p)
	}
}

// countingFetcher counts downloads that hit the network
type countingFetcher struct {
	next      Fetcher
	downloads int
}

func (c *countingFetcher) Fetch(ctx context.Context, url, dest string) (fetch.Result, error) {
	res, err := c.next.Fetch(ctx, url, dest)
	if err == nil && !res.Skipped {
		c.downloads++
	}
	return res, err
}

func (o *Orchestrator) extractor(state *install.State) *archive.Extractor {
	if state.Extractions == nil {
		state.Extractions = archive.Manifest{}
	}
	return archive.NewExtractor(o.fs, state.Extractions)
}
