// Package create implements the wiki-create command tree.
package create

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fedwiki/wikikit/internal/version"
	"github.com/fedwiki/wikikit/pkg/cobrax/topics"
	"github.com/fedwiki/wikikit/pkg/linker"
	"github.com/fedwiki/wikikit/pkg/logging"
	"github.com/fedwiki/wikikit/pkg/paths"
	"github.com/fedwiki/wikikit/pkg/printer"
	"github.com/fedwiki/wikikit/pkg/style"
)

//go:embed help
var helpFiles embed.FS

// Deps replaces the host facilities a command tree uses. Zero values mean
// the real filesystem, subprocesses, platform and network.
type Deps struct {
	Fs         afero.Fs
	Runner     linker.Runner
	Platform   paths.Platform
	HTTPClient *http.Client
}

// NewRootCmd creates the wiki-create command tree
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(Deps{})
}

// NewRootCmdWithDeps creates the command tree over deps
func NewRootCmdWithDeps(deps Deps) *cobra.Command {
	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:     "wiki-create",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.init(cmd)
		},
		RunE:          a.runCreate,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.dir, "dir", "", MsgFlagDir)
	pf.StringVar(&a.document, "config", "", MsgFlagConfig)
	pf.StringVar(&a.settingsPath, "settings", "", MsgFlagSettings)
	pf.StringVar(&a.format, "format", "auto", MsgFlagFormat)

	f := rootCmd.Flags()
	f.BoolVar(&a.create.update, "update", false, MsgFlagUpdate)
	f.StringVar(&a.create.wiki, "wiki", "", MsgFlagWiki)
	f.StringVar(&a.create.server, "server", "", MsgFlagServer)
	f.StringVar(&a.create.client, "client", "", MsgFlagClient)
	f.StringArrayVar(&a.create.plugins, "plugin", nil, MsgFlagPlugin)
	f.StringVar(&a.create.node, "node-version", "", MsgFlagNode)

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newSettingsCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if sub, err := fs.Sub(helpFiles, "help"); err == nil {
		_, err = topics.Initialize(rootCmd, sub, topics.Options{
			Render: func(content, ext string) string {
				if ext != ".md" || style.DetectFormat(os.Stdout) != style.FormatTerminal {
					return content
				}
				return printer.RenderMarkdown(content, "auto", 0)
			},
		})
		if err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// Execute runs the command tree and returns the process exit code
func Execute(ctx context.Context) int {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		style.NewPrinter(os.Stdout, os.Stderr, style.DetectFormat(os.Stderr)).Error("%v", err)
		return 1
	}
	return 0
}
