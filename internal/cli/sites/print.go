package sites

import (
	"bytes"
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fedwiki/wikikit/internal/version"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/printer"
	"github.com/fedwiki/wikikit/pkg/sitemap"
)

type printFlags struct {
	site     string
	output   string
	terminal bool
	all      bool
	width    int
}

// NewPrintCmd creates the wiki-print command
func NewPrintCmd() *cobra.Command {
	return NewPrintCmdWithDeps(Deps{})
}

// NewPrintCmdWithDeps creates the wiki-print command over deps
func NewPrintCmdWithDeps(deps Deps) *cobra.Command {
	a := newApp(deps)
	var flags printFlags

	cmd := &cobra.Command{
		Use:     "wiki-print",
		Short:   MsgPrintShort,
		Long:    MsgPrintLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrint(cmd.Context(), flags)
		},
	}
	a.bind(cmd)

	f := cmd.Flags()
	f.StringVarP(&flags.site, "site", "s", "", MsgFlagTarget)
	f.StringVarP(&flags.output, "output", "o", printer.FileName, MsgFlagOutput)
	f.BoolVar(&flags.terminal, "terminal", false, MsgFlagTerminal)
	f.BoolVar(&flags.all, "all", false, MsgFlagAll)
	f.IntVar(&flags.width, "width", 0, MsgFlagWidth)
	_ = cmd.MarkFlagRequired("site")
	return cmd
}

func (a *app) runPrint(ctx context.Context, flags printFlags) error {
	sm, err := a.client.FetchSitemap(ctx, flags.site)
	if err != nil {
		return err
	}
	if len(sm.Entries) == 0 {
		return errors.Newf(errors.ErrMissingArtifact, MsgErrEmptySite, sm.Name).WithDetail("site", sm.URL)
	}

	entries := sm.Entries[:1]
	if flags.all {
		entries = sm.Entries
	}
	pages := make([]*sitemap.Page, 0, len(entries))
	for _, e := range entries {
		page, err := a.client.FetchPage(ctx, sm.URL, e.Slug)
		if err != nil {
			return err
		}
		pages = append(pages, page)
	}

	if flags.terminal {
		r := &printer.TerminalRenderer{Width: flags.width}
		if !a.printer.Styled() {
			r.Style = "notty"
		}
		a.printer.Println(r.Render(pages...))
		return nil
	}

	var buf bytes.Buffer
	if err := printer.WriteHTML(&buf, sm.Name, pages...); err != nil {
		return err
	}
	path, err := a.env.Resolve(flags.output)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.fs, path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path)
	}
	a.printer.Success(MsgWrote, path, len(pages))
	return nil
}

// ExecutePrint runs wiki-print and returns the process exit code
func ExecutePrint(ctx context.Context) int {
	return execute(ctx, NewPrintCmd())
}
