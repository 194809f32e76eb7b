package sites

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fedwiki/wikikit/internal/version"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/sitemap"
	"github.com/fedwiki/wikikit/pkg/style"
)

type changesFlags struct {
	pod  bool
	site string
	days int
}

// NewChangesCmd creates the wiki-changes command
func NewChangesCmd() *cobra.Command {
	return NewChangesCmdWithDeps(Deps{})
}

// NewChangesCmdWithDeps creates the wiki-changes command over deps
func NewChangesCmdWithDeps(deps Deps) *cobra.Command {
	a := newApp(deps)
	var flags changesFlags

	cmd := &cobra.Command{
		Use:     "wiki-changes",
		Short:   MsgChangesShort,
		Long:    MsgChangesLong,
		Example: MsgChangesExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChanges(cmd.Context(), flags)
		},
	}
	a.bind(cmd)

	f := cmd.Flags()
	f.BoolVarP(&flags.pod, "pod", "p", false, MsgFlagPod)
	f.StringVarP(&flags.site, "site", "s", "", MsgFlagSite)
	f.IntVarP(&flags.days, "days", "d", 0, MsgFlagDays)
	return cmd
}

func (a *app) runChanges(ctx context.Context, flags changesFlags) error {
	if flags.days < 0 {
		return errors.New(errors.ErrInvalidInput, MsgErrNegative)
	}

	var sites []*sitemap.Sitemap
	switch {
	case flags.pod:
		page, err := a.client.FetchPage(ctx, a.podSite(), PodSlug)
		if err != nil {
			return err
		}
		hood := sitemap.NewNeighborhood(a.client)
		if err := hood.AddAll(ctx, sitemap.Roster(page, flags.site)); err != nil {
			return err
		}
		sites = hood.Sites
	case flags.site != "":
		sm, err := a.client.FetchSitemap(ctx, flags.site)
		if err != nil {
			return err
		}
		sites = append(sites, sm)
	default:
		return errors.New(errors.ErrInvalidInput, MsgErrNoSite)
	}

	var cutoff time.Time
	if flags.days > 0 {
		cutoff = a.now().AddDate(0, 0, -flags.days)
	}
	for _, sm := range sites {
		a.printChanges(sm, cutoff)
	}
	return nil
}

func (a *app) printChanges(sm *sitemap.Sitemap, cutoff time.Time) {
	p := a.printer
	p.Println(p.Render(style.SiteStyle, sm.Name))
	for _, e := range sm.Since(cutoff) {
		if p.Styled() {
			p.Println(style.EntryStyle.Render(e.Title))
			continue
		}
		p.Println("\t" + e.Title)
	}
}

// ExecuteChanges runs wiki-changes and returns the process exit code
func ExecuteChanges(ctx context.Context) int {
	return execute(ctx, NewChangesCmd())
}

func execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		style.NewPrinter(os.Stdout, os.Stderr, style.DetectFormat(os.Stderr)).Error("%v", err)
		return 1
	}
	return 0
}
