package create

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/fedwiki/wikikit/internal/version"
	"github.com/fedwiki/wikikit/pkg/config"
	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/install"
	"github.com/fedwiki/wikikit/pkg/linker"
	"github.com/fedwiki/wikikit/pkg/orchestrator"
	"github.com/fedwiki/wikikit/pkg/style"
)

func (a *app) runCreate(cmd *cobra.Command, args []string) error {
	o := a.orchestrator(cmd)
	state, err := a.state(o)
	if err != nil {
		return err
	}
	if err := a.applyBundleFlags(state); err != nil {
		return err
	}

	log.Info().Str("dir", state.Dir).Bool("update", a.create.update).Msg("Creating wiki")
	out, err := o.Create(cmd.Context(), state, orchestrator.CreateOptions{Update: a.create.update})
	if err != nil {
		return err
	}

	switch {
	case out.AlreadyProvisioned:
		a.printer.Warning(MsgAlreadyProvisioned, state.Dir)
	default:
		if out.Resumed {
			a.printer.Info(MsgResumed, state.Dir)
		}
		a.printer.Success(MsgCreated, state.Dir, out.Downloads)
		a.printer.Println(a.printer.Render(style.MutedStyle, fmt.Sprintf(MsgStartHint, state.Dir)))
	}
	return nil
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: MsgRunShort,
		Long:  MsgRunLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := a.orchestrator(cmd)
			state, err := a.state(o)
			if err != nil {
				return err
			}
			return o.Run(cmd.Context(), state)
		},
	}
}

// deleteTargets lists what delete accepts besides the bundle kinds
var deleteTargets = append([]string{"all", "runtime"}, install.Kinds...)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "delete <all|runtime|wiki|server|client>",
		Short:     MsgDeleteShort,
		Long:      MsgDeleteLong,
		Example:   MsgDeleteExample,
		ValidArgs: deleteTargets,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := a.orchestrator(cmd)
			state, err := a.state(o)
			if err != nil {
				return err
			}

			target := strings.ToLower(args[0])
			var removed bool
			switch target {
			case "all":
				removed, err = o.DeleteAll(state)
			case "runtime":
				removed, err = o.DeleteRuntime(state)
			case install.KindWiki, install.KindServer, install.KindClient:
				removed, err = o.DeleteBundle(state, target)
			default:
				return errors.Newf(errors.ErrInvalidInput, MsgErrUnknownTarget, args[0])
			}
			if err != nil {
				return err
			}

			if removed {
				a.printer.Success(MsgDeleted, target, state.Dir)
			} else {
				a.printer.Info(MsgNothingDeleted, target, state.Dir)
			}
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := a.orchestrator(cmd)
			state, err := a.state(o)
			if err != nil {
				return err
			}

			store := install.NewStore(a.fs)
			if !store.Exists(state.Dir) {
				a.printer.Warning(MsgNotProvisioned, state.Dir)
				cp, err := store.LoadCheckpoint(state.Dir)
				if err != nil || cp == nil {
					return err
				}
				a.printer.Info(MsgCheckpointFound)
				state = cp
			}
			a.printStatus(state)
			return nil
		},
	}
}

func (a *app) printStatus(s *install.State) {
	p := a.printer
	label := func(text string) string { return p.Render(style.TitleStyle, text+":") }

	p.Println(label(MsgStatusDir), p.Render(style.PathStyle, s.Dir))

	runtime := MsgStatusNone
	if s.Runtime.Path != "" {
		runtime = p.Render(style.RuntimeStyle, s.Runtime.Path)
	}
	p.Println(label(MsgStatusRuntime), runtime)

	p.Println(label(MsgStatusBundles))
	for _, spec := range s.Bundles() {
		p.Println("  " + p.Render(style.SpecStyle, spec.String()) + "  " + p.Render(style.MutedStyle, s.BundleDir(spec)))
	}

	if len(s.Steps) == 0 {
		return
	}
	p.Println(label(MsgStatusSteps))
	for _, step := range s.Steps {
		marker := string(step.Status)
		if p.Styled() {
			marker = style.StepIndicator(step.Status)
		}
		p.Println("  " + marker + " " + step.Name)
	}
	if n := linker.Pending(s.Steps); n > 0 {
		p.Println(p.Render(style.WarningStyle, fmt.Sprintf("  %d pending", n)))
	}
}

func newSettingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: MsgSettingsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.settings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wiki-create version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "WIKI-CREATE",
				Section: "1",
				Source:  "wiki-create " + version.Version,
				Manual:  "wikikit manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
