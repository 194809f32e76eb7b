// Package topics adds help topics to a cobra command tree. Topics are text
// or markdown files read from an fs.FS, usually embedded in the binary, and
// are shown with "<cmd> help <topic>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// RenderFunc formats topic content for display. ext is the file extension.
type RenderFunc func(content, ext string) string

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a TopicManager
type Options struct {
	// Extensions considered as topics. Defaults to .txt and .md.
	Extensions []string
	// Render formats content. Defaults to returning it unchanged.
	Render RenderFunc
}

// TopicManager holds the topics of one command tree
type TopicManager struct {
	fsys       fs.FS
	topics     map[string]*Topic
	extensions []string
	render     RenderFunc
}

// New creates a TopicManager reading from fsys
func New(fsys fs.FS, opts Options) *TopicManager {
	tm := &TopicManager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		render:     opts.Render,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.render == nil {
		tm.render = func(content, _ string) string { return content }
	}
	return tm
}

// Scan loads every topic file in the filesystem
func (tm *TopicManager) Scan() error {
	return fs.WalkDir(tm.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !tm.supported(path.Ext(p)) {
			return nil
		}
		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		tm.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, e := range tm.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get returns a topic by name. Flag-style names ("--update") also match
// "option-update".
func (tm *TopicManager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := tm.topics[name]; ok {
		return t, true
	}
	t, ok := tm.topics["option-"+name]
	return t, ok
}

// List returns topic names in order
func (tm *TopicManager) List() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show writes a rendered topic to w
func (tm *TopicManager) Show(w io.Writer, t *Topic) {
	fmt.Fprint(w, tm.render(t.Content, path.Ext(t.Path)))
}

func (tm *TopicManager) writeList(w io.Writer, program string) {
	names := tm.List()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var options, general []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Initialize replaces the help command of root with one that also serves
// topics from fsys
func Initialize(root *cobra.Command, fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := New(fsys, opts)
	if err := tm.Scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	originalHelp := root.HelpFunc()
	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				originalHelp(root, args)
				return
			}
			if args[0] == "topics" {
				tm.writeList(cmd.OutOrStdout(), root.Name())
				return
			}
			if t, ok := tm.Get(args[0]); ok {
				tm.Show(cmd.OutOrStdout(), t)
				return
			}
			if target, _, err := root.Find(args); err == nil && target != nil {
				originalHelp(target, nil)
				return
			}
			originalHelp(root, args)
		},
	}

	root.SetHelpCommand(helpCmd)
	return tm, nil
}
