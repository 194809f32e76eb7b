package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/fedwiki/wikikit/internal/cli/create"
	"github.com/fedwiki/wikikit/internal/cli/sites"
	"github.com/fedwiki/wikikit/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <wiki-create|wiki-changes|wiki-print>\n", os.Args[0])
		os.Exit(1)
	}

	var rootCmd *cobra.Command
	switch tool := os.Args[1]; tool {
	case "wiki-create":
		rootCmd = create.NewRootCmd()
	case "wiki-changes":
		rootCmd = sites.NewChangesCmd()
	case "wiki-print":
		rootCmd = sites.NewPrintCmd()
	default:
		fmt.Fprintf(os.Stderr, "Unknown tool: %s\n", tool)
		os.Exit(1)
	}

	header := &doc.GenManHeader{
		Title:   strings.ToUpper(rootCmd.Name()),
		Section: "1",
		Source:  rootCmd.Name() + " " + version.Version,
		Manual:  "wikikit manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
