package printer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/fedwiki/wikikit/pkg/sitemap"
)

// Markdown renders pages as markdown. Markdown items pass through; other
// items contribute their plain text.
func Markdown(pages ...*sitemap.Page) string {
	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "# %s\n\n", page.Title)
		for _, item := range page.Story {
			text := item.Text
			if item.Type != "markdown" {
				text = PlainText(text)
			}
			if text == "" {
				continue
			}
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// TerminalRenderer styles markdown with glamour
type TerminalRenderer struct {
	// Style is a glamour style name or path; empty or "auto" detects
	Style string
	// Width wraps lines; 0 keeps glamour's default
	Width int
}

// Render returns pages styled for the terminal
func (r *TerminalRenderer) Render(pages ...*sitemap.Page) string {
	return RenderMarkdown(Markdown(pages...), r.Style, r.Width)
}

// RenderMarkdown styles md with glamour. If glamour fails md is returned
// unchanged.
func RenderMarkdown(md, style string, width int) string {
	var options []glamour.TermRendererOption
	if style != "" && style != "auto" {
		options = append(options, glamour.WithStylePath(style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
