// Package printer renders wiki pages for printing: as a standalone HTML
// document or as markdown styled for the terminal.
package printer

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/microcosm-cc/bluemonday"

	"github.com/fedwiki/wikikit/pkg/sitemap"
)

// FileName is the default output file of an HTML print
const FileName = "site.html"

var (
	markupPolicy = bluemonday.UGCPolicy()
	textPolicy   = bluemonday.StrictPolicy()
)

// HTML builds a document with one div.page per page
func HTML(site string, pages ...*sitemap.Page) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(site)

	body := html.CreateElement("body")
	for _, page := range pages {
		addPage(body, page)
	}
	return doc
}

func addPage(parent *etree.Element, page *sitemap.Page) {
	div := parent.CreateElement("div")
	div.CreateAttr("class", "page")

	title := div.CreateElement("div")
	title.CreateAttr("class", "title")
	title.SetText(page.Title)

	story := div.CreateElement("div")
	story.CreateAttr("class", "story")
	for _, item := range page.Story {
		if item.Text == "" {
			continue
		}
		el := story.CreateElement("div")
		el.CreateAttr("class", "item")
		el.CreateAttr("data-type", item.Type)
		setMarkup(el, item.Text)
	}
}

// setMarkup keeps sanitized inline markup when it is well-formed and falls
// back to plain text otherwise
func setMarkup(el *etree.Element, text string) {
	clean := markupPolicy.Sanitize(text)
	frag := etree.NewDocument()
	if err := frag.ReadFromString("<div>" + clean + "</div>"); err == nil && frag.Root() != nil {
		children := append([]etree.Token(nil), frag.Root().Child...)
		for _, child := range children {
			el.AddChild(child)
		}
		return
	}
	el.SetText(PlainText(text))
}

// PlainText strips all markup from story text
func PlainText(text string) string {
	return strings.TrimSpace(textPolicy.Sanitize(text))
}

// WriteHTML renders pages as an indented HTML document to w
func WriteHTML(w io.Writer, site string, pages ...*sitemap.Page) error {
	doc := HTML(site, pages...)
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
