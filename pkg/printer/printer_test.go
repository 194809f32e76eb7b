package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedwiki/wikikit/pkg/sitemap"
)

var page = &sitemap.Page{
	Title: "Welcome Visitors",
	Story: []sitemap.Item{
		{Type: "paragraph", ID: "a", Text: "Hello <b>world</b> & friends"},
		{Type: "paragraph", ID: "b", Text: "<script>alert(1)</script>Safe"},
		{Type: "paragraph", ID: "c", Text: "Broken <i>markup"},
		{Type: "factory", ID: "d"},
		{Type: "markdown", ID: "e", Text: "* one\n* two"},
	},
}

func TestHTML(t *testing.T) {
	doc := HTML("fed.wiki.org", page)

	title := doc.FindElement("//div[@class='page']/div[@class='title']")
	require.NotNil(t, title)
	assert.Equal(t, "Welcome Visitors", title.Text())

	items := doc.FindElements("//div[@class='story']/div[@class='item']")
	require.Len(t, items, 4, "items without text are skipped")

	assert.NotNil(t, items[0].FindElement("b"), "inline markup survives")
	assert.Equal(t, "Safe", items[1].Text())
	assert.Nil(t, items[1].FindElement("script"))
	assert.Equal(t, "paragraph", items[2].SelectAttrValue("data-type", ""))

	head := doc.FindElement("//head/title")
	require.NotNil(t, head)
	assert.Equal(t, "fed.wiki.org", head.Text())
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, "site", page, &sitemap.Page{Title: "Second"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Equal(t, 2, strings.Count(out, `class="page"`))
	assert.Contains(t, out, "&amp; friends")
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world", PlainText("  Hello <b>world</b> "))
	assert.Empty(t, PlainText(""))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(page)
	assert.True(t, strings.HasPrefix(md, "# Welcome Visitors\n\n"))
	assert.Contains(t, md, "* one\n* two")
	assert.NotContains(t, md, "<b>")

	two := Markdown(page, &sitemap.Page{Title: "Next"})
	assert.Contains(t, two, "---\n\n# Next")
}

func TestTerminalRenderer(t *testing.T) {
	r := &TerminalRenderer{Style: "notty", Width: 60}
	out := r.Render(page)
	assert.Contains(t, out, "Welcome Visitors")
}
