// Package portfolio maps model names to the content shown when a model is
// clicked in view mode, and keeps the state of the overlay that shows it.
package portfolio

import (
	"bytes"
	"embed"
	stdhtml "html"
	"path"
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	strip "github.com/grokify/html-strip-tags-go"
)

// DefaultName is the content block used for models without their own.
const DefaultName = "default"

//go:embed content/*.md
var contentFS embed.FS

// Content is a rendered content block.
type Content struct {
	Name  string
	Title string
	HTML  string
	// Text is HTML with tags removed, for surfaces that cannot render HTML.
	Text string
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]Content)
)

// Lookup returns the content for a model name. Unknown names get the
// default block.
func Lookup(name string) Content {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if c, ok := load(name); ok {
		return c
	}
	if c, ok := load(DefaultName); ok {
		return c
	}
	return Content{Name: DefaultName, Title: "Pastel Room"}
}

// load renders and caches one block. cacheMu must be held.
func load(name string) (Content, bool) {
	if c, ok := cache[name]; ok {
		return c, true
	}
	src, err := contentFS.ReadFile(path.Join("content", name+".md"))
	if err != nil {
		return Content{}, false
	}
	c := Render(name, src)
	cache[name] = c
	return c, true
}

// Render converts Markdown into a content block. The title is the first
// level-one heading, or the name when there is none.
func Render(name string, src []byte) Content {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	out := markdown.ToHTML(src, p, r)

	return Content{
		Name:  name,
		Title: title(name, src),
		HTML:  string(out),
		Text:  plainText(string(out)),
	}
}

func title(name string, src []byte) string {
	for _, line := range bytes.Split(src, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("# ")) {
			return string(bytes.TrimSpace(line[2:]))
		}
	}
	return name
}

// plainText strips tags and collapses the blank lines left behind.
func plainText(s string) string {
	s = stdhtml.UnescapeString(strip.StripTags(s))
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" && (len(lines) == 0 || lines[len(lines)-1] == "") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
