// Package htmlwriter renders parsed documents and navigation trees to
// minified HTML. All user-derived text and attribute values pass through
// entity escaping; output is deterministic for a given input tree.
package htmlwriter

import (
	"fmt"
	"strings"

	"github.com/gohashira/wtf/internal/markup"
)

const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// escaper covers & < > " ' in both text and attribute positions. & first
// so already-produced entities are not double-escaped.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes HTML entities in user-derived content.
func EscapeHTML(content string) string {
	return escaper.Replace(content)
}

// InvalidHeadingLevelError reports a section level outside 1-6 reaching the
// writer. The parser never produces one; this guards against hand-built
// trees.
type InvalidHeadingLevelError struct {
	Level int
}

func (e *InvalidHeadingLevelError) Error() string {
	return fmt.Sprintf("invalid heading level %d: must be between %d and %d", e.Level, minHeadingLevel, maxHeadingLevel)
}

// Writer converts document trees to HTML.
type Writer struct{}

// NewWriter returns a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDocument renders a document tree to minified HTML. An empty
// document renders to the empty string.
func (w *Writer) WriteDocument(doc *markup.Document) (string, error) {
	var b strings.Builder

	for _, block := range doc.Content {
		if err := w.writeBlock(&b, block); err != nil {
			return "", err
		}
	}
	for _, section := range doc.Sections {
		if err := w.writeSection(&b, section); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func (w *Writer) writeSection(b *strings.Builder, section *markup.Section) error {
	if section.Level < minHeadingLevel || section.Level > maxHeadingLevel {
		return &InvalidHeadingLevelError{Level: section.Level}
	}

	fmt.Fprintf(b, "<h%d>", section.Level)
	w.writeInlines(b, section.Title)
	fmt.Fprintf(b, "</h%d>", section.Level)

	for _, block := range section.Content {
		if err := w.writeBlock(b, block); err != nil {
			return err
		}
	}
	for _, sub := range section.Subsections {
		if err := w.writeSection(b, sub); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeBlock(b *strings.Builder, block markup.BlockNode) error {
	switch n := block.(type) {
	case *markup.Paragraph:
		b.WriteString("<p>")
		w.writeInlines(b, n.Inlines)
		b.WriteString("</p>")
	case *markup.Image:
		b.WriteString(`<img src="`)
		b.WriteString(EscapeHTML(n.URL))
		b.WriteString(`" alt="`)
		b.WriteString(EscapeHTML(n.AltText))
		b.WriteString(`">`)
	}
	return nil
}

func (w *Writer) writeInlines(b *strings.Builder, nodes []markup.InlineNode) {
	for _, node := range nodes {
		w.writeInline(b, node)
	}
}

func (w *Writer) writeInline(b *strings.Builder, node markup.InlineNode) {
	switch n := node.(type) {
	case *markup.Text:
		b.WriteString(EscapeHTML(n.Value))
	case *markup.LineBreak:
		b.WriteString("<br>")
	case *markup.Bold:
		b.WriteString("<strong>")
		w.writeInlines(b, n.Children)
		b.WriteString("</strong>")
	case *markup.Italic:
		b.WriteString("<em>")
		w.writeInlines(b, n.Children)
		b.WriteString("</em>")
	case *markup.Link:
		b.WriteString(`<a href="`)
		b.WriteString(EscapeHTML(n.URL))
		b.WriteString(`">`)
		w.writeInlines(b, n.Text)
		b.WriteString("</a>")
	}
}
