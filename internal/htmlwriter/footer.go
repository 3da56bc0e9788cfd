package htmlwriter

import (
	"strings"

	"github.com/gohashira/wtf/internal/markup"
	"github.com/gohashira/wtf/internal/router"
)

// DefaultTitle is used when a document has no level-1 heading.
const DefaultTitle = "Page"

const hereMarker = " ← you're here"

// FooterHTML renders the navigation footer: a double <hr> separator
// followed by the sitemap as nested lists. The entry whose URL path equals
// currentPath is bolded with a "you're here" marker. Labels and URLs are
// escaped here; the router supplies raw text.
func FooterHTML(entries []router.SitemapEntry, currentPath string) string {
	var b strings.Builder
	b.WriteString("<hr><hr>")
	if len(entries) > 0 {
		writeSitemapList(&b, entries, currentPath)
	}
	return b.String()
}

func writeSitemapList(b *strings.Builder, entries []router.SitemapEntry, currentPath string) {
	b.WriteString("<ul>")
	for _, entry := range entries {
		b.WriteString(`<li><a href="`)
		b.WriteString(EscapeHTML(entry.URLPath))
		b.WriteString(`">`)
		if entry.URLPath == currentPath {
			b.WriteString("<b>")
			b.WriteString(EscapeHTML(entry.Name))
			b.WriteString(hereMarker)
			b.WriteString("</b>")
		} else {
			b.WriteString(EscapeHTML(entry.Name))
		}
		b.WriteString("</a>")
		if len(entry.Children) > 0 {
			writeSitemapList(b, entry.Children, currentPath)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
}

// WrapDocument wraps body HTML in a complete HTML5 document shell.
func WrapDocument(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(EscapeHTML(title))
	b.WriteString("</title></head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>")
	return b.String()
}

// ExtractTitle derives a page title from the first level-1 section's
// heading text, falling back to DefaultTitle.
func ExtractTitle(doc *markup.Document) string {
	if len(doc.Sections) > 0 && doc.Sections[0].Level == 1 {
		if title := markup.InlineText(doc.Sections[0].Title); title != "" {
			return title
		}
	}
	return DefaultTitle
}
