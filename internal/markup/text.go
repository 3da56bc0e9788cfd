package markup

import "strings"

// InlineText flattens inline nodes to plain text: formatting is stripped,
// link text replaces the link, and line breaks become single spaces.
func InlineText(nodes []InlineNode) string {
	var b strings.Builder
	writeInlineText(&b, nodes)
	return b.String()
}

func writeInlineText(b *strings.Builder, nodes []InlineNode) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *Text:
			b.WriteString(n.Value)
		case *LineBreak:
			b.WriteByte(' ')
		case *Bold:
			writeInlineText(b, n.Children)
		case *Italic:
			writeInlineText(b, n.Children)
		case *Link:
			writeInlineText(b, n.Text)
		}
	}
}
