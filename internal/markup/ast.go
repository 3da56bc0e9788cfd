// Package markup parses the site's markup dialect into a document tree.
//
// The dialect is a small markdown-like language: # headings (levels 1-6),
// **bold**, *italic*, [text](url) links, ![alt](url) image blocks, and
// blank-line separated paragraphs. Unlike CommonMark, malformed constructs
// are hard errors carrying the position where they were detected.
package markup

// Document is the root of a parsed file. Content holds the blocks that
// appear before the first heading; Sections holds the top-level sections
// in document order.
type Document struct {
	Content  []BlockNode
	Sections []*Section
}

// Section is a heading plus everything under it until a heading of
// equal-or-shallower level. Every subsection's level is strictly greater
// than its parent's.
type Section struct {
	Level       int
	Title       []InlineNode
	Content     []BlockNode
	Subsections []*Section
}

// BlockNode is a block-level element: Paragraph or Image.
type BlockNode interface {
	blockNode()
}

// Paragraph is a run of inline content. A single line break within the
// paragraph appears as a LineBreak inline node.
type Paragraph struct {
	Inlines []InlineNode
}

// Image is a standalone image block: ![alt](url).
type Image struct {
	AltText string
	URL     string
}

func (*Paragraph) blockNode() {}
func (*Image) blockNode()     {}

// InlineNode is an inline element within a paragraph or heading title.
type InlineNode interface {
	inlineNode()
}

// Text is a run of plain characters.
type Text struct {
	Value string
}

// LineBreak is a single newline preserved within a block.
type LineBreak struct{}

// Bold is **…**; may contain Italic, Link and Text children.
type Bold struct {
	Children []InlineNode
}

// Italic is *…*; may contain Bold, Link and Text children.
type Italic struct {
	Children []InlineNode
}

// Link is [text](url). Text may contain Bold and Italic but never
// another Link.
type Link struct {
	Text []InlineNode
	URL  string
}

func (*Text) inlineNode()      {}
func (*LineBreak) inlineNode() {}
func (*Bold) inlineNode()      {}
func (*Italic) inlineNode()    {}
func (*Link) inlineNode()      {}
