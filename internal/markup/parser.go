package markup

import "strings"

const (
	headingChar = '#'
	boldDelim   = "**"
	italicDelim = '*'
	newlineChar = '\n'
	linkOpen    = '['
	linkClose   = ']'
	urlOpen     = '('
	urlClose    = ')'
	imagePrefix = '!'
	escapeChar  = '\\'

	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// Parse converts raw markup text into a Document tree. It is a pure
// function: no state survives the call and concurrent calls on different
// inputs need no coordination. Parsing stops at the first error.
func Parse(text string) (*Document, error) {
	p := &parser{chars: []rune(text)}
	return p.parseDocument()
}

// parser is a recursive-descent scanner over the input runes. All error
// positions are rune offsets into the original text.
type parser struct {
	chars []rune
	pos   int
}

func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}

	// Preamble blocks run until the first heading.
	for !p.eof() {
		p.skipEmptyLines()
		if p.eof() {
			break
		}

		if p.isHeading() {
			sections, err := p.parseAllSections()
			if err != nil {
				return nil, err
			}
			doc.Sections = sections
			break
		}

		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		doc.Content = append(doc.Content, block)
	}

	return doc, nil
}

func (p *parser) parseAllSections() ([]*Section, error) {
	var sections []*Section

	for !p.eof() {
		p.skipEmptyLines()
		if p.eof() {
			break
		}
		if !p.isHeading() {
			break
		}

		section, err := p.parseSectionTree()
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return sections, nil
}

// parseSectionTree parses one section and, recursively, every deeper
// section under it. It returns when it sees a heading at the same or a
// shallower level, leaving that heading for the caller.
func (p *parser) parseSectionTree() (*Section, error) {
	level, title, err := p.parseHeadingLine()
	if err != nil {
		return nil, err
	}
	section := &Section{Level: level, Title: title}

	for {
		p.skipEmptyLines()
		if p.eof() {
			break
		}

		if p.isHeading() {
			if p.headingLevel() <= level {
				break
			}
			sub, err := p.parseSectionTree()
			if err != nil {
				return nil, err
			}
			section.Subsections = append(section.Subsections, sub)
			continue
		}

		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		section.Content = append(section.Content, block)
	}

	return section, nil
}

func (p *parser) parseBlock() (BlockNode, error) {
	if p.peek() == imagePrefix && p.peekAt(1) == linkOpen {
		return p.parseImageBlock()
	}
	return p.parseParagraph()
}

func (p *parser) parseParagraph() (BlockNode, error) {
	var inlines []InlineNode
	first := true

	for {
		line, err := p.parseInlineContent()
		if err != nil {
			return nil, err
		}
		if len(line) > 0 {
			if !first {
				inlines = append(inlines, &LineBreak{})
			}
			inlines = append(inlines, line...)
			first = false
		}

		if p.peek() != newlineChar {
			break // EOF
		}
		p.advance()
		// A second newline, EOF, or a heading line ends the paragraph;
		// a single newline continues it.
		if p.peek() == newlineChar || p.eof() || p.isHeading() {
			break
		}
	}

	return &Paragraph{Inlines: inlines}, nil
}

func (p *parser) parseImageBlock() (BlockNode, error) {
	start := p.pos

	p.advance() // !
	p.advance() // [

	// Alt text, with backslash escapes for literal brackets.
	var alt strings.Builder
	closed := false
	for !p.eof() {
		ch := p.peek()
		if ch == escapeChar {
			p.advance()
			if !p.eof() {
				alt.WriteRune(p.peek())
				p.advance()
			}
			continue
		}
		if ch == linkClose {
			p.advance()
			closed = true
			break
		}
		alt.WriteRune(ch)
		p.advance()
	}
	if !closed {
		return nil, &UnexpectedEOFError{Context: "image alt text"}
	}

	if p.peek() != urlOpen {
		return nil, &MalformedImageError{Pos: start}
	}
	p.advance()

	var url strings.Builder
	closed = false
	for !p.eof() {
		ch := p.peek()
		if ch == urlClose {
			p.advance()
			closed = true
			break
		}
		if ch == newlineChar {
			return nil, &MalformedImageError{Pos: start}
		}
		url.WriteRune(ch)
		p.advance()
	}
	if !closed {
		return nil, &UnexpectedEOFError{Context: "image URL"}
	}

	if p.peek() == newlineChar {
		p.advance()
	}

	return &Image{AltText: alt.String(), URL: strings.TrimSpace(url.String())}, nil
}

// parseInlineContent scans inline nodes until a newline or EOF.
func (p *parser) parseInlineContent() ([]InlineNode, error) {
	var nodes []InlineNode

	for !p.eof() && p.peek() != newlineChar {
		var (
			node InlineNode
			err  error
		)
		switch {
		case p.startsWith(boldDelim):
			node, err = p.parseBold(false)
		case p.peek() == italicDelim:
			node, err = p.parseItalic(false)
		case p.peek() == linkOpen:
			node, err = p.parseLink()
		default:
			text := p.parseTextUntil("*", "[", "\n")
			if text == "" {
				continue
			}
			node = &Text{Value: text}
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// parseBold consumes **…**. inLink guards against links opening anywhere
// inside link text.
func (p *parser) parseBold(inLink bool) (InlineNode, error) {
	start := p.pos

	p.advance()
	p.advance()

	var children []InlineNode
	for !p.eof() {
		if p.startsWith(boldDelim) {
			p.advance()
			p.advance()
			return &Bold{Children: children}, nil
		}
		if p.peek() == newlineChar {
			return nil, &UnclosedDelimiterError{Delimiter: boldDelim, Pos: start}
		}

		var (
			node InlineNode
			err  error
		)
		switch {
		case p.peek() == italicDelim:
			node, err = p.parseItalic(inLink)
		case p.peek() == linkOpen:
			if inLink {
				return nil, &MalformedLinkError{Pos: p.pos}
			}
			node, err = p.parseLink()
		default:
			text := p.parseTextUntil("*", "[", "\n")
			if text == "" {
				continue
			}
			node = &Text{Value: text}
		}
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}

	return nil, &UnclosedDelimiterError{Delimiter: boldDelim, Pos: start}
}

func (p *parser) parseItalic(inLink bool) (InlineNode, error) {
	start := p.pos

	p.advance()

	var children []InlineNode
	for !p.eof() {
		if p.peek() == italicDelim && !p.startsWith(boldDelim) {
			p.advance()
			return &Italic{Children: children}, nil
		}
		if p.peek() == newlineChar {
			return nil, &UnclosedDelimiterError{Delimiter: string(italicDelim), Pos: start}
		}

		var (
			node InlineNode
			err  error
		)
		switch {
		case p.startsWith(boldDelim):
			node, err = p.parseBold(inLink)
		case p.peek() == linkOpen:
			if inLink {
				return nil, &MalformedLinkError{Pos: p.pos}
			}
			node, err = p.parseLink()
		default:
			text := p.parseTextUntil("*", "[", "\n")
			if text == "" {
				continue
			}
			node = &Text{Value: text}
		}
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}

	return nil, &UnclosedDelimiterError{Delimiter: string(italicDelim), Pos: start}
}

func (p *parser) parseLink() (InlineNode, error) {
	start := p.pos

	p.advance() // [

	var text []InlineNode
	for !p.eof() && p.peek() != linkClose {
		if p.peek() == newlineChar {
			return nil, &MalformedLinkError{Pos: start}
		}

		var (
			node InlineNode
			err  error
		)
		switch {
		case p.startsWith(boldDelim):
			node, err = p.parseBold(true)
		case p.peek() == italicDelim:
			node, err = p.parseItalic(true)
		case p.peek() == linkOpen:
			// A link may not open inside link text.
			return nil, &MalformedLinkError{Pos: p.pos}
		default:
			txt := p.parseTextUntil("*", "[", "]", "\n")
			if txt == "" {
				continue
			}
			node = &Text{Value: txt}
		}
		if err != nil {
			return nil, err
		}
		text = append(text, node)
	}

	if p.eof() {
		return nil, &UnexpectedEOFError{Context: "link text"}
	}
	p.advance() // ]

	if p.peek() != urlOpen {
		return nil, &MalformedLinkError{Pos: start}
	}
	p.advance()

	var url strings.Builder
	for !p.eof() && p.peek() != urlClose {
		if p.peek() == newlineChar {
			return nil, &MalformedLinkError{Pos: start}
		}
		url.WriteRune(p.peek())
		p.advance()
	}
	if p.eof() {
		return nil, &UnexpectedEOFError{Context: "link URL"}
	}
	p.advance() // )

	return &Link{Text: text, URL: strings.TrimSpace(url.String())}, nil
}

// parseTextUntil accumulates plain text until any stop string (or EOF).
func (p *parser) parseTextUntil(stops ...string) string {
	var text strings.Builder

	for !p.eof() {
		stopped := false
		for _, stop := range stops {
			if p.startsWith(stop) {
				stopped = true
				break
			}
		}
		if stopped {
			break
		}
		text.WriteRune(p.peek())
		p.advance()
	}

	return text.String()
}

func (p *parser) parseHeadingLine() (int, []InlineNode, error) {
	level := p.headingLevel()
	if level < minHeadingLevel || level > maxHeadingLevel {
		return 0, nil, &InvalidHeadingLevelError{Level: level}
	}

	for i := 0; i < level; i++ {
		p.advance()
	}
	p.advance() // required space after the # run

	title, err := p.parseInlineContent()
	if err != nil {
		return 0, nil, err
	}

	if p.peek() == newlineChar {
		p.advance()
	}

	return level, title, nil
}

// headingLevel reports the heading level at the current position, or 0 if
// the position does not start a heading. A heading is 1-6 '#' runes
// followed by a space; longer runs and missing spaces are plain text.
func (p *parser) headingLevel() int {
	n := 0
	i := p.pos
	for i < len(p.chars) && p.chars[i] == headingChar {
		n++
		i++
	}
	if n < minHeadingLevel || n > maxHeadingLevel {
		return 0
	}
	if i >= len(p.chars) || p.chars[i] != ' ' {
		return 0
	}
	return n
}

func (p *parser) isHeading() bool {
	return p.headingLevel() > 0
}

func (p *parser) peek() rune {
	if p.pos >= len(p.chars) {
		return 0
	}
	return p.chars[p.pos]
}

func (p *parser) peekAt(offset int) rune {
	if p.pos+offset >= len(p.chars) {
		return 0
	}
	return p.chars[p.pos+offset]
}

func (p *parser) startsWith(s string) bool {
	for i, ch := range []rune(s) {
		if p.pos+i >= len(p.chars) || p.chars[p.pos+i] != ch {
			return false
		}
	}
	return true
}

func (p *parser) advance() {
	p.pos++
}

func (p *parser) eof() bool {
	return p.pos >= len(p.chars)
}

func (p *parser) skipEmptyLines() {
	for p.peek() == newlineChar {
		p.advance()
	}
}
