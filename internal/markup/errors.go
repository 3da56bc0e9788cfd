package markup

import "fmt"

// UnexpectedEOFError reports input that ended in the middle of a construct.
type UnexpectedEOFError struct {
	Context string
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of input while parsing %s", e.Context)
}

// UnclosedDelimiterError reports a bold or italic delimiter that was opened
// but never closed before the end of its line. Pos is the rune offset of
// the opening delimiter.
type UnclosedDelimiterError struct {
	Delimiter string
	Pos       int
}

func (e *UnclosedDelimiterError) Error() string {
	return fmt.Sprintf("unclosed delimiter %q at position %d", e.Delimiter, e.Pos)
}

// InvalidHeadingLevelError reports a heading level outside 1-6. Heading
// detection never classifies such runs as headings, so this is a guard
// against malformed internal state rather than a reachable parse outcome.
type InvalidHeadingLevelError struct {
	Level int
}

func (e *InvalidHeadingLevelError) Error() string {
	return fmt.Sprintf("invalid heading level %d: must be between %d and %d", e.Level, minHeadingLevel, maxHeadingLevel)
}

// MalformedLinkError reports broken link syntax at the given rune offset.
type MalformedLinkError struct {
	Pos int
}

func (e *MalformedLinkError) Error() string {
	return fmt.Sprintf("malformed link syntax at position %d", e.Pos)
}

// MalformedImageError reports broken image syntax at the given rune offset.
type MalformedImageError struct {
	Pos int
}

func (e *MalformedImageError) Error() string {
	return fmt.Sprintf("malformed image syntax at position %d", e.Pos)
}
