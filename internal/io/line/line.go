// Package line holds the Line Record handed from source readers to line
// matchers. A Line is a plain immutable value; it is created once by the
// reader of its source and never modified afterwards.
package line

import "github.com/mimecast/webgrep/internal/protocol"

// Line is one decoded line of a source together with its position.
type Line struct {
	// Source identifies where the line was read from (usually its address).
	Source string
	// Number is the zero based position of the line within its source.
	Number uint64
	// Text is the line content without its line terminator.
	Text string
}

// New returns a line record.
func New(source string, number uint64, text string) Line {
	return Line{Source: source, Number: number, Text: text}
}

// String renders the line as "<source>:<number>:<text>".
func (l Line) String() string {
	return protocol.FormatLine(l.Source, l.Number, l.Text)
}
