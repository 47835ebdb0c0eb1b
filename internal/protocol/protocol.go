// Package protocol defines the textual output format of WebGrep. Matching
// lines and the final summary are rendered here so that the client, the
// integration tests and any downstream tooling agree on a single format.
package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// FieldDelimiter separates source, line number and text of a matched line.
	FieldDelimiter string = ":"

	// LogFieldDelimiter separates fields within a single log message.
	LogFieldDelimiter string = "|"

	// SummarySuffix terminates the final count line.
	SummarySuffix string = "lines matched"
)

// FormatLine renders a matched line as "<source>:<lineNumber>:<text>".
func FormatLine(source string, lineNumber uint64, text string) string {
	var sb strings.Builder
	sb.Grow(len(source) + len(text) + 22)
	sb.WriteString(source)
	sb.WriteString(FieldDelimiter)
	sb.WriteString(strconv.FormatUint(lineNumber, 10))
	sb.WriteString(FieldDelimiter)
	sb.WriteString(text)
	return sb.String()
}

// FormatSummary renders the final count line, e.g. "1 lines matched".
func FormatSummary(count int) string {
	return fmt.Sprintf("%d %s", count, SummarySuffix)
}
