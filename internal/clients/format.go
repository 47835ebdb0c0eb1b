package clients

import (
	"fmt"
	"strings"

	"github.com/mimecast/webgrep/internal/color"
	"github.com/mimecast/webgrep/internal/config"
	"github.com/mimecast/webgrep/internal/io/line"
	"github.com/mimecast/webgrep/internal/protocol"
	"github.com/mimecast/webgrep/internal/regex"
)

// paintLine renders a match like line.String does, with colors and all
// pattern occurrences highlighted.
func paintLine(l line.Line, highlight regex.Regex, cfg *config.ClientConfig) string {
	colors := cfg.TermColors
	delimiter := color.PaintStrWithAttr(protocol.FieldDelimiter, colors.DelimiterFg, "",
		colors.DelimiterAttr)

	var sb strings.Builder
	sb.WriteString(color.PaintFg(l.Source, colors.SourceFg))
	sb.WriteString(delimiter)
	sb.WriteString(color.PaintFg(fmt.Sprintf("%d", l.Number), colors.LineNumberFg))
	sb.WriteString(delimiter)

	offset := 0
	for _, idx := range highlight.FindAllIndex(l.Text) {
		start, end := idx[0], idx[1]
		if start == end {
			continue
		}
		sb.WriteString(l.Text[offset:start])
		sb.WriteString(color.PaintStrWithAttr(l.Text[start:end], colors.MatchFg,
			colors.MatchBg, colors.MatchAttr))
		offset = end
	}
	sb.WriteString(l.Text[offset:])
	return sb.String()
}

// summary renders the "<N> lines matched" line.
func summary(count int, colors bool, cfg *config.ClientConfig) string {
	text := protocol.FormatSummary(count)
	if !colors {
		return text
	}
	return color.PaintStrWithAttr(text, cfg.TermColors.SummaryFg, cfg.TermColors.SummaryBg,
		cfg.TermColors.SummaryAttr)
}
