// Package color paints strings with ANSI terminal escape sequences.
package color

import "strings"

// FgColor is an ANSI foreground color code.
type FgColor string

// BgColor is an ANSI background color code.
type BgColor string

// Attribute is an ANSI text attribute code.
type Attribute string

// Foreground colors.
const (
	FgBlack   FgColor = "30"
	FgRed     FgColor = "31"
	FgGreen   FgColor = "32"
	FgYellow  FgColor = "33"
	FgBlue    FgColor = "34"
	FgMagenta FgColor = "35"
	FgCyan    FgColor = "36"
	FgWhite   FgColor = "37"
	FgDefault FgColor = "39"
)

// Background colors.
const (
	BgBlack   BgColor = "40"
	BgRed     BgColor = "41"
	BgGreen   BgColor = "42"
	BgYellow  BgColor = "43"
	BgBlue    BgColor = "44"
	BgMagenta BgColor = "45"
	BgCyan    BgColor = "46"
	BgWhite   BgColor = "47"
	BgDefault BgColor = "49"
)

// Attributes.
const (
	AttrNone      Attribute = "0"
	AttrBold      Attribute = "1"
	AttrDim       Attribute = "2"
	AttrItalic    Attribute = "3"
	AttrUnderline Attribute = "4"
	AttrReverse   Attribute = "7"
)

const (
	escape = "\x1b["
	reset  = "\x1b[0m"
)

// PaintStr paints a string with a foreground and a background color.
func PaintStr(str string, fg FgColor, bg BgColor) string {
	return paint(str, string(fg), string(bg))
}

// PaintStrWithAttr paints a string with colors and a text attribute.
func PaintStrWithAttr(str string, fg FgColor, bg BgColor, attr Attribute) string {
	return paint(str, string(attr), string(fg), string(bg))
}

// PaintFg paints only the foreground of a string.
func PaintFg(str string, fg FgColor) string {
	return paint(str, string(fg))
}

func paint(str string, codes ...string) string {
	var sb strings.Builder
	sb.Grow(len(str) + 16)
	sb.WriteString(escape)
	first := true
	for _, code := range codes {
		if code == "" {
			continue
		}
		if !first {
			sb.WriteByte(';')
		}
		sb.WriteString(code)
		first = false
	}
	sb.WriteByte('m')
	sb.WriteString(str)
	sb.WriteString(reset)
	return sb.String()
}
