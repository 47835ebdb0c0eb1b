// Package version provides the WebGrep version string, plain and painted.
package version

import (
	"fmt"
	"os"

	"github.com/mimecast/webgrep/internal/color"
	"github.com/mimecast/webgrep/internal/config"
)

const (
	// Name of WebGrep.
	Name string = "WebGrep"
	// Version of WebGrep.
	Version string = "1.2.0"
	// Additional information for WebGrep
	Additional string = "Grep the web!"
)

// String returns a plain text representation of the version information.
func String() string {
	return fmt.Sprintf("%s %v %s", Name, Version, Additional)
}

// PaintedString returns the version information with ANSI colors, unless
// colors are disabled or the configuration was not set up yet.
func PaintedString() string {
	if config.Client == nil || !config.Client.TermColorsEnable {
		return String()
	}

	name := color.PaintStrWithAttr(fmt.Sprintf(" %s ", Name),
		color.FgYellow, color.BgBlue, color.AttrBold)
	version := color.PaintStrWithAttr(fmt.Sprintf(" %s ", Version),
		color.FgBlue, color.BgYellow, color.AttrBold)
	additional := color.PaintStrWithAttr(fmt.Sprintf(" %s ", Additional),
		color.FgWhite, color.BgMagenta, color.AttrUnderline)

	return fmt.Sprintf("%s%s%s", name, version, additional)
}

// Print the version.
func Print() {
	fmt.Println(PaintedString())
}

// PrintAndExit prints the program version and exists.
func PrintAndExit() {
	Print()
	os.Exit(0)
}
