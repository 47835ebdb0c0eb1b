package config

import (
	"time"

	"github.com/mimecast/webgrep/internal/color"
	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
)

// ClientConfig holds the settings of a WebGrep run.
type ClientConfig struct {
	Pattern       string
	Sources       []string
	Consumers     int
	Timeout       time.Duration
	MaxLineLength int
	RegexMode     bool
	RegexInvert   bool
	Sorted        bool
	Sentinel      bool
	Plain         bool
	Quiet         bool

	SSHUser               string
	SSHPrivateKeyFilePath string
	SSHKnownHostsFile     string
	TrustAllHosts         bool

	TermColorsEnable bool
	TermColors       termColors
}

type termColors struct {
	SourceFg      color.FgColor
	LineNumberFg  color.FgColor
	DelimiterAttr color.Attribute
	DelimiterFg   color.FgColor
	MatchAttr     color.Attribute
	MatchBg       color.BgColor
	MatchFg       color.FgColor
	SummaryAttr   color.Attribute
	SummaryBg     color.BgColor
	SummaryFg     color.FgColor
	StatsAttr     color.Attribute
	StatsBg       color.BgColor
	StatsFg       color.FgColor
}

// NewDefaultClientConfig returns the client configuration defaults.
func NewDefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Pattern:          DefaultPattern,
		Consumers:        DefaultConsumers,
		Timeout:          constants.DefaultSourceTimeout,
		MaxLineLength:    constants.DefaultMaxLineLength,
		TermColorsEnable: true,
		TermColors: termColors{
			SourceFg:      color.FgMagenta,
			LineNumberFg:  color.FgGreen,
			DelimiterAttr: color.AttrDim,
			DelimiterFg:   color.FgCyan,
			MatchAttr:     color.AttrBold,
			MatchBg:       color.BgRed,
			MatchFg:       color.FgWhite,
			SummaryAttr:   color.AttrBold,
			SummaryBg:     color.BgBlue,
			SummaryFg:     color.FgWhite,
			StatsAttr:     color.AttrDim,
			StatsBg:       color.BgYellow,
			StatsFg:       color.FgBlack,
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *ClientConfig) Validate() error {
	if c.Pattern == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "pattern must not be empty")
	}
	if c.Consumers < 1 || c.Consumers > constants.MaxConsumers {
		return errors.Wrapf(errors.ErrInvalidConfig, "consumers must be between 1 and %d, got %d",
			constants.MaxConsumers, c.Consumers)
	}
	if c.Timeout < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "timeout must not be negative, got %v", c.Timeout)
	}
	if c.MaxLineLength < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "maxLineLength must be positive, got %d",
			c.MaxLineLength)
	}
	return nil
}
