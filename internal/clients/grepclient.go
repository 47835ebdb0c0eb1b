package clients

import (
	"bufio"
	"context"
	"io"

	"github.com/mimecast/webgrep/internal/config"
	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/pipeline"
	"github.com/mimecast/webgrep/internal/regex"
	"github.com/mimecast/webgrep/internal/source"
)

// GrepClient searches all configured sources for the pattern and prints
// every matching line as <source>:<lineNumber>:<text>, followed by the
// "<N> lines matched" summary.
type GrepClient struct {
	cfg      *config.ClientConfig
	out      io.Writer
	pipeline *pipeline.Pipeline
	// highlight finds pattern occurrences for colored output
	highlight regex.Regex
	stats     *stats
}

var _ Client = (*GrepClient)(nil)

// NewGrepClient creates a client from the given configuration writing its
// results to out. Sources are opened with the default source registry.
func NewGrepClient(cfg *config.ClientConfig, out io.Writer) (*GrepClient, error) {
	registry := source.NewRegistry(source.Options{
		SSHUser:           cfg.SSHUser,
		SSHKeyFile:        cfg.SSHPrivateKeyFilePath,
		SSHKnownHostsFile: cfg.SSHKnownHostsFile,
		TrustAllHosts:     cfg.TrustAllHosts,
	})
	return NewGrepClientWithOpener(cfg, out, registry)
}

// NewGrepClientWithOpener is NewGrepClient with a custom source opener.
func NewGrepClientWithOpener(cfg *config.ClientConfig, out io.Writer,
	opener source.Opener) (*GrepClient, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	highlight, err := newHighlighter(cfg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%v", err)
	}

	p := pipeline.New(pipeline.Config{
		Sources:       cfg.Sources,
		Consumers:     cfg.Consumers,
		Pattern:       cfg.Pattern,
		RegexMode:     cfg.RegexMode,
		RegexInvert:   cfg.RegexInvert,
		Timeout:       cfg.Timeout,
		MaxLineLength: cfg.MaxLineLength,
		Sentinel:      cfg.Sentinel,
		Opener:        opener,
	})

	return &GrepClient{
		cfg:       cfg,
		out:       out,
		pipeline:  p,
		highlight: highlight,
		stats:     newStats(p.Progress, cfg),
	}, nil
}

func newHighlighter(cfg *config.ClientConfig) (regex.Regex, error) {
	flag := regex.Default
	if cfg.RegexInvert {
		flag = regex.Invert
	}
	if cfg.RegexMode {
		return regex.New(cfg.Pattern, flag)
	}
	return regex.NewLiteral(cfg.Pattern, flag)
}

// Start runs the pipeline and prints the results once all sources are done.
func (c *GrepClient) Start(ctx context.Context, statsCh <-chan string) (status int) {
	dlog.Client.Debug("Starting grep client", "sources", len(c.cfg.Sources),
		"consumers", c.cfg.Consumers)

	statsCtx, cancelStats := context.WithCancel(ctx)
	defer cancelStats()
	go c.stats.Start(statsCtx, statsCh, c.cfg.Quiet)

	report, err := c.pipeline.Run(ctx)
	cancelStats()
	if err != nil {
		dlog.Client.Error("Unable to run grep", err)
		return constants.StatusConfigError
	}

	if err := c.print(report); err != nil {
		dlog.Client.Error("Unable to print results", err)
	}
	dlog.Client.Info("Done", "matches", report.Count, "linesRead", report.LinesRead,
		"duration", report.Duration)

	if failed := report.Failed(); failed > 0 {
		dlog.Client.Warn("Sources failed", failed, "of", len(report.Sources))
		return constants.StatusSourceFailed
	}
	return constants.StatusOK
}

func (c *GrepClient) print(report pipeline.Report) error {
	matches := report.Matches
	if c.cfg.Sorted {
		matches = report.SortedMatches()
	}

	w := bufio.NewWriterSize(c.out, constants.ReadBufferSize)
	colors := c.cfg.TermColorsEnable && !c.cfg.Plain
	for _, l := range matches {
		if colors {
			w.WriteString(paintLine(l, c.highlight, c.cfg))
		} else {
			w.WriteString(l.String())
		}
		w.WriteByte('\n')
	}
	w.WriteString(summary(report.Count, colors, c.cfg))
	w.WriteByte('\n')
	return w.Flush()
}
