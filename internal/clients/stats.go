package clients

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mimecast/webgrep/internal/color"
	"github.com/mimecast/webgrep/internal/config"
	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/pipeline"
	"github.com/mimecast/webgrep/internal/protocol"
)

// stats reports the progress of a running pipeline, periodically to the log
// and on demand (Ctrl+C) to stderr.
type stats struct {
	progress func() pipeline.Progress
	cfg      *config.ClientConfig
}

func newStats(progress func() pipeline.Progress, cfg *config.ClientConfig) *stats {
	return &stats{progress: progress, cfg: cfg}
}

// Start loops until ctx is done. Every message on statsCh prints the
// current progress. Unless quiet, changed progress is logged periodically.
func (s *stats) Start(ctx context.Context, statsCh <-chan string, quiet bool) {
	ticker := time.NewTicker(constants.StatsTimerDuration)
	defer ticker.Stop()

	var last pipeline.Progress
	for {
		select {
		case message := <-statsCh:
			s.printStatsDueInterrupt([]string{message,
				fmt.Sprintf("Progress: %s", s.statsLine(s.progress()))})
		case <-ticker.C:
			current := s.progress()
			if quiet || current == last {
				continue
			}
			dlog.Client.Info("STATS", s.statsLine(current))
			last = current
		case <-ctx.Done():
			return
		}
	}
}

// printStatsDueInterrupt pauses the log output while the messages are shown.
// The first message is printed uncolored.
func (s *stats) printStatsDueInterrupt(messages []string) {
	dlog.PauseAll()
	defer dlog.ResumeAll()

	for i, message := range messages {
		if i > 0 && s.cfg.TermColorsEnable {
			fmt.Fprintln(os.Stderr, color.PaintStrWithAttr(message,
				s.cfg.TermColors.StatsFg,
				s.cfg.TermColors.StatsBg,
				s.cfg.TermColors.StatsAttr,
			))
			continue
		}
		fmt.Fprintf(os.Stderr, " %s\n", message)
	}
	time.Sleep(constants.StatsPauseDuration)
}

// statsLine formats the progress as key=value pairs in a fixed order.
func (s *stats) statsLine(p pipeline.Progress) string {
	fields := []string{
		fmt.Sprintf("state=%s", p.State),
		fmt.Sprintf("sources=%d", p.Sources),
		fmt.Sprintf("readersDone=%d", p.ReadersDone),
		fmt.Sprintf("readersDone%%=%d", int(percentOf(float64(p.Sources), float64(p.ReadersDone)))),
		fmt.Sprintf("linesRead=%d", p.LinesRead),
		fmt.Sprintf("linesScanned=%d", p.LinesScanned),
		fmt.Sprintf("matches=%d", p.Matches),
		fmt.Sprintf("goroutines=%d", runtime.NumGoroutine()),
	}
	return strings.Join(fields, protocol.LogFieldDelimiter)
}

// percentOf calculates the percentage of value relative to total. A zero
// total counts as complete.
func percentOf(total float64, value float64) float64 {
	if total == 0 || total == value {
		return constants.PercentageMultiplier
	}
	return value / (total / constants.PercentageMultiplier)
}
