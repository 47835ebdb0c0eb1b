// Package pipeline runs the concurrent grep: one reader per source feeds a
// shared unbounded work queue, a fixed pool of matchers drains it into the
// match set. The coordinator waits for all readers, signals end-of-work and
// then waits for all matchers before it reports.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/io/line"
	"github.com/mimecast/webgrep/internal/match"
	"github.com/mimecast/webgrep/internal/queue"
	"github.com/mimecast/webgrep/internal/regex"
	"github.com/mimecast/webgrep/internal/source"
)

// Config of a pipeline run.
type Config struct {
	Sources   []string
	Consumers int
	// Pattern is an exact, case-sensitive substring unless RegexMode is set.
	Pattern     string
	RegexMode   bool
	RegexInvert bool
	// Timeout per source, 0 disables it.
	Timeout time.Duration
	// MaxLineLength defaults to constants.DefaultMaxLineLength when 0.
	MaxLineLength int
	// Sentinel stops the matchers with one end-of-work sentinel each instead
	// of closing the work queue.
	Sentinel bool
	Opener   source.Opener
}

// Pipeline coordinates a single run.
type Pipeline struct {
	cfg     Config
	state   atomic.Int32
	started atomic.Bool

	readersDone  atomic.Int64
	linesRead    atomic.Uint64
	linesScanned atomic.Uint64
	matches      *match.Set
}

// New returns a pipeline in the Starting state.
func New(cfg Config) *Pipeline {
	if cfg.MaxLineLength == 0 {
		cfg.MaxLineLength = constants.DefaultMaxLineLength
	}
	return &Pipeline{cfg: cfg, matches: match.NewSet()}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
	dlog.Client.Debug("Pipeline state", s)
}

// Progress is a snapshot of a running pipeline.
type Progress struct {
	State        State
	Sources      int
	ReadersDone  int
	LinesRead    uint64
	LinesScanned uint64
	Matches      int
}

// Progress can be called concurrently with Run.
func (p *Pipeline) Progress() Progress {
	return Progress{
		State:        p.State(),
		Sources:      len(p.cfg.Sources),
		ReadersDone:  int(p.readersDone.Load()),
		LinesRead:    p.linesRead.Load(),
		LinesScanned: p.linesScanned.Load(),
		Matches:      p.matches.Len(),
	}
}

func (p *Pipeline) regex() (regex.Regex, error) {
	if p.cfg.Pattern == "" {
		return regex.Regex{}, errors.Wrap(errors.ErrInvalidConfig, "empty pattern")
	}
	if p.cfg.Consumers < 1 {
		return regex.Regex{}, errors.Wrapf(errors.ErrInvalidConfig,
			"at least one consumer required, got %d", p.cfg.Consumers)
	}
	if p.cfg.MaxLineLength < 1 {
		return regex.Regex{}, errors.Wrapf(errors.ErrInvalidConfig,
			"max line length must be positive, got %d", p.cfg.MaxLineLength)
	}
	if p.cfg.Opener == nil {
		return regex.Regex{}, errors.Wrap(errors.ErrInvalidConfig, "no source opener")
	}

	flag := regex.Default
	if p.cfg.RegexInvert {
		flag = regex.Invert
	}
	var re regex.Regex
	var err error
	if p.cfg.RegexMode {
		re, err = regex.New(p.cfg.Pattern, flag)
	} else {
		re, err = regex.NewLiteral(p.cfg.Pattern, flag)
	}
	if err != nil {
		return regex.Regex{}, errors.Wrapf(errors.ErrInvalidConfig, "%v", err)
	}
	return re, nil
}

// Run executes the pipeline once and blocks until every reader and matcher
// has finished. Source failures do not fail the run, they are part of the
// report. Cancelling ctx makes all pending reads fail.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	re, err := p.regex()
	if err != nil {
		return Report{}, err
	}
	if !p.started.CompareAndSwap(false, true) {
		return Report{}, errors.ErrAlreadyStarted
	}

	start := time.Now()
	consumers := p.cfg.Consumers
	work := queue.NewUnbounded[line.Line]()
	dlog.Client.Debug("Starting pipeline", "sources", len(p.cfg.Sources),
		"consumers", consumers, "pattern", re)

	var consumerWg sync.WaitGroup
	consumerWg.Add(consumers)
	for i := 0; i < consumers; i++ {
		m := NewMatcher(i, work, re, p.matches, &p.linesScanned)
		go func() {
			defer consumerWg.Done()
			m.Run()
		}()
	}

	statuses := make([]SourceStatus, len(p.cfg.Sources))
	var producerWg sync.WaitGroup
	producerWg.Add(len(p.cfg.Sources))
	for i, src := range p.cfg.Sources {
		r := NewReader(src, p.cfg.Opener, work, p.cfg.Timeout, p.cfg.MaxLineLength, &p.linesRead)
		go func(i int) {
			defer producerWg.Done()
			statuses[i] = r.Run(ctx)
			p.readersDone.Add(1)
		}(i)
	}
	p.setState(Producing)

	producerWg.Wait()
	p.setState(Draining)
	p.signalEndOfWork(work, consumers)

	consumerWg.Wait()
	// Sentinel mode leaves the queue open, nothing must be left behind.
	work.Close()
	if n := work.Len(); n != 0 {
		dlog.Client.FatalPanic(errors.ErrProtocolViolation, n, "entries left in work queue")
	}
	p.setState(Done)

	report := newReport(p.matches, p.cfg.Sources)
	report.LinesRead = p.linesRead.Load()
	report.LinesScanned = p.linesScanned.Load()
	report.Sources = statuses
	report.Duration = time.Since(start)
	if report.LinesRead != report.LinesScanned {
		dlog.Client.FatalPanic(errors.ErrProtocolViolation, "read", report.LinesRead,
			"scanned", report.LinesScanned)
	}
	return report, nil
}

func (p *Pipeline) signalEndOfWork(work *queue.Unbounded[line.Line], consumers int) {
	if !p.cfg.Sentinel {
		work.Close()
		return
	}
	var sent int
	for i := 0; i < consumers; i++ {
		if err := work.PutEndOfWork(); err != nil {
			dlog.Client.FatalPanic(errors.ErrProtocolViolation, err)
		}
		sent++
	}
	if sent != consumers {
		dlog.Client.FatalPanic(errors.ErrProtocolViolation, "sent", sent,
			"sentinels for", consumers, "consumers")
	}
}
