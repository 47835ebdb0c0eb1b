package pipeline

import (
	"time"

	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/io/line"
	"github.com/mimecast/webgrep/internal/match"
)

// SourceStatus is the outcome of reading one source.
type SourceStatus struct {
	Source    string
	LinesRead uint64
	Duration  time.Duration
	// Err is nil when the source was read completely.
	Err error
}

// Report is the result of a pipeline run.
type Report struct {
	// Matches in the order the matchers found them.
	Matches []line.Line
	Count   int
	// LinesRead counts the lines enqueued by all readers.
	LinesRead uint64
	// LinesScanned counts the lines dequeued by all matchers.
	LinesScanned uint64
	Sources      []SourceStatus
	Duration     time.Duration

	sorted []line.Line
}

func newReport(matches *match.Set, sources []string) Report {
	return Report{
		Matches: matches.Lines(),
		Count:   matches.Len(),
		sorted:  matches.Sorted(sources),
	}
}

// SortedMatches returns the matches ordered by source (in configured order)
// and line number.
func (r Report) SortedMatches() []line.Line {
	return r.sorted
}

// Failed returns the number of sources which could not be read completely.
func (r Report) Failed() (n int) {
	for _, s := range r.Sources {
		if s.Err != nil {
			n++
		}
	}
	return
}

// Err returns all source errors as one error, or nil if every source was
// read completely.
func (r Report) Err() error {
	multi := errors.NewMultiError()
	for _, s := range r.Sources {
		multi.Add(s.Err)
	}
	return multi.ErrorOrNil()
}
