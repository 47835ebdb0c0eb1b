package pipeline

import (
	"sync/atomic"

	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/io/line"
	"github.com/mimecast/webgrep/internal/match"
	"github.com/mimecast/webgrep/internal/queue"
	"github.com/mimecast/webgrep/internal/regex"
)

// Matcher is a consumer. It takes lines from the work queue and adds the
// ones passing the pattern test to the match set.
type Matcher struct {
	id      int
	work    *queue.Unbounded[line.Line]
	regex   regex.Regex
	matches *match.Set
	scanned *atomic.Uint64
}

// NewMatcher returns a matcher. Every dequeued line is counted in scanned.
func NewMatcher(id int, work *queue.Unbounded[line.Line], re regex.Regex,
	matches *match.Set, scanned *atomic.Uint64) *Matcher {

	return &Matcher{id: id, work: work, regex: re, matches: matches, scanned: scanned}
}

// Run consumes lines until it observes end-of-work, which it consumes
// exactly once.
func (m *Matcher) Run() {
	var scanned, matched int
	for {
		l, ok := m.work.Take()
		if !ok {
			dlog.Client.Debug("Matcher", m.id, "done", "scanned", scanned, "matched", matched)
			return
		}
		scanned++
		m.scanned.Add(1)
		if m.regex.MatchString(l.Text) {
			matched++
			m.matches.Add(l)
		}
	}
}
