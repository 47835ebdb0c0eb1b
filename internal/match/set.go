// Package match provides the Match Set: the thread-safe, append-only
// collection of lines that passed the pattern test.
package match

import (
	"sort"
	"sync"

	"github.com/mimecast/webgrep/internal/io/line"
)

// Set is an ordered collection of matched lines. It uses a read-write mutex
// to allow concurrent reads but exclusive writes. Lines are never removed.
type Set struct {
	mu    sync.RWMutex
	lines []line.Line
}

// NewSet creates an empty match set.
func NewSet() *Set {
	return &Set{}
}

// Add appends a matched line.
func (s *Set) Add(l line.Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, l)
}

// Len returns the number of matched lines.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Lines returns a copy of the matched lines in insertion order.
// The copy can be used without holding any lock.
func (s *Set) Lines() []line.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := make([]line.Line, len(s.lines))
	copy(clone, s.lines)
	return clone
}

// Sorted returns a copy of the matched lines ordered by source and line
// number. Sources are ordered as given in sourceOrder; sources not listed
// there sort after the listed ones by name.
func (s *Set) Sorted(sourceOrder []string) []line.Line {
	rank := make(map[string]int, len(sourceOrder))
	for i, src := range sourceOrder {
		if _, ok := rank[src]; !ok {
			rank[src] = i
		}
	}
	rankOf := func(src string) int {
		if r, ok := rank[src]; ok {
			return r
		}
		return len(sourceOrder)
	}

	lines := s.Lines()
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if ra, rb := rankOf(a.Source), rankOf(b.Source); ra != rb {
			return ra < rb
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Number < b.Number
	})
	return lines
}
