// Package regex implements the pattern test of the line matchers. By default a
// pattern is an exact, case-sensitive substring without any regular
// expression semantics. Optionally a pattern can be compiled as a Go regular
// expression, in which case literal patterns still take the substring fast path.
package regex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mimecast/webgrep/internal/errors"
)

// Regex for filtering lines.
type Regex struct {
	// The original pattern string
	pattern string
	// The Golang regexp object, nil for literal patterns
	re          *regexp.Regexp
	flag        Flag
	initialized bool
	// isLiteral is true when matching uses plain substring search
	isLiteral bool
}

func (r Regex) String() string {
	return fmt.Sprintf("Regex(pattern:%s,flag:%s,initialized:%t,isLiteral:%t)",
		r.pattern, r.flag, r.initialized, r.isLiteral)
}

// isLiteralPattern checks if the pattern contains no regex metacharacters.
// It returns true only for patterns that can be matched using simple string contains.
func isLiteralPattern(pattern string) bool {
	return !strings.ContainsAny(pattern, `.+*?^$[]{}()|\`)
}

// NewNoop is a noop regex selecting every line.
func NewNoop() Regex {
	return Regex{flag: Noop, initialized: true}
}

// NewLiteral returns a matcher testing for an exact substring. Characters
// such as '.' have no special meaning. The pattern must not be empty.
func NewLiteral(pattern string, flag Flag) (Regex, error) {
	if pattern == "" {
		return Regex{}, errors.Wrap(errors.ErrInvalidArgument, "empty pattern")
	}
	return Regex{
		pattern:     pattern,
		flag:        flag,
		isLiteral:   true,
		initialized: true,
	}, nil
}

// New returns a matcher interpreting the pattern as a Go regular expression.
func New(pattern string, flag Flag) (Regex, error) {
	if pattern == "" || pattern == ".*" {
		return NewNoop(), nil
	}
	if isLiteralPattern(pattern) {
		return NewLiteral(pattern, flag)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Regex{}, errors.Wrapf(errors.ErrInvalidArgument, "compiling pattern %q: %v", pattern, err)
	}
	return Regex{
		pattern:     pattern,
		re:          re,
		flag:        flag,
		initialized: true,
	}, nil
}

// MatchString reports whether a line is selected.
func (r Regex) MatchString(str string) bool {
	switch r.flag {
	case Default:
		return r.contains(str)
	case Invert:
		return !r.contains(str)
	case Noop:
		return true
	default:
		return false
	}
}

func (r Regex) contains(str string) bool {
	if r.isLiteral {
		return strings.Contains(str, r.pattern)
	}
	return r.re.MatchString(str)
}

// FindAllIndex returns the byte ranges of every pattern occurrence in str.
// It is used to highlight matches and returns nil for inverted and noop
// matchers, as those do not select lines by occurrence.
func (r Regex) FindAllIndex(str string) [][]int {
	if r.flag != Default {
		return nil
	}
	if !r.isLiteral {
		return r.re.FindAllStringIndex(str, -1)
	}
	var indices [][]int
	for offset := 0; offset <= len(str); {
		i := strings.Index(str[offset:], r.pattern)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(r.pattern)
		indices = append(indices, []int{start, end})
		offset = end
	}
	return indices
}

// IsLiteral returns true if this regex is using literal string matching
func (r Regex) IsLiteral() bool {
	return r.isLiteral
}

// Initialized returns true for a regex built by one of the constructors.
func (r Regex) Initialized() bool {
	return r.initialized
}

// Pattern returns the original pattern string
func (r Regex) Pattern() string {
	return r.pattern
}

// Flag returns the selection flag.
func (r Regex) Flag() Flag {
	return r.flag
}
