package regex

import "fmt"

// Flag changes how a pattern selects lines.
type Flag int

const (
	// Default selects lines matching the pattern.
	Default Flag = iota
	// Invert selects lines not matching the pattern.
	Invert
	// Noop selects every line.
	Noop
)

// NewFlag parses a flag name.
func NewFlag(str string) (Flag, error) {
	switch str {
	case "default":
		return Default, nil
	case "invert":
		return Invert, nil
	case "noop":
		return Noop, nil
	default:
		return Default, fmt.Errorf("unknown regex flag '%s'", str)
	}
}

func (f Flag) String() string {
	switch f {
	case Default:
		return "default"
	case Invert:
		return "invert"
	case Noop:
		return "noop"
	default:
		return fmt.Sprintf("Flag(%d)", int(f))
	}
}
