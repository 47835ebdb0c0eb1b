package dlog

import (
	"fmt"
	"strings"
)

type level int

// The available log levels, from least to most verbose.
const (
	None level = iota
	Fatal
	Error
	Warn
	Info
	Verbose
	Debug
	Trace
	All
)

var levelNames = map[level]string{
	None:    "NONE",
	Fatal:   "FATAL",
	Error:   "ERROR",
	Warn:    "WARN",
	Info:    "INFO",
	Verbose: "VERBOSE",
	Debug:   "DEBUG",
	Trace:   "TRACE",
	All:     "ALL",
}

func (l level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

func newLevel(name string) (level, error) {
	switch strings.ToLower(name) {
	case "none":
		return None, nil
	case "fatal":
		return Fatal, nil
	case "error":
		return Error, nil
	case "warn", "warning":
		return Warn, nil
	case "info", "default", "":
		return Info, nil
	case "verbose":
		return Verbose, nil
	case "debug":
		return Debug, nil
	case "trace":
		return Trace, nil
	case "all":
		return All, nil
	default:
		return None, fmt.Errorf("unknown log level '%s'", name)
	}
}
