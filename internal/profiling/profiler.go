// Package profiling writes pprof CPU and heap profiles of a WebGrep run.
package profiling

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/mimecast/webgrep/internal/io/dlog"
)

// Profiler manages CPU and memory profiling of a command
type Profiler struct {
	cpuProfile  *os.File
	memProfile  string
	profileDir  string
	commandName string
	enabled     bool
}

// Config holds profiling configuration
type Config struct {
	// Enable CPU profiling
	CPUProfile bool
	// Enable memory profiling
	MemProfile bool
	// Directory to store profiles
	ProfileDir string
	// Command name for profile naming
	CommandName string
}

// NewProfiler creates a new profiler instance and starts CPU profiling if
// requested.
func NewProfiler(cfg Config) *Profiler {
	if !cfg.CPUProfile && !cfg.MemProfile {
		return &Profiler{enabled: false}
	}

	p := &Profiler{
		profileDir:  cfg.ProfileDir,
		commandName: cfg.CommandName,
		enabled:     true,
	}
	if p.profileDir == "" {
		p.profileDir = "profiles"
	}
	if err := os.MkdirAll(p.profileDir, 0755); err != nil {
		dlog.Common.Error("Failed to create profile directory", err)
		p.enabled = false
		return p
	}

	if cfg.CPUProfile {
		p.startCPUProfile()
	}
	if cfg.MemProfile {
		p.memProfile = p.path("mem")
	}
	return p
}

func (p *Profiler) path(kind string) string {
	return filepath.Join(p.profileDir, fmt.Sprintf("%s_%s_%s.prof", p.commandName, kind,
		time.Now().Format("20060102_150405")))
}

func (p *Profiler) startCPUProfile() {
	cpuProfilePath := p.path("cpu")
	f, err := os.Create(cpuProfilePath)
	if err != nil {
		dlog.Common.Error("Failed to create CPU profile file", err)
		return
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		dlog.Common.Error("Failed to start CPU profile", err)
		f.Close()
		return
	}

	p.cpuProfile = f
	dlog.Common.Info("Started CPU profiling", cpuProfilePath)
}

// Stop stops all profiling and writes profiles to disk
func (p *Profiler) Stop() {
	if !p.enabled {
		return
	}
	if p.cpuProfile != nil {
		pprof.StopCPUProfile()
		p.cpuProfile.Close()
		p.cpuProfile = nil
		dlog.Common.Info("Stopped CPU profiling")
	}
	if p.memProfile != "" {
		p.writeMemProfile()
	}
}

func (p *Profiler) writeMemProfile() {
	f, err := os.Create(p.memProfile)
	if err != nil {
		dlog.Common.Error("Failed to create memory profile file", err)
		return
	}
	defer f.Close()

	// GC first so the heap profile shows live objects only
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		dlog.Common.Error("Failed to write memory profile", err)
		return
	}
	dlog.Common.Info("Wrote memory profile", p.memProfile)

	allocProfilePath := p.path("alloc")
	allocFile, err := os.Create(allocProfilePath)
	if err != nil {
		dlog.Common.Error("Failed to create allocation profile file", err)
		return
	}
	defer allocFile.Close()

	if err := pprof.Lookup("allocs").WriteTo(allocFile, 0); err != nil {
		dlog.Common.Error("Failed to write allocation profile", err)
		return
	}
	dlog.Common.Info("Wrote allocation profile", allocProfilePath)
}

// Metrics are runtime metrics of the process
type Metrics struct {
	Alloc        uint64
	TotalAlloc   uint64
	Sys          uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// GetMetrics returns current runtime metrics
func GetMetrics() Metrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return Metrics{
		Alloc:        m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

// LogMetrics logs current runtime metrics
func (p *Profiler) LogMetrics(label string) {
	if !p.enabled {
		return
	}

	m := GetMetrics()
	dlog.Common.Info("Profile metrics", label,
		fmt.Sprintf("alloc=%.2fMB", float64(m.Alloc)/1024/1024),
		fmt.Sprintf("totalAlloc=%.2fMB", float64(m.TotalAlloc)/1024/1024),
		fmt.Sprintf("sys=%.2fMB", float64(m.Sys)/1024/1024),
		fmt.Sprintf("numGC=%d", m.NumGC),
		fmt.Sprintf("gcPause=%.2fms", float64(m.PauseTotalNs)/1e6),
		fmt.Sprintf("goroutines=%d", m.NumGoroutine))
}
