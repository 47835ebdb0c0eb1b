// Package dlog is the WebGrep logger. Messages are formatted synchronously
// and written by a background goroutine started with Start. Until Start is
// called all loggers write warnings and errors straight to stderr.
package dlog

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mimecast/webgrep/internal/config"
	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/protocol"
)

// Client is the logger used by the grep client and the pipeline.
var Client *DLog

// Common is the logger used by shared packages such as source readers.
var Common *DLog

func init() {
	Client = newSyncLogger("CLIENT")
	Common = newSyncLogger("COMMON")
}

type entry struct {
	now     time.Time
	message string
}

// DLog is a leveled logger.
type DLog struct {
	name     string
	hostname string
	level    level

	mu      sync.Mutex
	started bool
	ch      chan entry
	done    chan struct{}
	paused  bool
	held    []entry
}

func newSyncLogger(name string) *DLog {
	hostname, _ := os.Hostname()
	return &DLog{name: name, hostname: hostname, level: Warn}
}

// Start replaces the package loggers with asynchronous ones configured from
// config.Common. The writer goroutine flushes and exits once ctx is done,
// then calls wg.Done. The caller adds to wg before calling Start.
func Start(ctx context.Context, wg *sync.WaitGroup, name string) {
	strategy, levelName, dir := config.DefaultClientLogger, config.DefaultLogLevel, "log"
	if config.Common != nil {
		strategy, levelName, dir = config.Common.Logger, config.Common.LogLevel, config.Common.LogDir
	}

	lvl, err := newLevel(levelName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err, "- falling back to", Warn)
		lvl = Warn
	}
	b, err := newBackend(strategy, dir, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err, "- falling back to stderr")
		b = writerBackend{os.Stderr}
	}

	hostname, err := config.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	Client, Common = start(ctx, wg, b, lvl, hostname)
}

func start(ctx context.Context, wg *sync.WaitGroup, b backend, lvl level,
	hostname string) (client, common *DLog) {

	ch := make(chan entry, constants.LoggerBufferChannelMultiplier*runtime.NumCPU())
	done := make(chan struct{})
	client = &DLog{name: "CLIENT", hostname: hostname, level: lvl, started: true, ch: ch, done: done}
	common = &DLog{name: "COMMON", hostname: hostname, level: lvl, started: true, ch: ch, done: done}

	go func() {
		defer wg.Done()
		defer b.close()
		run(ctx, ch, done, b)
	}()
	return
}

func run(ctx context.Context, ch <-chan entry, done chan struct{}, b backend) {
	defer close(done)
	for {
		select {
		case e := <-ch:
			b.write(e.now, e.message)
		case <-ctx.Done():
			flush(ch, b)
			return
		}
	}
}

// flush drains what is left in the channel.
func flush(ch <-chan entry, b backend) {
	for {
		select {
		case e := <-ch:
			b.write(e.now, e.message)
		default:
			return
		}
	}
}

func (d *DLog) format(now time.Time, lvl level, args []interface{}) string {
	var sb strings.Builder
	sb.WriteString(d.name)
	sb.WriteString(protocol.LogFieldDelimiter)
	sb.WriteString(d.hostname)
	sb.WriteString(protocol.LogFieldDelimiter)
	sb.WriteString(now.Format("20060102-150405"))
	sb.WriteString(protocol.LogFieldDelimiter)
	sb.WriteString(lvl.String())
	for _, arg := range args {
		sb.WriteString(protocol.LogFieldDelimiter)
		sb.WriteString(fmt.Sprint(arg))
	}
	return sb.String()
}

func (d *DLog) log(lvl level, args []interface{}) string {
	if lvl > d.level {
		return ""
	}
	now := time.Now()
	message := d.format(now, lvl, args)
	d.write(entry{now, message})
	return message
}

func (d *DLog) write(e entry) {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		fmt.Fprintln(os.Stderr, e.message)
		return
	}
	if d.paused {
		d.held = append(d.held, e)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	select {
	case d.ch <- e:
	case <-d.done:
		// Writer is gone, do not lose the message.
		fmt.Fprintln(os.Stderr, e.message)
	}
}

// FatalPanic logs the message and panics.
func (d *DLog) FatalPanic(args ...interface{}) {
	message := d.format(time.Now(), Fatal, args)
	fmt.Fprintln(os.Stderr, message)
	panic(message)
}

// Error logs at error level and returns the formatted message.
func (d *DLog) Error(args ...interface{}) string {
	return d.log(Error, args)
}

// Warn logs at warn level and returns the formatted message.
func (d *DLog) Warn(args ...interface{}) string {
	return d.log(Warn, args)
}

// Info logs at info level.
func (d *DLog) Info(args ...interface{}) string {
	return d.log(Info, args)
}

// Verbose logs at verbose level.
func (d *DLog) Verbose(args ...interface{}) string {
	return d.log(Verbose, args)
}

// Debug logs at debug level.
func (d *DLog) Debug(args ...interface{}) string {
	return d.log(Debug, args)
}

// Trace logs at trace level.
func (d *DLog) Trace(args ...interface{}) string {
	return d.log(Trace, args)
}

// Raw writes the message as is, unless logging is disabled.
func (d *DLog) Raw(message string) {
	if d.level == None {
		return
	}
	d.write(entry{time.Now(), message})
}

// Pause holds back all messages until Resume is called.
func (d *DLog) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paused = true
}

// Resume writes all held back messages and continues logging.
func (d *DLog) Resume() {
	d.mu.Lock()
	held := d.held
	d.held = nil
	d.paused = false
	d.mu.Unlock()

	for _, e := range held {
		d.write(e)
	}
}

// PauseAll pauses the Client and the Common logger.
func PauseAll() {
	Client.Pause()
	Common.Pause()
}

// ResumeAll resumes the Client and the Common logger.
func ResumeAll() {
	Client.Resume()
	Common.Resume()
}
