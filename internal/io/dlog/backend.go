package dlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backend receives fully formatted log lines.
type backend interface {
	write(now time.Time, message string)
	close()
}

type writerBackend struct {
	w io.Writer
}

func (b writerBackend) write(_ time.Time, message string) {
	fmt.Fprintln(b.w, message)
}

func (writerBackend) close() {}

type noneBackend struct{}

func (noneBackend) write(time.Time, string) {}
func (noneBackend) close()                  {}

// fileBackend writes to one file per day in dir.
type fileBackend struct {
	dir  string
	name string
	day  string
	fd   *os.File
}

func newFileBackend(dir, name string) (*fileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &fileBackend{dir: dir, name: strings.ToLower(name)}, nil
}

func (b *fileBackend) path(day string) string {
	return filepath.Join(b.dir, fmt.Sprintf("%s-%s.log", b.name, day))
}

func (b *fileBackend) write(now time.Time, message string) {
	day := now.Format("20060102")
	if b.fd == nil || day != b.day {
		b.close()
		fd, err := os.OpenFile(b.path(day), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "unable to open log file:", err)
			return
		}
		b.fd = fd
		b.day = day
	}
	fmt.Fprintln(b.fd, message)
}

func (b *fileBackend) close() {
	if b.fd != nil {
		b.fd.Close()
		b.fd = nil
	}
}

type multiBackend []backend

func (m multiBackend) write(now time.Time, message string) {
	for _, b := range m {
		b.write(now, message)
	}
}

func (m multiBackend) close() {
	for _, b := range m {
		b.close()
	}
}

func newBackend(strategy, dir, name string) (backend, error) {
	switch strategy {
	case "stderr", "":
		return writerBackend{os.Stderr}, nil
	case "stdout":
		return writerBackend{os.Stdout}, nil
	case "file":
		return newFileBackend(dir, name)
	case "fout":
		fb, err := newFileBackend(dir, name)
		if err != nil {
			return nil, err
		}
		return multiBackend{fb, writerBackend{os.Stdout}}, nil
	case "none":
		return noneBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown logger '%s'", strategy)
	}
}
