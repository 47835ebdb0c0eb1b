package source

import (
	"context"
	"io"
	"os"
	"strings"
)

// FileOpener opens local files, given as file:// URL or plain path.
type FileOpener struct{}

// Open opens the file for reading.
func (FileOpener) Open(_ context.Context, address string) (io.ReadCloser, error) {
	return os.Open(strings.TrimPrefix(address, "file://"))
}

// StdinOpener reads the source from standard input.
type StdinOpener struct{}

// Open returns stdin. Closing it is a no-op so stdin stays usable.
func (StdinOpener) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(os.Stdin), nil
}
