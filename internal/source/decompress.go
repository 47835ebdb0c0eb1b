package source

import (
	"compress/gzip"
	"io"
	"net/url"
	"strings"

	"github.com/DataDog/zstd"
)

type compression int

const (
	compressionNone compression = iota
	compressionGzip
	compressionZstd
)

// compressionOf derives the compression from the path of an address.
func compressionOf(address string) compression {
	path := address
	if u, err := url.Parse(address); err == nil && u.Path != "" {
		path = u.Path
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		return compressionGzip
	case strings.HasSuffix(path, ".zst"):
		return compressionZstd
	default:
		return compressionNone
	}
}

// compressionOfEncoding maps a HTTP Content-Encoding to a compression.
func compressionOfEncoding(encoding string) compression {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip", "x-gzip":
		return compressionGzip
	case "zstd":
		return compressionZstd
	default:
		return compressionNone
	}
}

// stackedReadCloser reads from the decompressor and closes it together with
// the underlying stream.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s stackedReadCloser) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// contentDecoded marks a stream already decoded by its transport, e.g. by a
// HTTP Content-Encoding. The file suffix then no longer applies.
type contentDecoded struct {
	io.ReadCloser
}

// Decompress wraps rc according to the file suffix of address (.gz or .zst).
// Other streams, and streams decoded by their transport, are returned
// unchanged.
func Decompress(address string, rc io.ReadCloser) (io.ReadCloser, error) {
	if _, ok := rc.(contentDecoded); ok {
		return rc, nil
	}
	return decompress(compressionOf(address), rc)
}

func decompress(c compression, rc io.ReadCloser) (io.ReadCloser, error) {
	switch c {
	case compressionGzip:
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return stackedReadCloser{gz, []io.Closer{gz, rc}}, nil
	case compressionZstd:
		zr := zstd.NewReader(rc)
		return stackedReadCloser{zr, []io.Closer{zr, rc}}, nil
	default:
		return rc, nil
	}
}
