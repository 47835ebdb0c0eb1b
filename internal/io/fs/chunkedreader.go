// Package fs turns byte streams into lines.
package fs

import (
	"bytes"
	"context"
	"io"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/io/pool"
)

// ChunkedReader reads data in large chunks and hands it on line by line.
type ChunkedReader struct {
	reader    io.Reader
	buffer    []byte
	chunkSize int
}

// NewChunkedReader creates a new chunked reader with the specified chunk size.
func NewChunkedReader(reader io.Reader, chunkSize int) *ChunkedReader {
	if chunkSize <= 0 {
		chunkSize = constants.ReadBufferSize
	}
	return &ChunkedReader{
		reader:    reader,
		buffer:    make([]byte, chunkSize),
		chunkSize: chunkSize,
	}
}

// ReadLines calls emit once per line, in order. Line terminators ("\n" and
// "\r\n") are stripped. A final line without terminator is emitted as well.
// Lines longer than maxLineLength bytes are split into several lines, a
// maxLineLength <= 0 means no limit.
// Reading stops at the first read error, emit error or when ctx is done.
func (cr *ChunkedReader) ReadLines(ctx context.Context, maxLineLength int,
	sourceName string, emit func(text string) error) error {

	message := pool.BytesBuffer.Get().(*bytes.Buffer)
	defer pool.RecycleBytesBuffer(message)
	warnedAboutLongLine := false

	send := func() error {
		err := emit(message.String())
		message.Reset()
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := cr.reader.Read(cr.buffer)
		chunk := cr.buffer[:n]

		for len(chunk) > 0 {
			idx := bytes.IndexByte(chunk, '\n')
			part := chunk
			if idx >= 0 {
				part = bytes.TrimSuffix(chunk[:idx], []byte{'\r'})
				if idx == 0 && bytes.HasSuffix(message.Bytes(), []byte{'\r'}) {
					// "\r\n" split across two chunks
					message.Truncate(message.Len() - 1)
				}
			}

			for maxLineLength > 0 && message.Len()+len(part) > maxLineLength {
				room := maxLineLength - message.Len()
				message.Write(part[:room])
				part = part[room:]
				if !warnedAboutLongLine {
					dlog.Common.Warn(sourceName, "Long line, splitting into multiple lines")
					warnedAboutLongLine = true
				}
				if err := send(); err != nil {
					return err
				}
			}
			message.Write(part)

			if idx < 0 {
				break
			}
			if err := send(); err != nil {
				return err
			}
			warnedAboutLongLine = false
			chunk = chunk[idx+1:]
		}

		if readErr == io.EOF {
			if message.Len() > 0 {
				return send()
			}
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
