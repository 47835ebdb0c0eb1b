package pipeline

import (
	"context"
	"io"
	"strings"
	"testing/iotest"

	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/source"
)

var errConnectionReset = errors.New("connection reset by peer")

// memOpener serves sources from memory. Sources listed in broken deliver
// their content and then fail, sources in hanging block until cancelled.
type memOpener struct {
	pages   map[string]string
	broken  map[string]string
	hanging map[string]bool
}

func (o memOpener) Open(ctx context.Context, address string) (io.ReadCloser, error) {
	if content, ok := o.pages[address]; ok {
		return io.NopCloser(strings.NewReader(content)), nil
	}
	if content, ok := o.broken[address]; ok {
		return io.NopCloser(io.MultiReader(strings.NewReader(content),
			iotest.ErrReader(errConnectionReset))), nil
	}
	if o.hanging[address] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, errors.Wrapf(errors.ErrSourceUnavailable, "%s: 404 Not Found", address)
}

var _ source.Opener = memOpener{}
