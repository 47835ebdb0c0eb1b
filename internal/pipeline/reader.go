package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/io/fs"
	"github.com/mimecast/webgrep/internal/io/line"
	"github.com/mimecast/webgrep/internal/queue"
	"github.com/mimecast/webgrep/internal/source"
)

// Reader is the producer of one source. It turns the source into line
// records and puts them onto the work queue.
type Reader struct {
	source        string
	opener        source.Opener
	work          *queue.Unbounded[line.Line]
	timeout       time.Duration
	maxLineLength int
	linesRead     *atomic.Uint64
}

// NewReader returns a reader of src. Every enqueued line is counted in
// linesRead. A timeout of 0 disables the per source timeout.
func NewReader(src string, opener source.Opener, work *queue.Unbounded[line.Line],
	timeout time.Duration, maxLineLength int, linesRead *atomic.Uint64) *Reader {

	return &Reader{
		source:        src,
		opener:        opener,
		work:          work,
		timeout:       timeout,
		maxLineLength: maxLineLength,
		linesRead:     linesRead,
	}
}

// Run reads the source to the end. Lines are numbered from 0 without gaps.
// Failures are logged and returned in the status, nothing is enqueued for
// them. Lines read before a failure stay enqueued.
func (r *Reader) Run(ctx context.Context) (status SourceStatus) {
	start := time.Now()
	status.Source = r.source
	defer func() { status.Duration = time.Since(start) }()

	readCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	err := r.read(readCtx, &status)
	if err == nil {
		dlog.Client.Debug(r.source, "Source read", status.LinesRead, "lines")
		return
	}
	if ctx.Err() == nil && errors.Is(readCtx.Err(), context.DeadlineExceeded) {
		err = errors.Wrapf(errors.ErrTimeout, "after %v: %v", r.timeout, err)
	}
	status.Err = errors.New("%w: %s: %w", errors.ErrSourceUnavailable, r.source, err)
	dlog.Client.Warn(r.source, "Unable to read source", err)
	return
}

func (r *Reader) read(ctx context.Context, status *SourceStatus) error {
	rc, err := r.opener.Open(ctx, r.source)
	if err != nil {
		return err
	}
	defer rc.Close()

	var number uint64
	return fs.NewChunkedReader(rc, 0).ReadLines(ctx, r.maxLineLength, r.source,
		func(text string) error {
			if err := r.work.Put(line.New(r.source, number, text)); err != nil {
				return err
			}
			number++
			status.LinesRead++
			r.linesRead.Add(1)
			return nil
		})
}
