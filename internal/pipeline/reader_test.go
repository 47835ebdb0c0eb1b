package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/io/line"
	"github.com/mimecast/webgrep/internal/queue"
	"github.com/mimecast/webgrep/internal/testutil"
)

func drain(q *queue.Unbounded[line.Line]) (lines []line.Line) {
	q.Close()
	for {
		l, ok := q.Take()
		if !ok {
			return
		}
		lines = append(lines, l)
	}
}

func TestReaderNumbersLinesInOrder(t *testing.T) {
	var page strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&page, "line %d\r\n", i)
	}
	page.WriteString("last line without newline")

	opener := memOpener{pages: map[string]string{"http://a/": page.String()}}
	work := queue.NewUnbounded[line.Line]()
	var linesRead atomic.Uint64

	status := NewReader("http://a/", opener, work, 0, constants.DefaultMaxLineLength,
		&linesRead).Run(context.Background())
	testutil.AssertNoError(t, status.Err)
	testutil.AssertEqual(t, uint64(501), status.LinesRead)
	testutil.AssertEqual(t, uint64(501), linesRead.Load())

	lines := drain(work)
	testutil.AssertEqual(t, 501, len(lines))
	for i, l := range lines {
		testutil.AssertEqual(t, uint64(i), l.Number)
		testutil.AssertEqual(t, "http://a/", l.Source)
	}
	testutil.AssertEqual(t, "line 0", lines[0].Text)
	testutil.AssertEqual(t, "last line without newline", lines[500].Text)
}

func TestReaderFailureKeepsEarlierLines(t *testing.T) {
	opener := memOpener{broken: map[string]string{"http://b/": "one\ntwo 6.005\n"}}
	work := queue.NewUnbounded[line.Line]()
	var linesRead atomic.Uint64

	status := NewReader("http://b/", opener, work, 0, constants.DefaultMaxLineLength,
		&linesRead).Run(context.Background())
	if !errors.Is(status.Err, errors.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", status.Err)
	}
	if !errors.Is(status.Err, errConnectionReset) {
		t.Fatalf("expected the read error to be wrapped, got %v", status.Err)
	}
	testutil.AssertEqual(t, uint64(2), status.LinesRead)

	lines := drain(work)
	testutil.AssertEqual(t, 2, len(lines))
	testutil.AssertEqual(t, "two 6.005", lines[1].Text)
}

func TestReaderUnavailableSourceEnqueuesNothing(t *testing.T) {
	work := queue.NewUnbounded[line.Line]()
	var linesRead atomic.Uint64

	status := NewReader("http://missing/", memOpener{}, work, 0, constants.DefaultMaxLineLength,
		&linesRead).Run(context.Background())
	if !errors.Is(status.Err, errors.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", status.Err)
	}
	testutil.AssertEqual(t, 0, work.Len())
	testutil.AssertEqual(t, uint64(0), linesRead.Load())
}

func TestReaderTimeout(t *testing.T) {
	opener := memOpener{hanging: map[string]bool{"http://slow/": true}}
	work := queue.NewUnbounded[line.Line]()
	var linesRead atomic.Uint64

	status := NewReader("http://slow/", opener, work, 50*time.Millisecond,
		constants.DefaultMaxLineLength, &linesRead).Run(context.Background())
	if !errors.Is(status.Err, errors.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", status.Err)
	}
}

func TestReaderCancelled(t *testing.T) {
	opener := memOpener{hanging: map[string]bool{"http://slow/": true}}
	work := queue.NewUnbounded[line.Line]()
	var linesRead atomic.Uint64

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	status := NewReader("http://slow/", opener, work, time.Minute,
		constants.DefaultMaxLineLength, &linesRead).Run(ctx)
	if !errors.Is(status.Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", status.Err)
	}
	if errors.Is(status.Err, errors.ErrTimeout) {
		t.Fatalf("cancellation must not be reported as timeout: %v", status.Err)
	}
}
