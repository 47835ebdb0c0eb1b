// Package pool holds reusable buffers.
package pool

import (
	"bytes"
	"sync"

	"github.com/mimecast/webgrep/internal/constants"
)

// BytesBuffer is there to optimize memory allocations. Every source reader
// assembles its lines in one of these buffers.
var BytesBuffer = sync.Pool{
	New: func() interface{} {
		b := bytes.Buffer{}
		b.Grow(constants.LineBufferInitialCapacity)
		return &b
	},
}

// RecycleBytesBuffer recycles the buffer again.
func RecycleBytesBuffer(b *bytes.Buffer) {
	b.Reset()
	BytesBuffer.Put(b)
}
