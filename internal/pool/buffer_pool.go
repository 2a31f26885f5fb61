package pool

import (
	"bytes"
	"sync"
)

// maxPooledSize caps the capacity of buffers kept for reuse, so one large
// download page does not pin its memory for the life of the process.
const maxPooledSize = 1 << 20

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// GetBuffer returns an empty buffer from the pool.
//
// Return back the buffer to the pool with PutBuffer.
func GetBuffer() *bytes.Buffer {
	buf, _ := bufferPool.Get().(*bytes.Buffer) // only *bytes.Buffer is put into the pool
	buf.Reset()

	return buf
}

// PutBuffer returns buf to the pool.
//
// buf cannot be accessed after returning to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledSize {
		return
	}
	bufferPool.Put(buf)
}
