package handler

import (
	"bytes"
	"sync"
)

const (
	initialBufferSize = 4 << 10
	// Search pages can encode to hundreds of KB; don't pin those in the pool
	maxPooledBufferSize = 256 << 10
)

// bufferPool reuses response encoding buffers
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer returns buf to the pool unless it grew past maxPooledBufferSize
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
