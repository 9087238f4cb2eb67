package internal

import (
	"bytes"
	"sync"
)

// maxPooled 超过该容量的 buffer 不回收，避免单条超长日志长期占用内存
const maxPooled = 64 << 10

var buffers = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// GetBuffer 取出一个空 buffer
func GetBuffer() *bytes.Buffer {
	return buffers.Get().(*bytes.Buffer)
}

// PutBuffer 清空并归还 buffer；脱敏后的日志可能仍含敏感片段，归还前先清零
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooled {
		return
	}
	clear(buf.Bytes()[:buf.Cap()])
	buf.Reset()
	buffers.Put(buf)
}
