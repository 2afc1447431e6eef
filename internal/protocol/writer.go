package protocol

import (
	"fmt"
	"strconv"
)

// writer is a cursor over a fixed region. A write that does not fit is
// dropped and the writer turns short; every later write is ignored and
// finish reports the overflow.
type writer struct {
	buf   []byte
	off   int
	short bool
}

// bounded checks the declared length against the caller's capacity and
// returns a writer limited to exactly that length.
func bounded(buf []byte, length int, what string) (writer, error) {
	if length < 0 {
		return writer{}, &LengthError{What: what, Want: length, Got: -1}
	}
	if length > len(buf) {
		return writer{}, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrBufferTooSmall, what, length, len(buf))
	}
	return writer{buf: buf[:length]}, nil
}

func (w *writer) writeByte(b byte) {
	if w.short || w.off >= len(w.buf) {
		w.short = true
		return
	}
	w.buf[w.off] = b
	w.off++
}

func (w *writer) write(p []byte) {
	if w.short || len(p) > len(w.buf)-w.off {
		w.short = true
		return
	}
	w.off += copy(w.buf[w.off:], p)
}

func (w *writer) writeInt(n int) {
	var scratch [20]byte
	w.write(strconv.AppendInt(scratch[:0], int64(n), 10))
}

// rest exposes the unwritten tail for a nested renderer.
func (w *writer) rest() []byte {
	return w.buf[w.off:]
}

func (w *writer) finish(what string) (int, error) {
	if w.short {
		return w.off, &LengthError{What: what, Want: len(w.buf), Got: -1}
	}
	if w.off != len(w.buf) {
		return w.off, &LengthError{What: what, Want: len(w.buf), Got: w.off}
	}
	return w.off, nil
}
