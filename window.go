package truncio

// window is a fixed-capacity byte ring holding lookahead pulled from the
// underlying reader but not yet released to the consumer. Capacity equals the
// sentinel length, so sliding never reallocates or rotates the backing array.
type window struct {
	buf  []byte
	head int // index of the logical first byte
	n    int // buffered byte count
}

func newWindow(capacity int) window {
	return window{buf: make([]byte, capacity)}
}

func (w *window) len() int   { return w.n }
func (w *window) full() bool { return w.n == len(w.buf) }

// at returns the i-th buffered byte, 0 being the oldest.
func (w *window) at(i int) byte {
	return w.buf[(w.head+i)%len(w.buf)]
}

// tail returns the largest contiguous free segment, for a direct source read.
func (w *window) tail() []byte {
	start := (w.head + w.n) % len(w.buf)
	free := len(w.buf) - w.n
	if start+free > len(w.buf) {
		free = len(w.buf) - start
	}

	return w.buf[start : start+free]
}

// grow commits n bytes just read into tail.
func (w *window) grow(n int) { w.n += n }

// drop removes up to n bytes from the front, copying them into dst when dst is
// non-nil. It returns the number of bytes removed.
func (w *window) drop(dst []byte, n int) int {
	if n > w.n {
		n = w.n
	}

	first := len(w.buf) - w.head
	if first > n {
		first = n
	}
	if dst != nil {
		copy(dst, w.buf[w.head:w.head+first])
		copy(dst[first:], w.buf[:n-first])
	}

	w.head = (w.head + n) % len(w.buf)
	w.n -= n

	return n
}

// reset discards all buffered bytes.
func (w *window) reset() {
	w.head = 0
	w.n = 0
}
