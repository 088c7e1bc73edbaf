package truncio

import (
	"errors"
	"fmt"
	"io"
)

// FixedLengthReader delivers exactly Size bytes from an underlying reader and
// then reports io.EOF, regardless of how much input remains beneath it. The
// underlying reader ends up positioned exactly at the boundary.
type FixedLengthReader struct {
	src       io.Reader
	seeker    io.Seeker // nil when src cannot seek
	length    int64
	remaining int64
	base      int64 // underlying offset of the sub-stream start, seeker only
	mark      int64 // marked logical offset, -1 when unmarked
	srcEOF    bool  // underlying reader ran out before length bytes
}

// NewFixedLengthReader wraps src so that reads stop after length bytes.
// src must stay valid for the wrapper's lifetime and is not closed implicitly.
func NewFixedLengthReader(src io.Reader, length int64) (*FixedLengthReader, error) {
	if src == nil {
		return nil, ErrNilReader
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}

	r := &FixedLengthReader{src: src, length: length, remaining: length, mark: -1}
	r.seeker, r.base = seekerOf(src)

	return r, nil
}

// Unwrap returns the underlying reader.
func (r *FixedLengthReader) Unwrap() io.Reader { return r.src }

// Size returns the total length of the logical sub-stream.
func (r *FixedLengthReader) Size() int64 { return r.length }

// Offset reports the number of bytes logically delivered.
func (r *FixedLengthReader) Offset() int64 { return r.length - r.remaining }

// Read delivers up to min(len(p), remaining) bytes.
func (r *FixedLengthReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}

	n, err := r.src.Read(p)
	r.remaining -= int64(n)
	if errors.Is(err, io.EOF) {
		r.srcEOF = true
	}

	return n, err
}

// ReadByte reads a single byte, delegating to Read.
func (r *FixedLengthReader) ReadByte() (byte, error) {
	var b [1]byte
	for {
		n, err := r.Read(b[:])
		if n == 1 {
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// EOF reports logical end: the length is consumed, or the underlying reader
// was observed to run out early.
func (r *FixedLengthReader) EOF() bool { return r.remaining == 0 || r.srcEOF }

// Available reports how many more bytes the wrapper may deliver. The
// underlying reader can still cut this short by running out early.
func (r *FixedLengthReader) Available() int {
	if r.srcEOF {
		return 0
	}
	if r.remaining > int64(maxInt) {
		return maxInt
	}

	return int(r.remaining)
}

// Peek returns the next n bytes without consuming them. It needs lookahead
// from the underlying reader (for example a *bufio.Reader); without one it
// fails with ErrPeekUnsupported. Fewer than n bytes before the boundary is an
// io.ErrUnexpectedEOF.
func (r *FixedLengthReader) Peek(n int) ([]byte, error) {
	if int64(n) > r.remaining {
		return nil, io.ErrUnexpectedEOF
	}

	p, ok := r.src.(peeker)
	if !ok {
		return nil, ErrPeekUnsupported
	}

	b, err := p.Peek(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return b, io.ErrUnexpectedEOF
		}

		return b, err
	}

	return b, nil
}

// Seek repositions within [0, Size()]; out-of-range targets are clamped, not
// errors. Backward motion needs a seekable source; forward motion on a
// non-seekable source falls back to read-and-discard.
func (r *FixedLengthReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.Offset() + offset
	case io.SeekEnd:
		target = r.length + offset
	default:
		return r.Offset(), fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}
	if target < 0 {
		target = 0
	}
	if target > r.length {
		target = r.length
	}

	cur := r.Offset()
	switch {
	case r.seeker != nil:
		if _, err := r.seeker.Seek(r.base+target, io.SeekStart); err != nil {
			return cur, err
		}
		r.srcEOF = false
	case target > cur:
		skipped, err := io.CopyN(io.Discard, r.src, target-cur)
		if err != nil && !errors.Is(err, io.EOF) {
			r.remaining = r.length - (cur + skipped)
			return cur + skipped, err
		}
		if errors.Is(err, io.EOF) {
			// Source ran out mid-skip: clamp at its true end.
			r.srcEOF = true
			target = cur + skipped
		}
	case target < cur:
		return cur, ErrSeekUnsupported
	}

	r.remaining = r.length - target

	return target, nil
}

// Mark remembers the current logical offset for Reset and returns it.
func (r *FixedLengthReader) Mark() (int64, error) {
	if r.seeker == nil {
		return 0, ErrSeekUnsupported
	}
	r.mark = r.Offset()

	return r.mark, nil
}

// Reset rewinds to the marked offset, drops the mark and re-derives the
// remaining count.
func (r *FixedLengthReader) Reset() error {
	if r.mark < 0 {
		return ErrNotMarked
	}

	target := r.mark
	r.mark = -1
	_, err := r.Seek(target, io.SeekStart)

	return err
}

// Unmark drops the mark and reports whether one was set.
func (r *FixedLengthReader) Unmark() bool {
	marked := r.mark >= 0
	r.mark = -1

	return marked
}

// IsMarked reports whether a mark is set.
func (r *FixedLengthReader) IsMarked() bool { return r.mark >= 0 }

// ResetEOF is a no-op: a fixed-length boundary cannot be retracted.
func (r *FixedLengthReader) ResetEOF() {}

// Close forwards to the underlying reader when it is an io.Closer.
func (r *FixedLengthReader) Close() error { return closeReader(r.src) }
