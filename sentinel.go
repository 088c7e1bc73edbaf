package truncio

import (
	"errors"
	"fmt"
	"io"
)

// SentinelReader delivers bytes from an underlying reader up to, but not
// including, the first occurrence of a fixed byte pattern. The sentinel is
// consumed from the underlying reader and never delivered, so the reader
// beneath ends up positioned just past it.
//
// Detection is online: at most len(sentinel) bytes of lookahead are held in a
// ring buffer, and the underlying cursor is never advanced further than that
// lookahead requires. A source that runs out before the sentinel appears
// drains normally and then fails with ErrMissingSentinel.
type SentinelReader struct {
	src      io.Reader
	seeker   io.Seeker // nil when src cannot seek
	sentinel []byte
	failure  []int // KMP partial-match table, len(sentinel)+1 entries
	win      window
	base     int64 // underlying offset of the sub-stream start, seeker only
	consumed int64 // bytes logically delivered
	mark     int64 // marked logical offset, -1 when unmarked
	srcEOF   bool  // underlying reader reported io.EOF
	skipNext bool  // next full sentinel match is released as data, once
	err      error // source error held from a fill inside EOF or Available
}

// NewSentinelReader wraps src so that reads stop at the first occurrence of
// sentinel. The sentinel is copied; src must stay valid for the wrapper's
// lifetime and is not closed implicitly.
func NewSentinelReader(src io.Reader, sentinel []byte) (*SentinelReader, error) {
	if src == nil {
		return nil, ErrNilReader
	}
	if len(sentinel) == 0 {
		return nil, ErrEmptySentinel
	}

	r := &SentinelReader{
		src:      src,
		sentinel: append([]byte(nil), sentinel...),
		failure:  failureTable(sentinel),
		win:      newWindow(len(sentinel)),
		mark:     -1,
	}
	r.seeker, r.base = seekerOf(src)

	return r, nil
}

// Unwrap returns the underlying reader.
func (r *SentinelReader) Unwrap() io.Reader { return r.src }

// Sentinel returns a copy of the pattern that terminates the sub-stream.
func (r *SentinelReader) Sentinel() []byte {
	return append([]byte(nil), r.sentinel...)
}

// Offset reports the number of bytes logically delivered. The underlying
// cursor always sits exactly len(lookahead) bytes further:
// underlying position = base + Offset() + buffered lookahead.
func (r *SentinelReader) Offset() int64 { return r.consumed }

// fill pulls bytes from the underlying reader until the lookahead window is
// full or the reader is exhausted.
func (r *SentinelReader) fill() error {
	for !r.win.full() && !r.srcEOF {
		n, err := r.src.Read(r.win.tail())
		r.win.grow(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.srcEOF = true
				return nil
			}

			return err
		}
	}

	return nil
}

// matchLen runs the automaton over the buffered lookahead from state 0 and
// returns the length of the longest window suffix that is a sentinel prefix.
// len(sentinel) means the window spells the sentinel; since the window holds
// at most len(sentinel) bytes, a full match can only end at its last byte.
func (r *SentinelReader) matchLen() int {
	state := 0
	for i := 0; i < r.win.len(); i++ {
		c := r.win.at(i)
		for state > 0 && c != r.sentinel[state] {
			state = r.failure[state]
		}
		if c == r.sentinel[state] {
			state++
		}
	}

	return state
}

// available reports how many buffered bytes are guaranteed not to belong to a
// sentinel occurrence and may be released. Requires a prior fill.
func (r *SentinelReader) available() int {
	state := r.matchLen()
	if state == len(r.sentinel) {
		if r.skipNext {
			// A retracted match: release one byte so the window slides past
			// its start, then detection resumes.
			return 1
		}

		return 0
	}
	if r.srcEOF {
		// No more input: a partial suffix match can never complete.
		return r.win.len()
	}

	return r.win.len() - state
}

// Read delivers up to len(p) safe bytes. It returns io.EOF once the sentinel
// has been found, and ErrMissingSentinel once the underlying reader is
// exhausted without one.
func (r *SentinelReader) Read(p []byte) (int, error) {
	if r.err != nil {
		err := r.err
		r.err = nil

		return 0, err
	}
	if err := r.fill(); err != nil {
		return 0, err
	}

	state := r.matchLen()
	matched := state == len(r.sentinel)
	avail := r.win.len() - state
	switch {
	case matched && r.skipNext:
		avail = 1
	case matched:
		return 0, io.EOF
	case r.srcEOF:
		avail = r.win.len()
	}
	if avail == 0 {
		// Exhausted with an empty window: the sentinel never appeared.
		return 0, fmt.Errorf("%w after %d byte(s)", ErrMissingSentinel, r.consumed)
	}
	if len(p) == 0 {
		return 0, nil
	}

	if avail > len(p) {
		avail = len(p)
	}
	n := r.win.drop(p, avail)
	r.consumed += int64(n)
	if matched && r.skipNext && n > 0 {
		r.skipNext = false
	}

	return n, nil
}

// ReadByte reads a single byte, delegating to Read.
func (r *SentinelReader) ReadByte() (byte, error) {
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

// EOF reports whether the logical end has been reached: the lookahead spells
// the sentinel, or the source is exhausted and drained. It may pull up to
// len(sentinel) bytes from the underlying reader to fill the lookahead; a
// source error encountered there is held and returned by the next Read.
func (r *SentinelReader) EOF() bool {
	if r.err != nil {
		return true
	}
	if err := r.fill(); err != nil {
		r.err = err
		return true
	}

	return r.available() == 0
}

// Available reports how many bytes Read can deliver without advancing the
// underlying reader past the current lookahead. Like EOF, it may fill the
// lookahead first.
func (r *SentinelReader) Available() int {
	if r.err != nil {
		return 0
	}
	if err := r.fill(); err != nil {
		r.err = err
		return 0
	}

	return r.available()
}

// Peek returns the next n bytes without consuming them. It fails with
// io.ErrUnexpectedEOF when fewer than n bytes remain before the sentinel or
// the end of input.
func (r *SentinelReader) Peek(n int) ([]byte, error) {
	if r.err != nil {
		err := r.err
		r.err = nil

		return nil, err
	}
	if err := r.fill(); err != nil {
		return nil, err
	}
	if n > r.available() {
		return nil, io.ErrUnexpectedEOF
	}

	out := make([]byte, n)
	for i := range out {
		out[i] = r.win.at(i)
	}

	return out, nil
}

// Seek repositions the logical stream. Backward seeks need a seekable source
// and rebuild the lookahead from it; forward seeks read and discard, so a
// sentinel occurrence cannot be jumped over. io.SeekEnd reads to exhaustion
// first, since the logical length is not known in advance; a forward seek past
// the sentinel stops at the logical end.
func (r *SentinelReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.consumed + offset
	case io.SeekEnd:
		if err := r.discard(-1); err != nil {
			return r.consumed, err
		}
		target = r.consumed + offset
	default:
		return r.consumed, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}
	if target < 0 {
		target = 0
	}

	switch {
	case target < r.consumed:
		if err := r.rewind(target); err != nil {
			return r.consumed, err
		}
	case target > r.consumed:
		if err := r.discard(target - r.consumed); err != nil {
			return r.consumed, err
		}
	}

	return r.consumed, nil
}

// rewind repositions to an earlier logical offset and rebuilds the lookahead
// from the source. A pending ResetEOF skip is positional and does not survive
// the reposition.
func (r *SentinelReader) rewind(target int64) error {
	if r.seeker == nil {
		return ErrSeekUnsupported
	}
	if _, err := r.seeker.Seek(r.base+target, io.SeekStart); err != nil {
		return err
	}

	r.win.reset()
	r.consumed = target
	r.srcEOF = false
	r.skipNext = false
	r.err = nil

	return nil
}

// discard reads and drops n logical bytes through the wrapper, stopping at
// the logical end. n < 0 drains to exhaustion.
func (r *SentinelReader) discard(n int64) error {
	var scratch [512]byte
	for n != 0 {
		chunk := int64(len(scratch))
		if n > 0 && chunk > n {
			chunk = n
		}

		got, err := r.Read(scratch[:chunk])
		if n > 0 {
			n -= int64(got)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Mark remembers the current logical offset for Reset and returns it.
func (r *SentinelReader) Mark() (int64, error) {
	if r.seeker == nil {
		return 0, ErrSeekUnsupported
	}
	r.mark = r.consumed

	return r.mark, nil
}

// Reset rewinds to the marked offset and drops the mark. The lookahead is
// rebuilt from the source, so replayed reads are byte-for-byte identical.
func (r *SentinelReader) Reset() error {
	if r.mark < 0 {
		return ErrNotMarked
	}

	target := r.mark
	r.mark = -1

	return r.rewind(target)
}

// Unmark drops the mark and reports whether one was set.
func (r *SentinelReader) Unmark() bool {
	marked := r.mark >= 0
	r.mark = -1

	return marked
}

// IsMarked reports whether a mark is set.
func (r *SentinelReader) IsMarked() bool { return r.mark >= 0 }

// ResetEOF declares a just-reported sentinel match ordinary data: the next
// full match is released byte-by-byte exactly once, then detection resumes.
// The library never retracts a match on its own; this is the sole recovery
// path and must be invoked explicitly.
func (r *SentinelReader) ResetEOF() {
	r.skipNext = true
}

// Close forwards to the underlying reader when it is an io.Closer.
func (r *SentinelReader) Close() error { return closeReader(r.src) }
