package truncio

import "io"

const maxInt = int(^uint(0) >> 1)

// peeker is the optional lookahead capability of an underlying reader
// (*bufio.Reader has it).
type peeker interface {
	Peek(n int) ([]byte, error)
}

// A TruncatedReader presents a logical sub-stream of an underlying io.Reader:
// reads report io.EOF at a policy boundary while the underlying reader is left
// positioned at (FixedLengthReader) or just past (SentinelReader) that boundary.
//
// Seek, Mark and Reset need the underlying reader to be an io.Seeker and fail
// with ErrSeekUnsupported otherwise; forward seeking works on any reader.
type TruncatedReader interface {
	io.Reader
	io.ByteReader
	io.Seeker
	io.Closer

	// Unwrap returns the underlying reader. The wrapper borrows it: Close is
	// forwarded only when called explicitly, never implicitly.
	Unwrap() io.Reader

	// EOF reports whether the logical end of the sub-stream has been reached.
	EOF() bool

	// Available reports how many bytes Read can deliver without advancing the
	// underlying reader past what is already buffered or accounted for.
	Available() int

	// Offset reports the number of bytes logically delivered so far.
	Offset() int64

	// Peek returns the next n bytes without consuming them.
	Peek(n int) ([]byte, error)

	// Mark remembers the current offset for a later Reset and returns it.
	Mark() (int64, error)

	// Reset rewinds to the marked offset and drops the mark; replayed reads
	// are byte-for-byte identical.
	Reset() error

	// Unmark drops the mark and reports whether one was set.
	Unmark() bool

	// IsMarked reports whether a mark is set.
	IsMarked() bool

	// ResetEOF retracts a reported logical EOF where the policy supports it.
	ResetEOF()
}

// Compile-time conformance of both policies.
var (
	_ TruncatedReader = (*FixedLengthReader)(nil)
	_ TruncatedReader = (*SentinelReader)(nil)
)

// closeReader forwards Close when the underlying reader supports it.
func closeReader(r io.Reader) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// seekerOf returns the reader's seek capability and current cursor.
// A reader whose Seek fails is treated as non-seekable.
func seekerOf(r io.Reader) (io.Seeker, int64) {
	s, ok := r.(io.Seeker)
	if !ok {
		return nil, 0
	}

	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0
	}

	return s, pos
}
