/*
Package truncio provides readers that present a false end-of-stream: wrappers around an
io.Reader that report io.EOF at a logical boundary while leaving the underlying reader
positioned exactly at (or just past) that boundary. A consumer can read "until EOF" on the
wrapper and get exactly the logical sub-stream, with no byte counting or lookahead of its own.

Two truncation policies are provided:

FixedLengthReader stops after a fixed byte count. The underlying reader ends up positioned
exactly at the boundary.

SentinelReader stops at the first occurrence of a fixed byte pattern, detected online with a
Knuth-Morris-Pratt matcher over a lookahead of at most len(sentinel) bytes. The sentinel is
consumed from the underlying reader but never delivered; the underlying reader ends up
positioned just past it. ResetEOF retracts a reported match once, so a coincidental mid-payload
occurrence of the pattern can be re-read as ordinary data.

Both wrappers borrow the underlying reader: it is never closed implicitly, and Close is
forwarded only when called explicitly. Capabilities of the underlying reader are discovered by
type assertion: io.Seeker enables backward seeking and Mark/Reset; a Peek method (such as
*bufio.Reader's) enables FixedLengthReader.Peek. Without a seeker, forward seeking still works
by read-and-discard.

Reads follow the io.Reader contract: short reads are not errors. Use io.ReadFull over a wrapper
when fewer bytes than requested must fail.

Use NewFixedLengthReader(r, n) to read exactly the next n bytes of r.
Use NewSentinelReader(r, pattern) to read up to, but not including, pattern.
Use EOF to query the logical end without consuming, Available to size bulk reads.
Use Mark, Reset, Unmark for byte-for-byte replay on seekable sources.
Use ResetEOF on a SentinelReader when a reported match turned out to be payload.

# Examples

Read a fixed-size segment from the middle of a stream:

	fr, err := truncio.NewFixedLengthReader(r, 16)
	if err != nil {
		return err
	}
	segment, err := io.ReadAll(fr)
	if err != nil {
		return err
	}
	// r is now positioned exactly 16 bytes further

Read a record delimited by CRLF, leaving the source just past the delimiter:

	sr, err := truncio.NewSentinelReader(r, []byte("\r\n"))
	if err != nil {
		return err
	}
	record, err := io.ReadAll(sr)
	if err != nil {
		return err
	}
	// next read on r starts after the CRLF

Accept a sentinel occurrence as payload and continue to the next one:

	part, err := io.ReadAll(sr)
	if err != nil {
		return err
	}
	if !valid(part) {
		sr.ResetEOF()
		rest, err := io.ReadAll(sr) // includes the false sentinel bytes
		if err != nil {
			return err
		}
		part = append(part, rest...)
	}

Replay a region of a seekable source:

	if _, err := sr.Mark(); err != nil {
		return err
	}
	first, _ := io.ReadAll(sr)
	if err := sr.Reset(); err != nil {
		return err
	}
	again, _ := io.ReadAll(sr) // byte-for-byte equal to first
*/
package truncio
