package protocol

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// Reader walks a received message buffer front to back. Every read checks
// the remaining length first; a read that would pass the end fails with
// ErrUnderflow and leaves the cursor in place. Multi-step reads (octets,
// text, header) restore the cursor to where they started on any failure.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of buf. The Reader
// does not copy buf; the caller must not mutate it while reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos reports the current cursor offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) need(n int) error {
	if n < 0 || len(r.buf)-r.pos < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrUnderflow, n, r.pos, len(r.buf)-r.pos)
	}
	return nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadFloat32 reads a big-endian IEEE-754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadBytes reads exactly n raw bytes into a fresh slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:])
	r.pos += n
	return out, nil
}

// ReadUvarint32 reads one variable-length integer.
func (r *Reader) ReadUvarint32() (uint32, error) {
	v, n, err := Uvarint32(r.buf[r.pos:])
	if err != nil {
		return 0, fmt.Errorf("%w: truncated varuint at offset %d", ErrUnderflow, r.pos)
	}
	r.pos += n
	return v, nil
}

// ReadOctets reads a length-prefixed octet field and returns the raw bytes.
func (r *Reader) ReadOctets() ([]byte, error) {
	start := r.pos
	n, err := r.ReadUvarint32()
	if err != nil {
		return nil, err
	}
	out, err := r.ReadBytes(int(n))
	if err != nil {
		r.pos = start
		return nil, err
	}
	return out, nil
}

// ReadOctetsHex reads a length-prefixed octet field and returns its bytes
// hex-encoded for display and logging.
func (r *Reader) ReadOctetsHex() (string, error) {
	raw, err := r.ReadOctets()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// ReadText reads a length-prefixed UTF-16LE text field and returns it as a
// Go string. The prefix counts bytes, not code units.
func (r *Reader) ReadText() (string, error) {
	start := r.pos
	raw, err := r.ReadOctets()
	if err != nil {
		return "", err
	}
	s, err := decodeUTF16LE(raw)
	if err != nil {
		r.pos = start
		return "", err
	}
	return s, nil
}

// ReadHeader reads a command frame header: opcode then body length, both
// variable-length integers.
func (r *Reader) ReadHeader() (opcode, bodyLen uint32, err error) {
	start := r.pos
	if opcode, err = r.ReadUvarint32(); err != nil {
		return 0, 0, err
	}
	if bodyLen, err = r.ReadUvarint32(); err != nil {
		r.pos = start
		return 0, 0, err
	}
	return opcode, bodyLen, nil
}

// Skip moves the cursor n bytes forward, or backward for negative n. The
// cursor stays inside [0, len(buf)].
func (r *Reader) Skip(n int) error {
	next := r.pos + n
	if next < 0 || next > len(r.buf) {
		return fmt.Errorf("%w: skip %d from offset %d of %d",
			ErrUnderflow, n, r.pos, len(r.buf))
	}
	r.pos = next
	return nil
}
