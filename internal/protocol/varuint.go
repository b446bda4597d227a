package protocol

import (
	"encoding/binary"
	"io"
)

// Wire classes for the variable-length unsigned integer. The class is
// carried in the top bits of the first byte; payload bits are big-endian.
const (
	tagTwo    = 0x80
	tagTwoAlt = 0xA0
	tagFour   = 0xC0
	tagFive   = 0xE0
	classMask = 0xE0

	MaxOneByteValue  = 0x7F
	MaxTwoByteValue  = 0x3FFF
	MaxFourByteValue = 0x1FFFFFFF

	// MaxUvarint32Size is the longest wire form: the 0xE0 marker byte
	// followed by a full big-endian uint32.
	MaxUvarint32Size = 5
)

// AppendUvarint32 appends the minimal wire form of v to dst.
func AppendUvarint32(dst []byte, v uint32) []byte {
	switch {
	case v <= MaxOneByteValue:
		return append(dst, byte(v))
	case v <= MaxTwoByteValue:
		return append(dst, byte(v>>8)|tagTwo, byte(v))
	case v <= MaxFourByteValue:
		return append(dst, byte(v>>24)|tagFour, byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(dst, tagFive, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

// Uvarint32Size reports the encoded length of v in bytes.
func Uvarint32Size(v uint32) int {
	switch {
	case v <= MaxOneByteValue:
		return 1
	case v <= MaxTwoByteValue:
		return 2
	case v <= MaxFourByteValue:
		return 4
	default:
		return MaxUvarint32Size
	}
}

// Uvarint32 decodes one variable-length integer from the start of buf and
// reports how many bytes it consumed. Over-long five-byte encodings of
// small values are accepted.
func Uvarint32(buf []byte) (uint32, int, error) {
	if len(buf) == 0 {
		return 0, 0, ErrUnderflow
	}
	switch buf[0] & classMask {
	case tagFive:
		if len(buf) < 5 {
			return 0, 0, ErrUnderflow
		}
		return binary.BigEndian.Uint32(buf[1:5]), 5, nil
	case tagFour:
		if len(buf) < 4 {
			return 0, 0, ErrUnderflow
		}
		return binary.BigEndian.Uint32(buf[0:4]) & MaxFourByteValue, 4, nil
	case tagTwo, tagTwoAlt:
		// Both tag patterns carry the two-byte class; the mask strips them.
		if len(buf) < 2 {
			return 0, 0, ErrUnderflow
		}
		return uint32(binary.BigEndian.Uint16(buf[0:2])) & MaxTwoByteValue, 2, nil
	default:
		return uint32(buf[0]), 1, nil
	}
}

// ReadUvarint32 decodes one variable-length integer from r. A clean end of
// stream before the first byte surfaces as io.EOF; truncation inside a
// multi-byte form surfaces as io.ErrUnexpectedEOF.
func ReadUvarint32(r io.Reader) (uint32, error) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		return 0, err
	}
	b := first[0]

	var rest [4]byte
	switch b & classMask {
	case tagFive:
		if _, err := io.ReadFull(r, rest[:4]); err != nil {
			return 0, eofToUnexpected(err)
		}
		return binary.BigEndian.Uint32(rest[:4]), nil
	case tagFour:
		if _, err := io.ReadFull(r, rest[:3]); err != nil {
			return 0, eofToUnexpected(err)
		}
		v := uint32(b)<<24 | uint32(rest[0])<<16 | uint32(rest[1])<<8 | uint32(rest[2])
		return v & MaxFourByteValue, nil
	case tagTwo, tagTwoAlt:
		if _, err := io.ReadFull(r, rest[:1]); err != nil {
			return 0, eofToUnexpected(err)
		}
		return (uint32(b)<<8 | uint32(rest[0])) & MaxTwoByteValue, nil
	default:
		return uint32(b), nil
	}
}

func eofToUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
