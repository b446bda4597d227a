package protocol

import (
	"errors"
	"fmt"
	"io"
)

// Frame is one complete command frame read off a stream.
type Frame struct {
	Opcode uint32
	Body   []byte
}

// Limits constrains frame decode memory use.
type Limits struct {
	MaxBodyBytes uint32
}

func DefaultLimits() Limits {
	return Limits{MaxBodyBytes: 128 * 1024}
}

// ReadFrame reads exactly one command frame from r. A clean end of stream
// before the first header byte returns io.EOF; a stream that ends inside
// the header returns ErrShortHeader; a stream that ends inside the body
// returns an error wrapping io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	opcode, err := ReadUvarint32(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	bodyLen, err := ReadUvarint32(r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}
	if bodyLen > limits.MaxBodyBytes {
		return Frame{}, fmt.Errorf("%w: %d bytes declared, limit %d",
			ErrBodyTooLarge, bodyLen, limits.MaxBodyBytes)
	}

	body := make([]byte, bodyLen)
	if bodyLen > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return Frame{}, fmt.Errorf("protocol: short frame body: %w", eofToUnexpected(err))
		}
	}

	return Frame{Opcode: opcode, Body: body}, nil
}

// AppendFrame appends the wire form of f to dst: opcode, body length, body.
func AppendFrame(dst []byte, f Frame) []byte {
	dst = AppendUvarint32(dst, f.Opcode)
	dst = AppendUvarint32(dst, uint32(len(f.Body)))
	return append(dst, f.Body...)
}

// WriteFrame writes the wire form of f to w in one Write call.
func WriteFrame(w io.Writer, f Frame) error {
	buf := make([]byte, 0, 2*MaxUvarint32Size+len(f.Body))
	if _, err := w.Write(AppendFrame(buf, f)); err != nil {
		return err
	}
	return nil
}
