package protocol

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// Writer accumulates one outbound message body. Field writes append; a
// framing call prepends the header and finishes the message. Build, frame
// once, send, discard.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated wire bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the accumulated length in bytes.
func (w *Writer) Len() int { return len(w.buf) }

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 appends a big-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteUint32 appends a big-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// WriteFloat32 appends a big-endian IEEE-754 single.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteBytes appends raw bytes with no length prefix.
func (w *Writer) WriteBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

// WriteUvarint32 appends one variable-length integer.
func (w *Writer) WriteUvarint32(v uint32) {
	w.buf = AppendUvarint32(w.buf, v)
}

// WriteOctets appends a length-prefixed octet field: the byte count as a
// variable-length integer, then the bytes verbatim. nil and empty both
// produce the single length byte 0x00.
func (w *Writer) WriteOctets(p []byte) {
	w.WriteUvarint32(uint32(len(p)))
	w.buf = append(w.buf, p...)
}

// WriteOctetsHex decodes hex text and appends it as a length-prefixed octet
// field. Callers that already hold raw bytes use WriteOctets; there is no
// content sniffing between the two.
func (w *Writer) WriteOctetsHex(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	w.WriteOctets(raw)
	return nil
}

// WriteText appends a length-prefixed text field: the UTF-16LE byte count
// as a variable-length integer, then the encoded text.
func (w *Writer) WriteText(s string) error {
	raw, err := encodeUTF16LE(s)
	if err != nil {
		return err
	}
	w.WriteOctets(raw)
	return nil
}

// FrameCommand prepends the command frame header, opcode then body length,
// to the accumulated body. Framing is terminal: write all fields first and
// frame exactly once.
func (w *Writer) FrameCommand(opcode uint32) {
	header := make([]byte, 0, 2*MaxUvarint32Size)
	header = AppendUvarint32(header, opcode)
	header = AppendUvarint32(header, uint32(len(w.buf)))
	w.buf = append(header, w.buf...)
}

// FrameRaw prepends the raw frame header, the body length only. Terminal,
// same as FrameCommand.
func (w *Writer) FrameRaw() {
	header := AppendUvarint32(make([]byte, 0, MaxUvarint32Size), uint32(len(w.buf)))
	w.buf = append(header, w.buf...)
}
