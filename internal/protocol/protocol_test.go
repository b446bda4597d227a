package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterReaderSequenceRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(3)
	w.WriteUint16(0x0102)
	w.WriteUint32(0xDEADBEEF)
	w.WriteFloat32(1.5)
	w.WriteUvarint32(0x4000)
	w.WriteOctets([]byte{0xAA, 0xBB})
	if err := w.WriteText("hello"); err != nil {
		t.Fatalf("write text: %v", err)
	}

	r := NewReader(w.Bytes())
	if v, err := r.ReadUint8(); err != nil || v != 3 {
		t.Fatalf("uint8: (%d, %v)", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x0102 {
		t.Fatalf("uint16: (%#x, %v)", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("uint32: (%#x, %v)", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 1.5 {
		t.Fatalf("float32: (%v, %v)", v, err)
	}
	if v, err := r.ReadUvarint32(); err != nil || v != 0x4000 {
		t.Fatalf("varuint: (%#x, %v)", v, err)
	}
	octets, err := r.ReadOctets()
	if err != nil || !bytes.Equal(octets, []byte{0xAA, 0xBB}) {
		t.Fatalf("octets: (% x, %v)", octets, err)
	}
	text, err := r.ReadText()
	if err != nil || text != "hello" {
		t.Fatalf("text: (%q, %v)", text, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected empty reader, %d bytes left", r.Remaining())
	}
}

func TestWriteUint32WireOrder(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(0x01020304)
	if !bytes.Equal(w.Bytes(), []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatalf("wire bytes % x, want 01 02 03 04", w.Bytes())
	}
	v, err := NewReader(w.Bytes()).ReadUint32()
	if err != nil || v != 0x01020304 {
		t.Fatalf("read back (%#x, %v)", v, err)
	}
}

func TestWriteFloat32WireOrder(t *testing.T) {
	w := NewWriter()
	w.WriteFloat32(1.5)
	if !bytes.Equal(w.Bytes(), []byte{0x3F, 0xC0, 0x00, 0x00}) {
		t.Fatalf("wire bytes % x, want 3f c0 00 00", w.Bytes())
	}
	v, err := NewReader(w.Bytes()).ReadFloat32()
	if err != nil || v != 1.5 {
		t.Fatalf("read back (%v, %v)", v, err)
	}
}

func TestWriteTextUTF16ByteLength(t *testing.T) {
	w := NewWriter()
	if err := w.WriteText("héllo"); err != nil {
		t.Fatalf("write text: %v", err)
	}
	buf := w.Bytes()
	if len(buf) != 11 || buf[0] != 10 {
		t.Fatalf("wire bytes % x, want 10-byte body behind a 0x0a prefix", buf)
	}
	want := []byte{0x0A, 0x68, 0x00, 0xE9, 0x00, 0x6C, 0x00, 0x6C, 0x00, 0x6F, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("wire bytes % x, want % x", buf, want)
	}
	text, err := NewReader(buf).ReadText()
	if err != nil || text != "héllo" {
		t.Fatalf("read back (%q, %v)", text, err)
	}
}

func TestWriteTextNonBMPRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.WriteText("h\U0001F642"); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if w.Bytes()[0] != 6 {
		t.Fatalf("prefix %d, want 6 (one unit plus a surrogate pair)", w.Bytes()[0])
	}
	text, err := NewReader(w.Bytes()).ReadText()
	if err != nil || text != "h\U0001F642" {
		t.Fatalf("read back (%q, %v)", text, err)
	}
}

func TestReadTextOddByteCount(t *testing.T) {
	r := NewReader([]byte{0x03, 0x61, 0x00, 0x62})
	if _, err := r.ReadText(); !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestFrameCommandEmptyBody(t *testing.T) {
	w := NewWriter()
	w.FrameCommand(0x78)
	if !bytes.Equal(w.Bytes(), []byte{0x78, 0x00}) {
		t.Fatalf("wire bytes % x, want 78 00", w.Bytes())
	}
	opcode, bodyLen, err := NewReader(w.Bytes()).ReadHeader()
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if opcode != 0x78 || bodyLen != 0 {
		t.Fatalf("header (%#x, %d), want (0x78, 0)", opcode, bodyLen)
	}
}

func TestFrameCommandPrependsHeader(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(0xAB)
	w.WriteUint8(0xCD)
	w.FrameCommand(0x180)
	want := []byte{0x81, 0x80, 0x02, 0xAB, 0xCD}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("wire bytes % x, want % x", w.Bytes(), want)
	}
}

func TestFrameRawPrependsLength(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte("abc"))
	w.FrameRaw()
	want := []byte{0x03, 'a', 'b', 'c'}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("wire bytes % x, want % x", w.Bytes(), want)
	}
}

func TestOctetsEmptyRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteOctets(nil)
	if !bytes.Equal(w.Bytes(), []byte{0x00}) {
		t.Fatalf("wire bytes % x, want 00", w.Bytes())
	}
	r := NewReader(w.Bytes())
	octets, err := r.ReadOctets()
	if err != nil || len(octets) != 0 {
		t.Fatalf("read back (% x, %v)", octets, err)
	}
}

func TestOctetsHexExplicitOps(t *testing.T) {
	w := NewWriter()
	if err := w.WriteOctetsHex("deadbeef"); err != nil {
		t.Fatalf("write hex octets: %v", err)
	}
	want := []byte{0x04, 0xDE, 0xAD, 0xBE, 0xEF}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("wire bytes % x, want % x", w.Bytes(), want)
	}
	hexed, err := NewReader(w.Bytes()).ReadOctetsHex()
	if err != nil || hexed != "deadbeef" {
		t.Fatalf("read back (%q, %v)", hexed, err)
	}

	if err := w.WriteOctetsHex(""); err != nil {
		t.Fatalf("empty hex is valid: %v", err)
	}
	if err := w.WriteOctetsHex("zz"); !errors.Is(err, ErrInvalidHex) {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}

func TestReadUnderflowLeavesCursor(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadUint32(); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("cursor moved to %d after failed read", r.Pos())
	}
	v, err := r.ReadUint16()
	if err != nil || v != 0x0102 {
		t.Fatalf("follow-up read (%#x, %v)", v, err)
	}
}

func TestFieldReadFailureLeavesCursor(t *testing.T) {
	r := NewReader([]byte{0x05, 0x01})
	if _, err := r.ReadOctets(); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("cursor moved to %d after failed octet read", r.Pos())
	}

	r = NewReader([]byte{0x0A, 0x48, 0x00})
	if _, err := r.ReadText(); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("cursor moved to %d after failed text read", r.Pos())
	}

	// Byte count in range but odd, so the UTF-16 decode is what fails.
	r = NewReader([]byte{0x03, 0x48, 0x00, 0x65})
	if _, err := r.ReadText(); !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("cursor moved to %d after undecodable text", r.Pos())
	}

	r = NewReader([]byte{0x78})
	if _, _, err := r.ReadHeader(); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("cursor moved to %d after truncated header", r.Pos())
	}
}

func TestReadBytesUnderflow(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadBytes(2); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
	if _, err := r.ReadBytes(-1); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow for negative count, got %v", err)
	}
}

func TestSkipBothDirections(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if err := r.Skip(3); err != nil || r.Pos() != 3 {
		t.Fatalf("skip forward: pos=%d err=%v", r.Pos(), err)
	}
	if err := r.Skip(-2); err != nil || r.Pos() != 1 {
		t.Fatalf("skip back: pos=%d err=%v", r.Pos(), err)
	}
	if err := r.Skip(10); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow past end, got %v", err)
	}
	if err := r.Skip(-5); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow before start, got %v", err)
	}
	if r.Pos() != 1 {
		t.Fatalf("cursor moved to %d after failed skips", r.Pos())
	}
}
