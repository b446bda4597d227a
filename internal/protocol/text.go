package protocol

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Text fields travel as UTF-16 little-endian without a byte order mark.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func encodeUTF16LE(s string) ([]byte, error) {
	out, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	return out, nil
}

func decodeUTF16LE(p []byte) (string, error) {
	if len(p)%2 != 0 {
		return "", fmt.Errorf("%w: odd byte count %d", ErrInvalidText, len(p))
	}
	out, err := utf16le.NewDecoder().Bytes(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	return string(out), nil
}
