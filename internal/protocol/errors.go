package protocol

import "errors"

var (
	ErrUnderflow    = errors.New("protocol: short buffer")
	ErrInvalidText  = errors.New("protocol: invalid text encoding")
	ErrInvalidHex   = errors.New("protocol: invalid hex octets")
	ErrShortHeader  = errors.New("protocol: short frame header")
	ErrBodyTooLarge = errors.New("protocol: frame body too large")
)
