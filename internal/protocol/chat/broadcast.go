// Package chat carries the typed chat messages of the wire protocol.
package chat

import (
	"errors"
	"fmt"

	"github.com/danmuck/castctl/internal/protocol"
)

// OpBroadcast is the command opcode for a world-channel chat broadcast.
const OpBroadcast uint32 = 0x78

var ErrUnexpectedOpcode = errors.New("chat: unexpected opcode")

// Broadcast is a chat line sent client->server. Extra is the trailing
// octet field; most senders leave it empty.
type Broadcast struct {
	Channel uint8
	Emotion uint8
	RoleID  uint32
	Text    string
	Extra   []byte
}

// EncodeBroadcast builds the complete command frame for b: channel,
// emotion, role id, text, trailing octets, framed under OpBroadcast.
func EncodeBroadcast(b Broadcast) ([]byte, error) {
	w := protocol.NewWriter()
	w.WriteUint8(b.Channel)
	w.WriteUint8(b.Emotion)
	w.WriteUint32(b.RoleID)
	if err := w.WriteText(b.Text); err != nil {
		return nil, err
	}
	w.WriteOctets(b.Extra)
	w.FrameCommand(OpBroadcast)
	return w.Bytes(), nil
}

// DecodeBroadcast parses the body of a received broadcast frame. Trailing
// bytes past the last field are tolerated.
func DecodeBroadcast(f protocol.Frame) (Broadcast, error) {
	if f.Opcode != OpBroadcast {
		return Broadcast{}, fmt.Errorf("%w: %#x", ErrUnexpectedOpcode, f.Opcode)
	}
	r := protocol.NewReader(f.Body)
	var b Broadcast
	var err error
	if b.Channel, err = r.ReadUint8(); err != nil {
		return Broadcast{}, err
	}
	if b.Emotion, err = r.ReadUint8(); err != nil {
		return Broadcast{}, err
	}
	if b.RoleID, err = r.ReadUint32(); err != nil {
		return Broadcast{}, err
	}
	if b.Text, err = r.ReadText(); err != nil {
		return Broadcast{}, err
	}
	if b.Extra, err = r.ReadOctets(); err != nil {
		return Broadcast{}, err
	}
	return b, nil
}
