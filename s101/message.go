package s101

import (
	"errors"
	"fmt"
)

// A frame payload starts with a small transport header ahead of the BER
// data: slot, message type, command, version and, for data commands, flags,
// DTD identifier and a counted run of application bytes. The checksum covers
// these header bytes together with the BER data.
const (
	// MessageEmber is the only message type of the protocol.
	MessageEmber byte = 0x0E

	// CommandEmberData frames carry a BER-encoded payload.
	CommandEmberData byte = 0x00
	// CommandKeepAliveRequest solicits a keep-alive response from the peer.
	CommandKeepAliveRequest byte = 0x01
	// CommandKeepAliveResponse answers a keep-alive request.
	CommandKeepAliveResponse byte = 0x02

	// FlagFirstPacket and FlagLastPacket delimit a payload split across
	// multiple frames; a payload carried in a single frame sets both.
	FlagFirstPacket byte = 0x80
	FlagLastPacket  byte = 0x40
	// FlagEmptyPacket marks a data frame without BER payload.
	FlagEmptyPacket byte = 0x20

	// DtdGlow identifies the Glow DTD describing the BER payload.
	DtdGlow byte = 0x01

	versionDefault   byte = 0x01
	glowVersionMinor byte = 0x1F
	glowVersionMajor byte = 0x02
)

// ErrInvalidMessage indicates a frame payload whose transport header cannot
// be parsed.
var ErrInvalidMessage = errors.New("s101: invalid message header")

// Message is the decoded transport header and BER payload of a frame.
type Message struct {
	Slot    byte
	Command byte
	Version byte
	Flags   byte // data commands only
	Dtd     byte // data commands only
	Payload []byte
}

// EncodeMessage wraps the BER-encoded data into a complete framed data
// message for the given slot, carried in a single frame.
func EncodeMessage(slot byte, data []byte) []byte {
	payload := make([]byte, 0, len(data)+9)
	payload = append(payload,
		slot, MessageEmber, CommandEmberData, versionDefault,
		FlagFirstPacket|FlagLastPacket, DtdGlow,
		2, glowVersionMinor, glowVersionMajor)
	payload = append(payload, data...)
	return Encode(payload)
}

// EncodeKeepAliveRequest returns a complete framed keep-alive request for the
// given slot.
func EncodeKeepAliveRequest(slot byte) []byte {
	return Encode([]byte{slot, MessageEmber, CommandKeepAliveRequest, versionDefault})
}

// EncodeKeepAliveResponse returns a complete framed keep-alive response for
// the given slot.
func EncodeKeepAliveResponse(slot byte) []byte {
	return Encode([]byte{slot, MessageEmber, CommandKeepAliveResponse, versionDefault})
}

// DecodeMessage parses the transport header of a de-framed payload, as
// delivered by [StreamDecoder.OnFrame]. For data messages the returned
// Payload aliases the BER data following the header.
func DecodeMessage(payload []byte) (Message, error) {
	if len(payload) < 4 {
		return Message{}, fmt.Errorf("%w: %d bytes", ErrInvalidMessage, len(payload))
	}
	m := Message{Slot: payload[0], Command: payload[2], Version: payload[3]}
	if payload[1] != MessageEmber {
		return Message{}, fmt.Errorf("%w: unknown message type 0x%02X", ErrInvalidMessage, payload[1])
	}
	switch m.Command {
	case CommandEmberData:
		if len(payload) < 7 {
			return Message{}, fmt.Errorf("%w: data message of %d bytes", ErrInvalidMessage, len(payload))
		}
		m.Flags, m.Dtd = payload[4], payload[5]
		appBytes := int(payload[6])
		if len(payload) < 7+appBytes {
			return Message{}, fmt.Errorf("%w: truncated application bytes", ErrInvalidMessage)
		}
		m.Payload = payload[7+appBytes:]
	case CommandKeepAliveRequest, CommandKeepAliveResponse:
		// no payload
	default:
		return Message{}, fmt.Errorf("%w: unknown command 0x%02X", ErrInvalidMessage, m.Command)
	}
	return m, nil
}
