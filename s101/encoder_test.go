package s101

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	// CRC-16/X-25 of "123456789" is 0x906E, transmitted complemented already,
	// low byte first.
	got := Encode([]byte("123456789"))
	want := append([]byte{FrameBegin}, []byte("123456789")...)
	want = append(want, 0x6E, 0x90, FrameEnd)
	assert.Equal(t, want, got)
}

func TestEncode_escaping(t *testing.T) {
	// Every byte value must survive framing; the reserved range 0xF8..0xFF
	// only through escaping.
	payload := make([]byte, 256)
	for i := range payload {
		payload[i] = byte(i)
	}
	frame := Encode(payload)

	require.Equal(t, FrameBegin, frame[0])
	require.Equal(t, FrameEnd, frame[len(frame)-1])
	for _, b := range frame[1 : len(frame)-1] {
		assert.Less(t, b, Reserved, "unescaped reserved byte 0x%02X in frame body", b)
	}

	var frames [][]byte
	dec := NewStreamDecoder(func(p []byte) {
		frames = append(frames, append([]byte(nil), p...))
	})
	dec.OnError = func(err error) { t.Errorf("unexpected decode error: %v", err) }
	dec.Write(frame)

	require.Len(t, frames, 1)
	assert.Equal(t, payload, frames[0])
}

func TestEncode_empty(t *testing.T) {
	var frames [][]byte
	dec := NewStreamDecoder(func(p []byte) {
		frames = append(frames, append([]byte(nil), p...))
	})
	dec.Write(Encode(nil))

	require.Len(t, frames, 1)
	assert.Empty(t, frames[0])
}
