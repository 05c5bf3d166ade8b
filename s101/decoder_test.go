package s101

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect returns a decoder appending every frame and error it produces to the
// returned slices.
func collect() (*StreamDecoder, *[][]byte, *[]error) {
	frames := new([][]byte)
	errs := new([]error)
	dec := NewStreamDecoder(func(p []byte) {
		*frames = append(*frames, append([]byte{}, p...))
	})
	dec.OnError = func(err error) { *errs = append(*errs, err) }
	return dec, frames, errs
}

func TestStreamDecoder_multipleFrames(t *testing.T) {
	payloads := [][]byte{
		[]byte("first"),
		{},
		{0xFE, 0xFF, 0xFD, 0xF8}, // all reserved values, escaped on the wire
		[]byte("last"),
	}
	var stream []byte
	for _, p := range payloads {
		stream = append(stream, Encode(p)...)
	}

	dec, frames, errs := collect()
	n, err := dec.Write(stream)
	require.NoError(t, err)
	require.Equal(t, len(stream), n)

	assert.Empty(t, *errs)
	assert.Equal(t, payloads, *frames)
}

func TestStreamDecoder_byteAtATime(t *testing.T) {
	var stream []byte
	stream = append(stream, Encode([]byte("one"))...)
	stream = append(stream, Encode([]byte{0xFD, 0x00, 0xFE})...)

	bulk, bulkFrames, _ := collect()
	bulk.Write(stream)

	single, singleFrames, _ := collect()
	for _, b := range stream {
		single.Feed(b)
	}

	assert.Equal(t, *bulkFrames, *singleFrames)
}

func TestStreamDecoder_corruptedFrame(t *testing.T) {
	good := []byte("123456789")
	frame := Encode(good)
	bad := append([]byte(nil), frame...)
	bad[1] ^= 0x01 // flip a payload bit, stays outside the reserved range

	stream := append(bad, frame...)
	dec, frames, errs := collect()
	dec.Write(stream)

	// The corrupted frame is dropped in isolation; the following frame
	// decodes normally.
	require.Len(t, *errs, 1)
	assert.ErrorIs(t, (*errs)[0], ErrChecksumMismatch)
	require.Len(t, *frames, 1)
	assert.Equal(t, good, (*frames)[0])
}

func TestStreamDecoder_resync(t *testing.T) {
	frame := Encode([]byte("payload"))

	t.Run("GarbagePrefix", func(t *testing.T) {
		// Noise before the begin marker belongs to no frame and is discarded
		// silently when the begin marker arrives.
		stream := append([]byte{0x01, 0x02, 0x03}, frame...)
		dec, frames, errs := collect()
		dec.Write(stream)
		assert.Empty(t, *errs)
		require.Len(t, *frames, 1)
		assert.Equal(t, []byte("payload"), (*frames)[0])
	})

	t.Run("RestartedFrame", func(t *testing.T) {
		// A begin marker mid-frame abandons the partial frame.
		stream := append([]byte{FrameBegin, 'x', 'y'}, frame...)
		dec, frames, errs := collect()
		dec.Write(stream)
		assert.Empty(t, *errs)
		require.Len(t, *frames, 1)
	})

	t.Run("StrayEnd", func(t *testing.T) {
		// An end marker without frame data is ignored, not a checksum error.
		stream := append([]byte{FrameEnd, FrameEnd}, frame...)
		dec, frames, errs := collect()
		dec.Write(stream)
		assert.Empty(t, *errs)
		require.Len(t, *frames, 1)
	})

	t.Run("TruncatedFrame", func(t *testing.T) {
		// A frame cut short by the next begin marker is abandoned silently.
		stream := append(append([]byte(nil), frame[:len(frame)-3]...), frame...)
		dec, frames, errs := collect()
		dec.Write(stream)
		assert.Empty(t, *errs)
		require.Len(t, *frames, 1)
	})
}

func TestStreamDecoder_maxFrameSize(t *testing.T) {
	big := Encode(make([]byte, 100))
	small := Encode([]byte("ok"))

	dec, frames, errs := collect()
	dec.MaxFrameSize = 16
	dec.Write(big)
	dec.Write(small)

	require.Len(t, *errs, 1)
	assert.ErrorIs(t, (*errs)[0], ErrFrameTooLarge)
	require.Len(t, *frames, 1)
	assert.Equal(t, []byte("ok"), (*frames)[0])
}

func TestStreamDecoder_reset(t *testing.T) {
	dec, frames, errs := collect()
	frame := Encode([]byte("data"))

	// Reset mid-frame discards the partial state; the re-fed complete frame
	// still decodes.
	dec.Write(frame[:4])
	dec.Reset()
	dec.Write(frame)

	assert.Empty(t, *errs)
	require.Len(t, *frames, 1)
	assert.Equal(t, []byte("data"), (*frames)[0])
}

func TestStreamDecoder_nilCallbacks(t *testing.T) {
	// A decoder without callbacks must not panic on valid or corrupt input.
	dec := &StreamDecoder{}
	frame := Encode([]byte("data"))
	dec.Write(frame)
	bad := append([]byte(nil), frame...)
	bad[1] ^= 0x01
	dec.Write(bad)
}
