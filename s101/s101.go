// Package s101 implements the framing layer that carries BER-encoded
// payloads over an unreliable byte stream. A frame is a run of bytes between
// a begin marker and an end marker, protected by a trailing 16-bit CRC and
// with all reserved byte values escaped inside the payload.
//
// [StreamDecoder] strips escapes, validates the checksum and hands completed
// payloads to a callback, one instance per logical byte stream. [Encode] is
// the stateless inverse, producing a framed byte sequence for a payload.
// Corrupted frames are dropped in isolation: a begin marker is always a
// resynchronization point, so at most one frame's worth of data is lost.
package s101

import "errors"

// The reserved byte values of the framing layer. None of them may appear
// unescaped inside a frame.
const (
	// FrameBegin starts a frame. Encountering it mid-frame abandons the
	// partial frame and starts over.
	FrameBegin byte = 0xFE
	// FrameEnd terminates a frame and triggers checksum validation.
	FrameEnd byte = 0xFF
	// Escape precedes a payload byte that collides with a reserved value; the
	// byte is stored XORed with EscapeXOR.
	Escape byte = 0xFD
	// EscapeXOR is the mask applied to a byte following an Escape marker.
	EscapeXOR byte = 0x20
	// Reserved is the smallest reserved byte value: every payload byte >=
	// Reserved must be escaped on encode.
	Reserved byte = 0xF8
)

var (
	// ErrChecksumMismatch indicates a completed frame whose CRC did not
	// validate. The frame is dropped; decoding continues with the next frame.
	ErrChecksumMismatch = errors.New("s101: frame checksum mismatch")
	// ErrFrameTooLarge indicates a frame exceeding the configured
	// [StreamDecoder.MaxFrameSize]. The frame is dropped.
	ErrFrameTooLarge = errors.New("s101: frame exceeds maximum size")
)
