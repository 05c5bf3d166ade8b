package s101

// Encode frames payload for transmission: a begin marker, the payload with
// every reserved byte escaped, the two checksum bytes (computed over the
// unescaped payload, low byte first, escaped themselves if necessary) and an
// end marker. Encoding is stateless and is the exact inverse of one decode
// cycle: feeding the result to a [StreamDecoder] yields payload again.
func Encode(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+6)
	out = append(out, FrameBegin)
	crc := crcInitial
	for _, b := range payload {
		crc = crcAdd(crc, b)
		out = appendEscaped(out, b)
	}
	crc = ^crc
	out = appendEscaped(out, byte(crc))
	out = appendEscaped(out, byte(crc>>8))
	return append(out, FrameEnd)
}

// appendEscaped appends b to out, escaping it if it collides with a reserved
// byte value.
func appendEscaped(out []byte, b byte) []byte {
	if b >= Reserved {
		return append(out, Escape, b^EscapeXOR)
	}
	return append(out, b)
}
