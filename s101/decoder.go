package s101

// StreamDecoder reassembles frames from a raw byte stream. It holds the
// framing state of exactly one logical stream: the accumulated payload, the
// escape flag and the running checksum. Concurrent streams need one
// StreamDecoder each.
//
// The decoder is purely reactive: it never blocks, performs no I/O and
// allocates only by growing its payload buffer. Feeding bytes one at a time
// and feeding them in bulk produce the identical sequence of completed
// frames.
type StreamDecoder struct {
	// OnFrame is invoked with the payload of every frame whose checksum
	// validates, with the two trailing checksum bytes already removed. The
	// slice is reused by the decoder and only valid for the duration of the
	// call.
	OnFrame func(payload []byte)

	// OnError, if non-nil, is invoked whenever a frame is dropped, with
	// [ErrChecksumMismatch] or [ErrFrameTooLarge]. Dropping a frame never
	// stops the decoder; the next frame decodes independently.
	OnError func(err error)

	// MaxFrameSize, if positive, caps the accumulated payload size. An
	// oversized frame is dropped and the decoder discards input until the
	// next begin marker. Zero means unbounded, leaving the cap to the caller.
	MaxFrameSize int

	buf     []byte
	escaped bool
	crc     uint16
	drop    bool // discarding an oversized frame until the next begin marker
}

// NewStreamDecoder returns a decoder delivering completed frames to onFrame.
func NewStreamDecoder(onFrame func(payload []byte)) *StreamDecoder {
	d := &StreamDecoder{OnFrame: onFrame}
	d.Reset()
	return d
}

// Reset discards any partially accumulated frame and returns the decoder to
// its initial state. The payload buffer is retained.
func (d *StreamDecoder) Reset() {
	d.buf = d.buf[:0]
	d.escaped = false
	d.crc = crcInitial
	d.drop = false
}

// Feed processes a single input byte, invoking the callbacks for any frame it
// completes. Feed is the composition primitive; [StreamDecoder.Write] is
// defined as repeated Feed.
func (d *StreamDecoder) Feed(b byte) {
	if d.escaped {
		d.escaped = false
		d.accumulate(b ^ EscapeXOR)
		return
	}
	switch b {
	case Escape:
		d.escaped = true
	case FrameBegin:
		// Resynchronization point: whatever was accumulated belongs to an
		// abandoned frame.
		d.Reset()
	case FrameEnd:
		switch {
		case d.drop || len(d.buf) < 2:
			// stray end marker or the tail of an oversized frame
		case d.crc == crcResidue:
			if d.OnFrame != nil {
				d.OnFrame(d.buf[:len(d.buf)-2])
			}
		default:
			d.fail(ErrChecksumMismatch)
		}
		d.Reset()
	default:
		d.accumulate(b)
	}
}

// Write implements [io.Writer] by feeding every byte of p in order. It never
// returns an error.
func (d *StreamDecoder) Write(p []byte) (int, error) {
	for _, b := range p {
		d.Feed(b)
	}
	return len(p), nil
}

func (d *StreamDecoder) accumulate(b byte) {
	if d.drop {
		return
	}
	if d.MaxFrameSize > 0 && len(d.buf) >= d.MaxFrameSize {
		d.drop = true
		d.buf = d.buf[:0]
		d.fail(ErrFrameTooLarge)
		return
	}
	d.buf = append(d.buf, b)
	d.crc = crcAdd(d.crc, b)
}

func (d *StreamDecoder) fail(err error) {
	if d.OnError != nil {
		d.OnError(err)
	}
}
