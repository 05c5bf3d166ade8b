package ber

import (
	"fmt"
	"io"
	"math"
	"math/bits"
	"strconv"

	"github.com/glowproto/ember"
	"github.com/glowproto/ember/internal/vlq"
)

// LengthIndefinite when used as the length of a [Header] indicates that the
// data value is encoded using the constructed indefinite-length format,
// terminated by an end-of-contents marker.
const LengthIndefinite = -1

// Header represents the identifier and length octets of an encoded data
// value. The Length indicates the number of content octets, or
// [LengthIndefinite] if the constructed indefinite-length encoding is used.
// It is invalid to combine the indefinite length with Constructed = false.
type Header struct {
	Tag         ember.Tag
	Length      int
	Constructed bool
}

// EndOfContents is the marker terminating an indefinite-length constructed
// encoding. It is identical to the zero Header and encodes as the two bytes
// 0x00, 0x00.
var EndOfContents = Header{}

// String returns a string representation of h.
func (h Header) String() string {
	if h == (Header{}) {
		return "EndOfContents"
	}
	s := h.Tag.String()
	if h.Constructed {
		s += "/c"
	} else {
		s += "/p"
	}
	return s + ":" + strconv.Itoa(h.Length)
}

// EncodedLength returns the number of bytes the encoding of h occupies.
// [Header.Encode] writes exactly this number of bytes. A Header with
// [LengthIndefinite] has no definite-form encoding, so Encode fails for it
// and EncodedLength reports 0.
func (h Header) EncodedLength() int {
	if h.Length == LengthIndefinite {
		return 0
	}
	l := 1 // class, constructed flag, tag number
	if h.Tag.Number >= 31 {
		l += vlq.Length(h.Tag.Number)
	}
	l++ // length octet
	if h.Length >= 128 {
		l += (bits.Len(uint(h.Length)) + 7) / 8
	}
	return l
}

// Encode writes the identifier and length octets of h to w. The length is
// always written in the definite form, using the short form where possible;
// encoding a Header with [LengthIndefinite] fails with
// [ErrUnsupportedLengthForm].
func (h Header) Encode(w io.ByteWriter) error {
	if h.Length == LengthIndefinite {
		return ErrUnsupportedLengthForm
	}
	b := byte(h.Tag.Class) << 6
	if h.Constructed {
		b |= 0x20
	}
	if h.Tag.Number < 31 {
		if err := w.WriteByte(b | byte(h.Tag.Number)); err != nil {
			return err
		}
	} else {
		if err := w.WriteByte(b | 0x1f); err != nil {
			return err
		}
		if _, err := vlq.Write(w, h.Tag.Number); err != nil {
			return err
		}
	}

	if h.Length < 128 {
		return w.WriteByte(byte(h.Length))
	}
	numBytes := (bits.Len(uint(h.Length)) + 7) / 8
	if err := w.WriteByte(0x80 | byte(numBytes)); err != nil {
		return err
	}
	for ; numBytes > 0; numBytes-- {
		if err := w.WriteByte(byte(h.Length >> uint((numBytes-1)*8))); err != nil {
			return err
		}
	}
	return nil
}

// DecodeHeader reads the identifier and length octets of a data value from r
// and returns them as a [Header].
//
// If r returns io.EOF on the first read, the returned error is io.EOF as
// well, so callers can distinguish a clean end of input from a truncated
// header. If r produces a valid header, no bytes past the header are read.
func DecodeHeader(r io.ByteReader) (h Header, err error) {
	b, err := r.ReadByte()
	if err != nil {
		// io.EOF stays io.EOF
		return Header{}, err
	}
	h = Header{
		Tag:         ember.Tag{Class: ember.Class(b >> 6), Number: uint(b & 0x1f)},
		Constructed: b&0x20 == 0x20,
	}

	// Bottom five bits all set: the tag number follows in base-128 form.
	if b&0x1f == 0x1f {
		h.Tag.Number, err = vlq.ReadMinimal[uint](r)
		if err != nil {
			switch {
			case err == io.EOF || err == io.ErrUnexpectedEOF:
				return h, fmt.Errorf("%w: tag ends mid-continuation", ErrTruncated)
			default:
				return h, fmt.Errorf("%w: %v", ErrMalformedTag, err)
			}
		}
	}

	if b, err = r.ReadByte(); err != nil {
		return h, fmt.Errorf("%w: missing length octet", ErrTruncated)
	}
	switch {
	case b&0x80 == 0:
		// The length is encoded in the bottom 7 bits.
		h.Length = int(b & 0x7f)
	case b == 0x80:
		h.Length = LengthIndefinite
		if !h.Constructed {
			return h, fmt.Errorf("%w: indefinite length on a primitive value", ErrMalformedLength)
		}
	default:
		// The bottom 7 bits give the number of length octets to follow.
		for numBytes := int(b & 0x7f); numBytes > 0; numBytes-- {
			if b, err = r.ReadByte(); err != nil {
				return h, fmt.Errorf("%w: length octets end prematurely", ErrTruncated)
			}
			if h.Length > math.MaxInt>>8 {
				// Shifting up would overflow.
				return h, fmt.Errorf("%w: length too large", ErrMalformedLength)
			}
			h.Length = h.Length<<8 | int(b)
		}
	}
	return h, nil
}
