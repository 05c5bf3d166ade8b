// Package vlq implements the base-128 variable-length integer encoding used by
// BER identifier octets and by relative object identifier components. Each
// byte carries seven payload bits with the eighth bit marking continuation;
// groups are ordered most-significant first.
package vlq

import (
	"errors"
	"io"
	"math/bits"
)

var (
	// ErrNotMinimal indicates an encoding with redundant leading zero groups.
	ErrNotMinimal = errors.New("vlq: not minimally encoded")
	// ErrOverflow indicates an encoded value that does not fit the target type.
	ErrOverflow = errors.New("vlq: value too large for target type")
)

// Read parses an unsigned base-128 integer from r. The maximum allowed value
// is limited by the size of T; anything larger yields [ErrOverflow] rather
// than wrapping around.
//
// Read only consumes bytes belonging to the encoded value. If r returns
// io.EOF on the first read, the returned error is io.EOF as well; an EOF
// after a continuation byte is reported as io.ErrUnexpectedEOF.
//
// Read accepts an arbitrary number of leading zero groups (0x80 bytes). Use
// [ReadMinimal] to reject those.
func Read[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](r io.ByteReader) (T, error) {
	return read[T](r, false)
}

// ReadMinimal works like [Read] but returns [ErrNotMinimal] if the encoding
// starts with a redundant 0x80 byte.
func ReadMinimal[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](r io.ByteReader) (T, error) {
	return read[T](r, true)
}

func read[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](r io.ByteReader, minimal bool) (n T, err error) {
	b, err := r.ReadByte()
	if err != nil {
		// io.EOF stays io.EOF
		return 0, err
	}
	if b == 0x80 && minimal {
		return 0, ErrNotMinimal
	}

	size := bits.Len64(uint64(^T(0))) // bit width of T
	n = T(b & 0x7f)
	numBits := bits.Len8(b & 0x7f)

	for b&0x80 != 0 {
		if b, err = r.ReadByte(); err != nil {
			break
		}
		n = n<<7 | T(b&0x7f)

		if numBits == 0 {
			numBits = bits.Len8(b & 0x7f)
		} else {
			numBits += 7
		}
		if numBits > size {
			return 0, ErrOverflow
		}
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// Length returns the number of bytes needed to encode n.
func Length[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](n T) int {
	l := 1
	for n >>= 7; n > 0; n >>= 7 {
		l++
	}
	return l
}

// Write encodes n into w using the minimal number of bytes. Any error returned
// by w is returned by this function together with the number of bytes written.
func Write[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](w io.ByteWriter, n T) (written int, err error) {
	l := Length(n)

	j := l - 1
	for ; j >= 0 && err == nil; j-- {
		b := byte(n>>(j*7)) & 0x7f
		if j > 0 {
			b |= 0x80
		}
		err = w.WriteByte(b)
	}

	return l - 1 - j, err
}
