package ber

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/glowproto/ember"
	"github.com/glowproto/ember/bytebuf"
	"github.com/glowproto/ember/internal/vlq"
)

// Writer is the byte sink scalar encoders write into. It is implemented by
// [*bytebuf.Buffer] and [*bufio.Writer] among others.
type Writer interface {
	io.Writer
	io.ByteWriter
}

// KindTag returns the universal tag identifying scalar kind k on the wire.
func KindTag(k ember.Kind) ember.Tag {
	switch k {
	case ember.KindNull:
		return ember.Universal(ember.TagNull)
	case ember.KindBoolean:
		return ember.Universal(ember.TagBoolean)
	case ember.KindInteger:
		return ember.Universal(ember.TagInteger)
	case ember.KindReal:
		return ember.Universal(ember.TagReal)
	case ember.KindUTF8String:
		return ember.Universal(ember.TagUTF8String)
	case ember.KindOctetString:
		return ember.Universal(ember.TagOctetString)
	case ember.KindRelativeOID:
		return ember.Universal(ember.TagRelativeOID)
	}
	panic("ber: invalid kind " + k.String())
}

// KindForTag returns the scalar kind encoded by the universal tag t. The
// second return value reports whether t identifies a known scalar kind.
func KindForTag(t ember.Tag) (ember.Kind, bool) {
	if t.Class != ember.ClassUniversal {
		return 0, false
	}
	switch t.Number {
	case ember.TagNull:
		return ember.KindNull, true
	case ember.TagBoolean:
		return ember.KindBoolean, true
	case ember.TagInteger:
		return ember.KindInteger, true
	case ember.TagReal:
		return ember.KindReal, true
	case ember.TagUTF8String:
		return ember.KindUTF8String, true
	case ember.TagOctetString:
		return ember.KindOctetString, true
	case ember.TagRelativeOID:
		return ember.KindRelativeOID, true
	}
	return 0, false
}

// ValueLength returns the number of content octets of the minimal encoding
// of v. [EncodeValue] writes exactly this number of bytes.
func ValueLength(v ember.Value) int {
	switch v.Kind() {
	case ember.KindNull:
		return 0
	case ember.KindBoolean:
		return 1
	case ember.KindInteger:
		return intLength(v.Int())
	case ember.KindReal:
		return realLength(v.Float())
	case ember.KindUTF8String:
		return len(v.Text())
	case ember.KindOctetString:
		return len(v.Octets())
	case ember.KindRelativeOID:
		l := 0
		for _, c := range v.OID() {
			l += vlq.Length(c)
		}
		return l
	}
	panic("ber: invalid kind " + v.Kind().String())
}

// EncodeValue writes the content octets of v to w, always in the minimal
// form: integers carry no redundant sign-extension octets, true is the
// canonical 0xFF and the empty string has no content octets at all.
func EncodeValue(w Writer, v ember.Value) error {
	switch v.Kind() {
	case ember.KindNull:
		return nil
	case ember.KindBoolean:
		if v.Bool() {
			return w.WriteByte(0xFF)
		}
		return w.WriteByte(0x00)
	case ember.KindInteger:
		return encodeInt(w, v.Int())
	case ember.KindReal:
		return encodeReal(w, v.Float())
	case ember.KindUTF8String:
		_, err := io.WriteString(w, v.Text())
		return err
	case ember.KindOctetString:
		_, err := w.Write(v.Octets())
		return err
	case ember.KindRelativeOID:
		for _, c := range v.OID() {
			if _, err := vlq.Write(w, c); err != nil {
				return err
			}
		}
		return nil
	}
	panic("ber: invalid kind " + v.Kind().String())
}

// DecodeValue parses the content octets of a scalar of kind k. Byte and
// object-identifier contents are copied, never aliased, so the returned Value
// stays valid after the input buffer is reused.
func DecodeValue(k ember.Kind, contents []byte) (ember.Value, error) {
	switch k {
	case ember.KindNull:
		if len(contents) != 0 {
			return ember.Value{}, fmt.Errorf("%w: null with content octets", ErrMalformedValue)
		}
		return ember.Null(), nil
	case ember.KindBoolean:
		if len(contents) != 1 {
			return ember.Value{}, fmt.Errorf("%w: boolean of length %d", ErrMalformedValue, len(contents))
		}
		return ember.Bool(contents[0] != 0), nil
	case ember.KindInteger:
		i, err := decodeInt(contents)
		if err != nil {
			return ember.Value{}, err
		}
		return ember.Int(i), nil
	case ember.KindReal:
		f, err := decodeReal(contents)
		if err != nil {
			return ember.Value{}, err
		}
		return ember.Float(f), nil
	case ember.KindUTF8String:
		return ember.Text(string(contents)), nil
	case ember.KindOctetString:
		return ember.Octets(bytes.Clone(contents)), nil
	case ember.KindRelativeOID:
		oid, err := decodeOID(contents)
		if err != nil {
			return ember.Value{}, err
		}
		return ember.OID(oid), nil
	}
	return ember.Value{}, fmt.Errorf("%w: unknown kind %v", ErrMalformedValue, k)
}

// Encode returns the complete tag-length-value encoding of the scalar v under
// its universal tag.
func Encode(v ember.Value) []byte {
	l := ValueLength(v)
	h := Header{Tag: KindTag(v.Kind()), Length: l}
	buf := bytebuf.New(h.EncodedLength() + l)
	// writes into a growable buffer cannot fail
	_ = h.Encode(buf)
	_ = EncodeValue(buf, v)
	return buf.Bytes()
}

// Decode parses data as exactly one complete tag-length-value encoding of a
// universal scalar and returns its Value. Decode is the inverse of [Encode].
func Decode(data []byte) (ember.Value, error) {
	r := bytebuf.FromBytes(data)
	h, err := DecodeHeader(r)
	if err == io.EOF {
		return ember.Value{}, fmt.Errorf("%w: empty input", ErrTruncated)
	} else if err != nil {
		return ember.Value{}, err
	}
	if h.Constructed {
		return ember.Value{}, fmt.Errorf("%w: constructed encoding of a scalar", ErrMalformedValue)
	}
	k, ok := KindForTag(h.Tag)
	if !ok {
		return ember.Value{}, fmt.Errorf("%w: %v does not tag a scalar kind", ErrMalformedValue, h.Tag)
	}
	contents, err := r.Next(h.Length)
	if err != nil {
		return ember.Value{}, fmt.Errorf("%w: need %d content octets, have %d", ErrTruncated, h.Length, r.Len())
	}
	if r.Len() != 0 {
		return ember.Value{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformedValue, r.Len())
	}
	return DecodeValue(k, contents)
}

// intLength returns the number of octets of the minimal two's-complement
// encoding of i. Zero still occupies a single octet.
func intLength(i int64) int {
	l := 1
	for ; i > 127 || i < -128; i >>= 8 {
		l++
	}
	return l
}

// encodeInt writes the minimal big-endian two's-complement encoding of i.
func encodeInt(w io.ByteWriter, i int64) error {
	for j := intLength(i) - 1; j >= 0; j-- {
		if err := w.WriteByte(byte(i >> uint(8*j))); err != nil {
			return err
		}
	}
	return nil
}

// decodeInt parses a big-endian two's-complement integer, sign-extending from
// the top bit of the leading octet. Encodings with redundant leading octets
// are rejected.
func decodeInt(contents []byte) (int64, error) {
	if len(contents) == 0 {
		return 0, fmt.Errorf("%w: empty integer", ErrMalformedValue)
	}
	if len(contents) > 8 {
		return 0, fmt.Errorf("%w: integer of %d octets", ErrMalformedValue, len(contents))
	}
	if len(contents) >= 2 {
		prefix := uint16(contents[0])<<8 | uint16(contents[1])
		if prefix&0xFF80 == 0 || prefix&0xFF80 == 0xFF80 {
			return 0, fmt.Errorf("%w: integer not minimally encoded", ErrMalformedValue)
		}
	}
	var u uint64
	for _, b := range contents {
		u = u<<8 | uint64(b)
	}
	// Shift up and down to sign extend.
	sh := uint(64 - 8*len(contents))
	return int64(u<<sh) >> sh, nil
}

// realParts decomposes a finite, nonzero float into its sign, odd mantissa
// and base-2 exponent, along with the octet counts of exponent and mantissa.
func realParts(f float64) (s byte, m uint64, e int, el, ml int) {
	bts := math.Float64bits(f)
	s = byte(bts >> 63)
	m = bts & ^uint64(0xFFF<<52)
	if exp := int(bts >> 52 & 0x7FF); exp == 0 {
		// Subnormal: no implicit leading bit, exponent pinned to the bottom
		// of the double range.
		e = -1074
	} else {
		m |= 1 << 52
		e = exp - 1023 - 52
	}
	shift := bits.TrailingZeros64(m)
	m >>= shift
	e += shift
	// An IEEE double exponent fits into at most 2 octets, so the short
	// exponent-length forms always suffice.
	el = (bits.Len(uint(max(e, -e-1))) + 1 + 7) / 8
	ml = (bits.Len64(m) + 7) / 8
	return s, m, e, el, ml
}

// realLength returns the number of content octets of the encoding of f.
func realLength(f float64) int {
	switch {
	case f == 0 && !math.Signbit(f):
		// positive zero has no content octets
		return 0
	case f == 0, math.IsInf(f, 0), math.IsNaN(f):
		return 1
	}
	_, _, _, el, ml := realParts(f)
	return 1 + el + ml
}

// encodeReal writes the binary (base-2) encoding of f per Section 8.5 of
// Rec. ITU-T X.690, including the one-octet special forms for signed zero,
// infinities and NaN.
func encodeReal(w io.ByteWriter, f float64) error {
	switch {
	case f == 0 && !math.Signbit(f):
		return nil
	case f == 0:
		return w.WriteByte(0b01000011) // minus zero
	case math.IsInf(f, 1):
		return w.WriteByte(0b01000000)
	case math.IsInf(f, -1):
		return w.WriteByte(0b01000001)
	case math.IsNaN(f):
		return w.WriteByte(0b01000010)
	}

	s, m, e, el, ml := realParts(f)
	// 1s0000bb: binary encoding, sign s, bb = exponent octets - 1
	if err := w.WriteByte(0b10000000 | s<<6 | byte(el-1)); err != nil {
		return err
	}
	for ; el > 0; el-- {
		if err := w.WriteByte(byte(e >> uint(8*(el-1)))); err != nil {
			return err
		}
	}
	for ; ml > 0; ml-- {
		if err := w.WriteByte(byte(m >> uint(8*(ml-1)))); err != nil {
			return err
		}
	}
	return nil
}

// decodeReal parses the content octets of a REAL value into a float64. Only
// the binary encoding and the special forms are supported; the decimal
// (ISO 6093) forms do not occur in this protocol.
func decodeReal(contents []byte) (float64, error) {
	if len(contents) == 0 {
		return 0, nil
	}
	b := contents[0]
	if b&0xC0 == 0x40 {
		if len(contents) != 1 {
			return 0, fmt.Errorf("%w: special real of length %d", ErrMalformedValue, len(contents))
		}
		switch b {
		case 0b01000000:
			return math.Inf(1), nil
		case 0b01000001:
			return math.Inf(-1), nil
		case 0b01000010:
			return math.NaN(), nil
		case 0b01000011:
			return math.Copysign(0, -1), nil
		}
		return 0, fmt.Errorf("%w: invalid special real 0x%02X", ErrMalformedValue, b)
	}
	if b&0x80 == 0 {
		return 0, fmt.Errorf("%w: decimal real encoding not supported", ErrMalformedValue)
	}

	s := (b >> 6) & 1
	baseCode := (b >> 4) & 3 // 0 = base 2, 1 = base 8, 2 = base 16
	if baseCode > 2 {
		return 0, fmt.Errorf("%w: invalid real base", ErrMalformedValue)
	}
	scale := (b >> 2) & 3
	es := int(b&3) + 1
	idx := 1
	if es == 4 {
		// The next octet carries the number of exponent octets.
		if len(contents) < 2 {
			return 0, fmt.Errorf("%w: missing exponent size octet", ErrMalformedValue)
		}
		es, idx = int(contents[1]), 2
		if es == 0 {
			return 0, fmt.Errorf("%w: zero exponent size", ErrMalformedValue)
		}
	}
	if es > 8 {
		return 0, fmt.Errorf("%w: exponent of %d octets", ErrMalformedValue, es)
	}
	if len(contents) < idx+es {
		return 0, fmt.Errorf("%w: truncated exponent", ErrMalformedValue)
	}
	var e int64
	for _, eb := range contents[idx : idx+es] {
		e = e<<8 | int64(eb)
	}
	// Sign extend, then scale to base 2 and apply the scaling factor. The
	// magnitude guard keeps the base scaling below from overflowing.
	sh := uint(64 - 8*es)
	e = int64(uint64(e)<<sh) >> sh
	if e > 1<<20 || e < -(1<<20) {
		return 0, fmt.Errorf("%w: exponent exceeds double range", ErrMalformedValue)
	}
	e = e<<baseCode + e*int64(baseCode&1)
	e += int64(scale)

	mb := contents[idx+es:]
	if len(mb) == 0 {
		return 0, fmt.Errorf("%w: missing mantissa", ErrMalformedValue)
	}
	var m uint64
	for _, c := range mb {
		if m&(0xFF<<56) != 0 {
			if m&0xFF != 0 || e >= math.MaxInt64-8 {
				return 0, fmt.Errorf("%w: mantissa too large", ErrMalformedValue)
			}
			m >>= 8
			e += 8
		}
		m = m<<8 | uint64(c)
	}
	if m == 0 {
		return 0, fmt.Errorf("%w: zero mantissa", ErrMalformedValue)
	}

	// Reduce to an odd mantissa. m*2^e fits a double exactly iff m has at
	// most 53 bits, its lowest bit sits at 2^-1074 or above and its highest
	// at 2^1023 or below; this includes the subnormal range.
	shift := bits.TrailingZeros64(m)
	m >>= uint(shift)
	e += int64(shift)
	if bits.Len64(m) > 53 {
		return 0, fmt.Errorf("%w: mantissa exceeds double precision", ErrMalformedValue)
	}
	if e < -1074 || e+int64(bits.Len64(m))-1 > 1023 {
		return 0, fmt.Errorf("%w: exponent exceeds double range", ErrMalformedValue)
	}
	f := math.Ldexp(float64(m), int(e))
	if s != 0 {
		f = -f
	}
	return f, nil
}

// decodeOID parses a sequence of base-128 encoded components.
func decodeOID(contents []byte) (ember.RelativeOID, error) {
	r := bytebuf.FromBytes(contents)
	var oid ember.RelativeOID
	for r.Len() > 0 {
		c, err := vlq.ReadMinimal[uint](r)
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: component ends mid-continuation", ErrMalformedValue)
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedValue, err)
		}
		oid = append(oid, c)
	}
	return oid, nil
}
