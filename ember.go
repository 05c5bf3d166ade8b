// Package ember implements the data model shared by the codec layers of an
// Ember-style device-control protocol. This package only defines the [Tag] and
// [Value] types that tag and populate the generic document tree. Encoding and
// decoding are implemented in subpackages:
//
//   - [github.com/glowproto/ember/ber] implements the BER tag-length-value
//     encoding of headers and scalar values.
//   - [github.com/glowproto/ember/dom] implements the generic document tree
//     that BER-encoded payloads decode into.
//   - [github.com/glowproto/ember/s101] implements the framing layer that
//     delimits and checksums payloads on a raw byte stream.
//
// Raw bytes flow upwards through s101 into ber/dom; the reverse path renders a
// tree to bytes and frames it. None of the layers perform I/O themselves:
// bytes go in, bytes or trees come out.
package ember

import (
	"strconv"
	"strings"
)

// Tag identifies the role of an encoded data value, consisting of its class
// and number. Tags are compared by (class, number); whether a value uses the
// primitive or constructed encoding is a property of the encoding, not of the
// tag.
type Tag struct {
	Class  Class
	Number uint
}

// Class holds the class part of a tag. The class acts as a namespace for the
// tag number. A Class value is an unsigned 2-bit integer; values exceeding
// 2 bits are invalid.
//
//go:generate go tool stringer -type=Class -trimprefix=Class
type Class uint8

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// String returns a string representation of t. The tag number is enclosed by
// square brackets and prefixed with the class used. To avoid ambiguity the
// UNIVERSAL word is used for universal tags.
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class.String()) + " " + strconv.FormatUint(uint64(t.Number), 10) + "]"
}

// Universal returns the universal-class tag with the given number.
func Universal(number uint) Tag {
	return Tag{Class: ClassUniversal, Number: number}
}

// Application returns the application-class tag with the given number.
// Application tags are assigned by the schema layered on top of the document
// tree and pass through the codec opaquely.
func Application(number uint) Tag {
	return Tag{Class: ClassApplication, Number: number}
}

// Context returns the context-specific tag with the given number.
func Context(number uint) Tag {
	return Tag{Class: ClassContextSpecific, Number: number}
}

// TagReserved is a reserved tag number in the [ClassUniversal] namespace used
// by the encoding rules for the end-of-contents marker of indefinite-length
// values.
const TagReserved = 0

// Universal tag numbers used by the protocol, as assigned by Rec. ITU-T X.680,
// Section 8, Table 1.
const (
	TagBoolean     uint = 1
	TagInteger     uint = 2
	TagBitString   uint = 3
	TagOctetString uint = 4
	TagNull        uint = 5
	TagOID         uint = 6
	TagReal        uint = 9
	TagUTF8String  uint = 12
	TagRelativeOID uint = 13
	TagSequence    uint = 16
	TagSet         uint = 17
)
