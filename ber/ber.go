// Package ber implements the Basic Encoding Rules tag-length-value format
// used by the device-control protocol, as defined in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// The package maps between [ember.Value] scalars and their content octets and
// between [Header] values and their identifier and length octets. It is the
// syntactic foundation of the [github.com/glowproto/ember/dom] package, which
// assembles headers and scalars into complete document trees.
//
// All functions are stateless, pure transformations. Decoding never reads
// past the supplied byte range and reports every malformed input as a
// distinct, recoverable error; see [ErrTruncated], [ErrMalformedTag],
// [ErrMalformedLength] and [ErrMalformedValue].
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package ber

import (
	"errors"
)

// The decode-failure kinds reported by this package. Errors returned from
// decoding functions wrap exactly one of these and can be classified with
// [errors.Is].
var (
	// ErrTruncated indicates that the input ended before the encoding was
	// complete, i.e. more bytes are needed.
	ErrTruncated = errors.New("ber: truncated input")

	// ErrMalformedTag indicates identifier octets that violate the
	// continuation-byte grammar or encode a tag number exceeding the supported
	// integer width.
	ErrMalformedTag = errors.New("ber: malformed tag")

	// ErrMalformedLength indicates length octets that are inconsistent or
	// encode a length exceeding the supported integer width.
	ErrMalformedLength = errors.New("ber: malformed length")

	// ErrMalformedValue indicates content octets that do not form a valid
	// encoding of the expected scalar kind.
	ErrMalformedValue = errors.New("ber: malformed value")

	// ErrUnsupportedLengthForm indicates an attempt to encode the
	// indefinite-length form. This encoder always emits definite lengths.
	ErrUnsupportedLengthForm = errors.New("ber: unsupported length form")
)
