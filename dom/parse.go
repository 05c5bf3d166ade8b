package dom

import (
	"fmt"
	"io"

	"github.com/glowproto/ember"
	"github.com/glowproto/ember/ber"
	"github.com/glowproto/ember/bytebuf"
)

// SyntaxError reports a malformed encoding encountered by [Parse]. It wraps
// one of the ber error kinds and records where in the input the offending
// data value starts.
type SyntaxError struct {
	// ByteOffset is the position of the first identifier octet of the data
	// value that could not be decoded.
	ByteOffset int

	Err error
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("dom: syntax error at offset %d: %v", e.ByteOffset, e.Err)
}

// Parse decodes data as exactly one BER-encoded data value and returns the
// document tree it describes.
//
// Whether a node becomes a container or a leaf is driven purely by the
// constructed bit of its tag octet; no schema is consulted. Containers using
// the indefinite-length encoding are parsed by reading children until the
// end-of-contents marker at the same nesting level. Leaves with universal
// scalar tags are decoded into their [ember.Value] kind; leaves with any
// other tag are held opaquely as octet strings until a schema layer
// interprets them (see [VariantValue]).
//
// Every malformed input yields a [*SyntaxError]; Parse never reads past data
// and never panics on untrusted input.
func Parse(data []byte) (*Node, error) {
	r := bytebuf.FromBytes(data)
	h, err := header(r)
	if err != nil {
		return nil, err
	}
	if h == (ber.Header{}) {
		return nil, &SyntaxError{0, fmt.Errorf("%w: unexpected end-of-contents", ber.ErrMalformedTag)}
	}
	n, err := parseValue(r, h, 0)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, &SyntaxError{r.Offset(), fmt.Errorf("%w: %d trailing bytes after data value", ber.ErrMalformedValue, r.Len())}
	}
	return n, nil
}

// header reads the next TLV header, mapping a clean end of input to
// ErrTruncated. The zero Header is returned for an end-of-contents marker.
func header(r *bytebuf.Buffer) (ber.Header, error) {
	off := r.Offset()
	h, err := ber.DecodeHeader(r)
	if err == io.EOF {
		return h, &SyntaxError{off, fmt.Errorf("%w: unexpected end of input", ber.ErrTruncated)}
	} else if err != nil {
		return h, &SyntaxError{off, err}
	}
	return h, nil
}

// parseValue builds the node whose header h has already been consumed. off is
// the input offset of the first octet of that header.
func parseValue(r *bytebuf.Buffer, h ber.Header, off int) (*Node, error) {
	if !h.Constructed {
		contents, err := r.Next(h.Length)
		if err != nil {
			return nil, &SyntaxError{off, fmt.Errorf("%w: value needs %d content octets, %d available", ber.ErrTruncated, h.Length, r.Len())}
		}
		kind, ok := ber.KindForTag(h.Tag)
		if !ok {
			// Non-universal leaves are opaque until a schema interprets them.
			kind = ember.KindOctetString
		}
		v, err := ber.DecodeValue(kind, contents)
		if err != nil {
			return nil, &SyntaxError{off, err}
		}
		return NewLeaf(h.Tag, v), nil
	}

	n := NewSequence(h.Tag)
	if h.Tag == ember.Universal(ember.TagSet) {
		n.kind = Set
	}
	if h.Length == ber.LengthIndefinite {
		return n, parseIndefinite(r, n)
	}

	end := r.Offset() + h.Length
	if h.Length > r.Len() {
		return nil, &SyntaxError{off, fmt.Errorf("%w: container needs %d content octets, %d available", ber.ErrTruncated, h.Length, r.Len())}
	}
	for r.Offset() < end {
		childOff := r.Offset()
		ch, err := header(r)
		if err != nil {
			return nil, err
		}
		if ch == (ber.Header{}) {
			return nil, &SyntaxError{childOff, fmt.Errorf("%w: end-of-contents inside definite-length container", ber.ErrMalformedTag)}
		}
		child, err := parseValue(r, ch, childOff)
		if err != nil {
			return nil, err
		}
		if r.Offset() > end {
			return nil, &SyntaxError{childOff, fmt.Errorf("%w: child exceeds parent", ber.ErrMalformedLength)}
		}
		n.AppendChild(child)
	}
	return n, nil
}

// parseIndefinite appends children to n until the end-of-contents marker at
// this nesting level.
func parseIndefinite(r *bytebuf.Buffer, n *Node) error {
	for {
		childOff := r.Offset()
		ch, err := header(r)
		if err != nil {
			return err
		}
		if ch == (ber.Header{}) {
			return nil
		}
		child, err := parseValue(r, ch, childOff)
		if err != nil {
			return err
		}
		n.AppendChild(child)
	}
}
