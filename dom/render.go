package dom

import (
	"github.com/glowproto/ember/ber"
	"github.com/glowproto/ember/bytebuf"
)

// Render serializes the tree rooted at n into its BER encoding. Lengths are
// always emitted in the definite form, so rendering the same tree twice
// produces identical bytes.
func Render(n *Node) ([]byte, error) {
	clen := measure(n)
	h := ber.Header{Tag: n.tag, Length: clen, Constructed: n.kind != Leaf}
	buf := bytebuf.New(h.EncodedLength() + clen)
	if err := emit(buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo serializes the tree rooted at n into buf, which may be a fixed
// buffer; in that case an encoding that does not fit fails with
// [bytebuf.ErrFull].
func RenderTo(buf *bytebuf.Buffer, n *Node) error {
	measure(n)
	return emit(buf, n)
}

// measure computes the content length of every node in the subtree bottom-up
// and memoizes it, so that emit writes length fields that agree with the
// contents it subsequently writes. The memoized value is only valid within
// the render pass that computed it.
func measure(n *Node) int {
	if n.kind == Leaf {
		n.clen = ber.ValueLength(n.value)
		return n.clen
	}
	clen := 0
	for _, c := range n.children {
		cl := measure(c)
		clen += (ber.Header{Tag: c.tag, Length: cl, Constructed: c.kind != Leaf}).EncodedLength() + cl
	}
	n.clen = clen
	return clen
}

// emit writes the subtree rooted at n front-to-back using the content lengths
// memoized by measure.
func emit(buf *bytebuf.Buffer, n *Node) error {
	h := ber.Header{Tag: n.tag, Length: n.clen, Constructed: n.kind != Leaf}
	if err := h.Encode(buf); err != nil {
		return err
	}
	if n.kind == Leaf {
		return ber.EncodeValue(buf, n.value)
	}
	for _, c := range n.children {
		if err := emit(buf, c); err != nil {
			return err
		}
	}
	return nil
}
