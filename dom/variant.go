package dom

import (
	"errors"
	"fmt"

	"github.com/glowproto/ember"
	"github.com/glowproto/ember/ber"
)

// ErrUnknownVariantTag indicates a variant container whose single child
// carries a tag that does not select any known alternative.
var ErrUnknownVariantTag = errors.New("dom: unknown variant alternative tag")

// variantKinds maps the context-specific tag number of a variant alternative
// to the scalar kind it carries. The set of alternatives is fixed by the
// protocol.
var variantKinds = [...]ember.Kind{
	0: ember.KindInteger,
	1: ember.KindReal,
	2: ember.KindUTF8String,
	3: ember.KindBoolean,
	4: ember.KindOctetString,
	5: ember.KindNull,
	6: ember.KindRelativeOID,
}

// variantTag returns the context-specific tag selecting the alternative that
// carries scalar kind k.
func variantTag(k ember.Kind) ember.Tag {
	for num, kind := range variantKinds {
		if kind == k {
			return ember.Context(uint(num))
		}
	}
	panic("dom: invalid kind " + k.String())
}

// NewVariant returns a container with the given tag wrapping the single
// alternative chosen by the kind of v: a leaf tagged with the alternative's
// context-specific tag number.
func NewVariant(tag ember.Tag, v ember.Value) *Node {
	n := NewSequence(tag)
	n.AppendChild(NewLeaf(variantTag(v.Kind()), v))
	return n
}

// VariantValue interprets n as a variant container and returns the value of
// the single alternative it wraps. The alternative is identified by the
// context-specific tag of the only child; a tag outside the known set is a
// decode failure ([ErrUnknownVariantTag]), never silently skipped.
//
// VariantValue accepts both trees built with [NewVariant] and trees produced
// by [Parse], where the child's contents are still held opaquely.
func VariantValue(n *Node) (ember.Value, error) {
	if !n.IsContainer() || n.ChildCount() != 1 {
		return ember.Value{}, fmt.Errorf("dom: variant %v must wrap exactly one alternative", n.Tag())
	}
	c := n.Child(0)
	if c.Tag().Class != ember.ClassContextSpecific || int(c.Tag().Number) >= len(variantKinds) {
		return ember.Value{}, fmt.Errorf("%w: %v", ErrUnknownVariantTag, c.Tag())
	}
	kind := variantKinds[c.Tag().Number]
	v := c.Value()
	if v.Kind() == kind {
		return v, nil
	}
	if v.Kind() == ember.KindOctetString {
		// A parsed alternative is an opaque leaf; decode its content octets as
		// the selected kind.
		return ber.DecodeValue(kind, v.Octets())
	}
	return ember.Value{}, fmt.Errorf("dom: variant alternative %v holds %v, want %v", c.Tag(), v.Kind(), kind)
}
