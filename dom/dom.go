// Package dom implements the generic document tree that BER-encoded payloads
// decode into. A tree consists of [Node] values: tagged scalar leaves and
// tagged ordered containers. The tree is schema-agnostic; which subtree means
// what is decided by the schema layered on top, purely by inspecting tags.
//
// Trees are built either by [Parse], which decodes a byte buffer top-down, or
// programmatically through the constructors and mutation methods. [Render]
// serializes a tree back to bytes. Parse and Render are inverses: rendering a
// tree and parsing the result yields a structurally equal tree.
//
// A Node exclusively owns its children. There are no parent links; traversal
// is always top-down from a held root. Nodes are not safe for concurrent
// mutation.
package dom

import (
	"iter"

	"github.com/glowproto/ember"
)

// NodeKind discriminates the three node shapes of the document tree.
//
//go:generate go tool stringer -type=NodeKind
type NodeKind uint8

const (
	// Leaf nodes hold a single scalar [ember.Value] and no children.
	Leaf NodeKind = iota
	// Sequence containers hold an ordered list of children with arbitrary tags.
	Sequence
	// Set containers hold records conventionally distinguished by their inner
	// tags. The child order is still preserved, it just carries no meaning.
	Set
)

// Node is an element of the document tree: a tagged scalar leaf or a tagged
// ordered container. Use [NewLeaf], [NewSequence], [NewSet] or [NewVariant]
// to create nodes.
type Node struct {
	tag      ember.Tag
	kind     NodeKind
	value    ember.Value // leaves only
	children []*Node     // containers only

	// clen memoizes the content length computed by the measuring half of a
	// render pass so the emitting half cannot disagree with it.
	clen int
}

// NewLeaf returns a leaf node with the given tag holding v.
func NewLeaf(tag ember.Tag, v ember.Value) *Node {
	return &Node{tag: tag, kind: Leaf, value: v}
}

// NewSequence returns an empty sequence container with the given tag.
func NewSequence(tag ember.Tag) *Node {
	return &Node{tag: tag, kind: Sequence}
}

// NewSet returns an empty set container with the given tag.
func NewSet(tag ember.Tag) *Node {
	return &Node{tag: tag, kind: Set}
}

// Tag returns the tag of n.
func (n *Node) Tag() ember.Tag { return n.tag }

// SetTag replaces the tag of n.
func (n *Node) SetTag(tag ember.Tag) { n.tag = tag }

// Kind returns the shape of n.
func (n *Node) Kind() NodeKind { return n.kind }

// IsContainer reports whether n can hold children.
func (n *Node) IsContainer() bool { return n.kind != Leaf }

// Value returns the scalar held by a leaf node. For containers it returns the
// null value.
func (n *Node) Value() ember.Value {
	if n.kind != Leaf {
		return ember.Null()
	}
	return n.value
}

// SetValue replaces the scalar held by a leaf node. It panics if n is a
// container.
func (n *Node) SetValue(v ember.Value) {
	if n.kind != Leaf {
		panic("dom: SetValue on a container node")
	}
	n.value = v
}

// ChildCount returns the number of direct children of n.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child of n. It panics if i is out of range.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children iterates over the direct children of n in insertion order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

// AppendChild appends c to the children of n. The tree takes ownership of c;
// a node must not be attached to more than one parent. AppendChild panics if
// n is a leaf.
func (n *Node) AppendChild(c *Node) {
	if n.kind == Leaf {
		panic("dom: child of a leaf node")
	}
	n.children = append(n.children, c)
}

// InsertChild inserts c at position i, shifting later siblings up. It panics
// if n is a leaf or i is out of range.
func (n *Node) InsertChild(i int, c *Node) {
	if n.kind == Leaf {
		panic("dom: child of a leaf node")
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

// RemoveChild detaches and returns the i-th child, shifting later siblings
// down. It panics if i is out of range.
func (n *Node) RemoveChild(i int) *Node {
	c := n.children[i]
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return c
}

// Equal reports whether n and m are structurally equal: same tags, same
// shapes, same leaf values and same child order, recursively.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.tag != m.tag || n.kind != m.kind || len(n.children) != len(m.children) {
		return false
	}
	if n.kind == Leaf {
		return n.value.Equal(m.value)
	}
	for i, c := range n.children {
		if !c.Equal(m.children[i]) {
			return false
		}
	}
	return true
}
