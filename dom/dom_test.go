package dom

import (
	"testing"

	"github.com/glowproto/ember"
)

func leafInt(tag ember.Tag, i int64) *Node {
	return NewLeaf(tag, ember.Int(i))
}

func TestNode_construct(t *testing.T) {
	n := NewSequence(ember.Application(1))
	n.AppendChild(NewLeaf(ember.Context(0), ember.Text("root")))
	n.AppendChild(NewSet(ember.Context(1)))

	if n.Kind() != Sequence || !n.IsContainer() {
		t.Errorf("Kind() = %v, want Sequence container", n.Kind())
	}
	if n.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", n.ChildCount())
	}
	if got := n.Child(0).Value(); !got.Equal(ember.Text("root")) {
		t.Errorf("Child(0).Value() = %v, want \"root\"", got)
	}
	if got := n.Child(1).Kind(); got != Set {
		t.Errorf("Child(1).Kind() = %v, want Set", got)
	}
	// Containers hold no scalar of their own.
	if got := n.Value(); !got.IsNull() {
		t.Errorf("container Value() = %v, want null", got)
	}
}

func TestNode_mutate(t *testing.T) {
	n := NewSequence(ember.Universal(ember.TagSequence))
	n.AppendChild(leafInt(ember.Context(0), 0))
	n.AppendChild(leafInt(ember.Context(2), 2))
	n.InsertChild(1, leafInt(ember.Context(1), 1))

	for i := range 3 {
		if got := n.Child(i).Value().Int(); got != int64(i) {
			t.Errorf("Child(%d).Value() = %d, want %d", i, got, i)
		}
	}

	removed := n.RemoveChild(1)
	if got := removed.Value().Int(); got != 1 {
		t.Errorf("RemoveChild(1).Value() = %d, want 1", got)
	}
	if n.ChildCount() != 2 {
		t.Fatalf("ChildCount() after remove = %d, want 2", n.ChildCount())
	}
	if got := n.Child(1).Value().Int(); got != 2 {
		t.Errorf("Child(1).Value() after remove = %d, want 2", got)
	}

	leaf := n.Child(0)
	leaf.SetValue(ember.Int(42))
	leaf.SetTag(ember.Context(9))
	if got := leaf.Value().Int(); got != 42 {
		t.Errorf("Value() after SetValue = %d, want 42", got)
	}
	if got := leaf.Tag(); got != ember.Context(9) {
		t.Errorf("Tag() after SetTag = %v, want [9]", got)
	}
}

func TestNode_children(t *testing.T) {
	n := NewSequence(ember.Universal(ember.TagSequence))
	for i := range 5 {
		n.AppendChild(leafInt(ember.Context(uint(i)), int64(i)))
	}
	var got []int64
	for c := range n.Children() {
		got = append(got, c.Value().Int())
	}
	for i, v := range got {
		if v != int64(i) {
			t.Errorf("child %d = %d, want insertion order", i, v)
		}
	}
	// Early break must not panic or misbehave.
	count := 0
	for range n.Children() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("early break visited %d children, want 2", count)
	}
}

func TestNode_panics(t *testing.T) {
	leaf := NewLeaf(ember.Context(0), ember.Null())
	container := NewSequence(ember.Context(1))

	assertPanics(t, "AppendChild on leaf", func() { leaf.AppendChild(container) })
	assertPanics(t, "InsertChild on leaf", func() { leaf.InsertChild(0, container) })
	assertPanics(t, "SetValue on container", func() { container.SetValue(ember.Int(1)) })
}

func assertPanics(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	f()
}

func TestNode_Equal(t *testing.T) {
	build := func() *Node {
		n := NewSequence(ember.Application(1))
		s := NewSet(ember.Context(0))
		s.AppendChild(NewLeaf(ember.Context(0), ember.Text("a")))
		n.AppendChild(s)
		n.AppendChild(leafInt(ember.Context(1), 7))
		return n
	}
	a, b := build(), build()
	if !a.Equal(b) {
		t.Fatalf("Equal() = false for identically built trees")
	}

	b.Child(1).SetValue(ember.Int(8))
	if a.Equal(b) {
		t.Errorf("Equal() = true after value change")
	}

	b = build()
	b.Child(0).SetTag(ember.Context(5))
	if a.Equal(b) {
		t.Errorf("Equal() = true after tag change")
	}

	b = build()
	b.AppendChild(NewLeaf(ember.Context(2), ember.Null()))
	if a.Equal(b) {
		t.Errorf("Equal() = true after child count change")
	}

	// Child order is part of structural equality, for sets too.
	a = NewSet(ember.Context(0))
	a.AppendChild(leafInt(ember.Context(0), 1))
	a.AppendChild(leafInt(ember.Context(1), 2))
	b = NewSet(ember.Context(0))
	b.AppendChild(leafInt(ember.Context(1), 2))
	b.AppendChild(leafInt(ember.Context(0), 1))
	if a.Equal(b) {
		t.Errorf("Equal() = true for reordered children")
	}

	if !(*Node)(nil).Equal(nil) {
		t.Errorf("nil.Equal(nil) = false")
	}
	if a.Equal(nil) || (*Node)(nil).Equal(a) {
		t.Errorf("Equal() with one nil operand = true")
	}
}
