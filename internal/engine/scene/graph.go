package scene

import (
	"fmt"

	"github.com/Faultbox/creeperworld/pkg/math"
)

// Node is a live scene graph entry. It is only reachable through Graph.Node.
type Node struct {
	Name      string
	Transform Transform
	Parts     []Part

	parent   Handle
	children []Handle
}

// Parent returns the parent handle, or Nil for roots.
func (n *Node) Parent() Handle {
	return n.parent
}

// Children returns the child handles in insertion order.
func (n *Node) Children() []Handle {
	return n.children
}

// Submitter receives one drawable part together with its composed world matrix.
type Submitter interface {
	Submit(world math.Mat4, part *Part)
}

type slot struct {
	gen  uint32
	live bool
	node Node
}

// Graph is an arena of nodes. Slots are recycled through a free list and
// generations are bumped on removal so old handles stop resolving.
type Graph struct {
	slots []slot
	free  []uint32
	roots []Handle
	live  int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return g.live
}

// Roots returns the root handles in insertion order.
func (g *Graph) Roots() []Handle {
	return g.roots
}

// Valid reports whether h resolves to a live node.
func (g *Graph) Valid(h Handle) bool {
	_, err := g.Node(h)
	return err == nil
}

// Node resolves a handle.
func (g *Graph) Node(h Handle) (*Node, error) {
	if h.IsNil() || int(h.index) >= len(g.slots) {
		return nil, fmt.Errorf("%s: %w", h, ErrStaleHandle)
	}
	s := &g.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, fmt.Errorf("%s: %w", h, ErrStaleHandle)
	}
	return &s.node, nil
}

// Spawn moves obj and its descendants into the graph under parent.
// A Nil parent appends a new root.
func (g *Graph) Spawn(parent Handle, obj *Object) (Handle, error) {
	if obj == nil {
		return Nil, fmt.Errorf("spawn: %w", ErrNilObject)
	}
	if !obj.complete() {
		return Nil, fmt.Errorf("spawn %q: %w", obj.Name, ErrNilObject)
	}
	if !parent.IsNil() {
		if _, err := g.Node(parent); err != nil {
			return Nil, fmt.Errorf("spawn %q: %w", obj.Name, err)
		}
	}
	h := g.insert(parent, obj)
	if parent.IsNil() {
		g.roots = append(g.roots, h)
	}
	return h, nil
}

// AddChild spawns obj as the last child of parent.
func (g *Graph) AddChild(parent Handle, obj *Object) (Handle, error) {
	if parent.IsNil() {
		return Nil, fmt.Errorf("add child: %w", ErrStaleHandle)
	}
	return g.Spawn(parent, obj)
}

func (g *Graph) insert(parent Handle, obj *Object) Handle {
	h := g.alloc()
	s := &g.slots[h.index]
	s.node = Node{
		Name:      obj.Name,
		Transform: obj.Transform,
		Parts:     obj.Parts,
		parent:    parent,
	}
	if !parent.IsNil() {
		p := &g.slots[parent.index].node
		p.children = append(p.children, h)
	}
	for _, c := range obj.Children {
		g.insert(h, c)
	}
	return h
}

func (g *Graph) alloc() Handle {
	g.live++
	if n := len(g.free); n > 0 {
		idx := g.free[n-1]
		g.free = g.free[:n-1]
		s := &g.slots[idx]
		s.live = true
		return Handle{index: idx, gen: s.gen}
	}
	g.slots = append(g.slots, slot{gen: 1, live: true})
	return Handle{index: uint32(len(g.slots) - 1), gen: 1}
}

// Child returns the i-th child of h.
func (g *Graph) Child(h Handle, i int) (Handle, error) {
	n, err := g.Node(h)
	if err != nil {
		return Nil, err
	}
	if i < 0 || i >= len(n.children) {
		return Nil, fmt.Errorf("%s child %d of %d: %w", h, i, len(n.children), ErrIndexOutOfRange)
	}
	return n.children[i], nil
}

// Remove detaches h from its parent and frees its whole subtree.
func (g *Graph) Remove(h Handle) error {
	n, err := g.Node(h)
	if err != nil {
		return err
	}
	if n.parent.IsNil() {
		g.roots = without(g.roots, h)
	} else if p, err := g.Node(n.parent); err == nil {
		p.children = without(p.children, h)
	}
	g.release(h)
	return nil
}

func (g *Graph) release(h Handle) {
	s := &g.slots[h.index]
	for _, c := range s.node.children {
		g.release(c)
	}
	s.node = Node{}
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	g.free = append(g.free, h.index)
	g.live--
}

func without(hs []Handle, h Handle) []Handle {
	for i, x := range hs {
		if x == h {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}

// Lookup returns the first live node named name in depth-first order.
func (g *Graph) Lookup(name string) (Handle, bool) {
	found := Nil
	g.Walk(func(h Handle, n *Node) bool {
		if n.Name == name {
			found = h
			return false
		}
		return true
	})
	return found, !found.IsNil()
}

// Walk visits every live node depth-first, parents before children.
// Returning false from fn stops the walk.
func (g *Graph) Walk(fn func(Handle, *Node) bool) {
	for _, r := range g.roots {
		if !g.walk(r, fn) {
			return
		}
	}
}

func (g *Graph) walk(h Handle, fn func(Handle, *Node) bool) bool {
	n := &g.slots[h.index].node
	if !fn(h, n) {
		return false
	}
	for _, c := range n.children {
		if !g.walk(c, fn) {
			return false
		}
	}
	return true
}

// WorldMatrix composes the local matrices from the root down to h.
func (g *Graph) WorldMatrix(h Handle) (math.Mat4, error) {
	n, err := g.Node(h)
	if err != nil {
		return math.Identity(), err
	}
	local := n.Transform.Matrix()
	if n.parent.IsNil() {
		return local, nil
	}
	parent, err := g.WorldMatrix(n.parent)
	if err != nil {
		return math.Identity(), err
	}
	return parent.Mul(local), nil
}

// Render submits every part of every live node with its world matrix.
// Children are drawn before the parts of their parent.
func (g *Graph) Render(sub Submitter) {
	for _, r := range g.roots {
		g.render(r, math.Identity(), sub)
	}
}

func (g *Graph) render(h Handle, parent math.Mat4, sub Submitter) {
	n := &g.slots[h.index].node
	world := parent.Mul(n.Transform.Matrix())
	for _, c := range n.children {
		g.render(c, world, sub)
	}
	for i := range n.Parts {
		sub.Submit(world, &n.Parts[i])
	}
}
