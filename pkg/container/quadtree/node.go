package quadtree

import (
	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

// Quadrant indexes one of the four children of a split node.
type Quadrant uint8

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// Node is one level of the tree. Node values are immutable: every operation
// that changes a node returns a fresh copy and leaves the receiver intact,
// so an older tree version stays valid while newer ones are built from it.
type Node struct {
	bounds   geo.Rect
	maxItems int
	maxDepth int
	depth    int
	// either all four quadrants are nil or all four are set
	quads    [4]*Node
	items    []geo.Rect
	overlaps []geo.Rect
}

func newNode(bounds geo.Rect, maxItems, maxDepth, depth int) *Node {
	return &Node{
		bounds:   bounds,
		maxItems: maxItems,
		maxDepth: maxDepth,
		depth:    depth,
	}
}

// IsLeaf reports whether the node has never been split.
func (n *Node) IsLeaf() bool {
	return n.quads[TopLeft] == nil
}

func (n *Node) Bounds() geo.Rect {
	return n.bounds
}

func (n *Node) Depth() int {
	return n.depth
}

// Quadrant returns the child covering the given quadrant, or nil for a leaf.
func (n *Node) Quadrant(q Quadrant) *Node {
	return n.quads[q]
}

// Items returns a copy of the rectangles stored directly at this node.
func (n *Node) Items() []geo.Rect {
	return copyRects(n.items)
}

// Overlaps returns a copy of the rectangles retained at this node because
// they straddle more than one quadrant.
func (n *Node) Overlaps() []geo.Rect {
	return copyRects(n.overlaps)
}

// Len returns the number of rectangles stored in the subtree rooted at n.
func (n *Node) Len() int {
	total := len(n.items) + len(n.overlaps)
	if n.IsLeaf() {
		return total
	}
	for _, child := range n.quads {
		total += child.Len()
	}
	return total
}

// clone returns a shallow copy of n. The quadrant array is copied by value,
// the item slices stay shared until a copy-on-write append replaces them.
func (n *Node) clone() *Node {
	c := *n
	return &c
}

// addItem returns a copy of n with item appended to its direct items.
func (n *Node) addItem(item geo.Rect) *Node {
	c := n.clone()
	c.items = appendRect(n.items, item)
	return c
}

// addOverlap returns a copy of n with item appended to its overlapping
// items.
func (n *Node) addOverlap(item geo.Rect) *Node {
	c := n.clone()
	c.overlaps = appendRect(n.overlaps, item)
	return c
}

// splittable reports whether the node holds more direct items than allowed
// and still has depth left to divide into.
func (n *Node) splittable() bool {
	return len(n.items) > n.maxItems && n.depth < n.maxDepth
}

// split returns a copy of n with all four quadrant slots populated by empty
// leaves, each covering a quarter of the bounds at depth+1. The direct
// items of n are carried over untouched; redistributing them is the
// caller's job because only the caller knows the reinsertion policy.
func (n *Node) split() *Node {
	c := n.clone()
	halfW := n.bounds.Width / 2
	halfH := n.bounds.Height / 2
	child := func(x, y float64) *Node {
		bounds := geo.Rect{X: x, Y: y, Width: halfW, Height: halfH}
		return newNode(bounds, n.maxItems, n.maxDepth, n.depth+1)
	}
	c.quads[TopLeft] = child(n.bounds.X, n.bounds.Y)
	c.quads[TopRight] = child(n.bounds.X+halfW, n.bounds.Y)
	c.quads[BottomLeft] = child(n.bounds.X, n.bounds.Y+halfH)
	c.quads[BottomRight] = child(n.bounds.X+halfW, n.bounds.Y+halfH)
	return c
}

// clear returns a structural reset of n: an empty leaf with the same
// bounds, limits and depth. Children are cleared bottom-up before the
// quadrant slots are dropped, so recursion depth is bounded by maxDepth.
func (n *Node) clear() *Node {
	c := n.clone()
	if !n.IsLeaf() {
		for q := range c.quads {
			c.quads[q] = c.quads[q].clear()
		}
	}
	c.quads = [4]*Node{}
	c.items = nil
	c.overlaps = nil
	return c
}

// appendRect appends into a freshly allocated slice. Two versions derived
// from the same node must never share a backing array, otherwise an append
// on one could leak into the other.
func appendRect(rects []geo.Rect, item geo.Rect) []geo.Rect {
	next := make([]geo.Rect, len(rects)+1)
	copy(next, rects)
	next[len(rects)] = item
	return next
}

func copyRects(rects []geo.Rect) []geo.Rect {
	if rects == nil {
		return nil
	}
	c := make([]geo.Rect, len(rects))
	copy(c, rects)
	return c
}
