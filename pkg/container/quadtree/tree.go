package quadtree

import (
	"fmt"

	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

var ErrInvalidLimit = fmt.Errorf("max items and max depth must be positive")

const (
	DefaultMaxItems = 4
	DefaultMaxDepth = 4
)

type options struct {
	maxItems int
	maxDepth int
}

type Option func(*options)

// WithMaxItems sets how many direct items a node may hold before it splits.
func WithMaxItems(n int) Option {
	return func(o *options) {
		o.maxItems = n
	}
}

// WithMaxDepth sets the deepest level the tree may divide into. A node at
// that level accepts unboundedly many direct items instead of splitting.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// Tree is a persistent quadtree over axis-aligned rectangles. A Tree value
// is never modified in place: Insert, BatchInsert and Clear return a new
// Tree that shares every untouched subtree with its predecessor, so any
// number of readers may keep traversing older versions while new ones are
// produced.
type Tree struct {
	root *Node
}

func New(bounds geo.Rect, opts ...Option) (*Tree, error) {
	o := options{maxItems: DefaultMaxItems, maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(&o)
	}
	if o.maxItems <= 0 || o.maxDepth <= 0 {
		return nil, ErrInvalidLimit
	}
	return &Tree{root: newNode(bounds, o.maxItems, o.maxDepth, 0)}, nil
}

// Root exposes the root node for inspection.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of rectangles stored in the tree.
func (t *Tree) Len() int {
	return t.root.Len()
}

// Insert places item into the tree and returns the resulting version. The
// receiver is left observably unchanged.
func (t *Tree) Insert(item geo.Rect) *Tree {
	return &Tree{root: insert(t.root, item)}
}

// BatchInsert inserts items one at a time in order, threading the
// intermediate versions, and returns the final tree. The result is
// indistinguishable from calling Insert once per item.
func (t *Tree) BatchInsert(items []geo.Rect) *Tree {
	version := t
	for _, item := range items {
		version = version.Insert(item)
	}
	return version
}

// Search returns every stored rectangle intersecting query. Subtrees whose
// bounds do not intersect the query are pruned without descending. The
// output order is fixed for a given tree and query: direct items first,
// then overlapping items, then the four quadrants from top-left to
// bottom-right.
func (t *Tree) Search(query geo.Rect) []geo.Rect {
	return search(t.root, query, nil)
}

// Items returns every stored rectangle, walking nodes in the same order
// Search does.
func (t *Tree) Items() []geo.Rect {
	return collect(t.root, nil)
}

// Clear returns an empty tree preserving the bounds and limits of the
// receiver. A nil tree clears to nil so an optional top-level slot can be
// cleared blindly.
func (t *Tree) Clear() *Tree {
	if t == nil {
		return nil
	}
	return &Tree{root: t.root.clear()}
}

// quadrantFor picks the child to attempt from the position of the item's
// anchor point alone. Whether the item actually fits inside that child is
// the caller's test.
func quadrantFor(n *Node, item geo.Rect) Quadrant {
	right := item.X > n.bounds.MidX()
	bottom := item.Y > n.bounds.MidY()
	switch {
	case right && bottom:
		return BottomRight
	case right:
		return TopRight
	case bottom:
		return BottomLeft
	default:
		return TopLeft
	}
}

func insert(n *Node, item geo.Rect) *Node {
	if !n.IsLeaf() {
		q := quadrantFor(n, item)
		if n.quads[q].bounds.Contains(item) {
			c := n.clone()
			c.quads[q] = insert(n.quads[q], item)
			return c
		}
		// The item straddles a quadrant border. It is retained at the
		// depth where it first fails to fit into a single child, never
		// pushed deeper and never split across quadrants, so every item
		// lives at exactly one node.
		return n.addOverlap(item)
	}

	c := n.addItem(item)
	if !c.splittable() {
		return c
	}

	// Overflow: split and reinsert every former direct item in original
	// order through this same algorithm, so first placement and
	// redistribution share identical semantics.
	moved := c.items
	c = c.split()
	c.items = nil
	for _, rect := range moved {
		c = insert(c, rect)
	}
	return c
}

func search(n *Node, query geo.Rect, acc []geo.Rect) []geo.Rect {
	if !n.bounds.Intersects(query) {
		return acc
	}
	for _, item := range n.items {
		if item.Intersects(query) {
			acc = append(acc, item)
		}
	}
	for _, item := range n.overlaps {
		if item.Intersects(query) {
			acc = append(acc, item)
		}
	}
	if n.IsLeaf() {
		return acc
	}
	for _, child := range n.quads {
		acc = search(child, query, acc)
	}
	return acc
}

func collect(n *Node, acc []geo.Rect) []geo.Rect {
	acc = append(acc, n.items...)
	acc = append(acc, n.overlaps...)
	if n.IsLeaf() {
		return acc
	}
	for _, child := range n.quads {
		acc = collect(child, acc)
	}
	return acc
}
