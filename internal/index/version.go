package index

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/Zubry/immutable-quadtree/internal/util"
	"github.com/Zubry/immutable-quadtree/pkg/container/quadtree"
)

// Version is one immutable snapshot of an index. The tree it references is
// never modified, so a Version stays searchable for as long as it is
// retained, regardless of later inserts.
type Version struct {
	ID        uuid.UUID `json:"id"`
	Digest    string    `json:"digest"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`

	tree *quadtree.Tree
}

func newVersion(tree *quadtree.Tree) Version {
	digest := util.HashRects(tree.Items())
	return Version{
		ID:        uuid.New(),
		Digest:    hex.EncodeToString(digest[:]),
		Size:      tree.Len(),
		CreatedAt: time.Now(),
		tree:      tree,
	}
}

// Tree returns the snapshot itself.
func (v Version) Tree() *quadtree.Tree {
	return v.tree
}
