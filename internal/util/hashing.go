package util

import (
	"bytes"
	"crypto/sha256"
	"sync"

	xdr "github.com/davecgh/go-xdr/xdr2"

	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

var bytesBuffer = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

// HashRects returns a content digest over the given rectangles in order.
// The XDR encoding gives a platform-independent byte layout, so equal
// sequences always hash equal and digests stay comparable across hosts.
func HashRects(rects []geo.Rect) [32]byte {
	buffer := bytesBuffer.Get().(*bytes.Buffer)
	defer bytesBuffer.Put(buffer)
	defer buffer.Reset()
	for i := range rects {
		_, _ = xdr.Marshal(buffer, rects[i])
	}
	return sha256.Sum256(buffer.Bytes())
}
