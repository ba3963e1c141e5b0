package quadtree

import (
	"testing"

	"github.com/valyala/fastrand"

	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

func randRects(n int) []geo.Rect {
	rects := make([]geo.Rect, n)
	for i := range rects {
		rects[i] = geo.Rect{
			X:      float64(fastrand.Uint32n(1000)),
			Y:      float64(fastrand.Uint32n(1000)),
			Width:  float64(fastrand.Uint32n(16)),
			Height: float64(fastrand.Uint32n(16)),
		}
	}
	return rects
}

func BenchmarkTree_Insert(b *testing.B) {
	rects := randRects(1024)
	tree, err := New(geo.Rect{Width: 1024, Height: 1024}, WithMaxDepth(8))
	if err != nil {
		b.Fatalf("unable create tree: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree = tree.Insert(rects[i%len(rects)])
	}
}

func BenchmarkTree_Search(b *testing.B) {
	tree, err := New(geo.Rect{Width: 1024, Height: 1024}, WithMaxDepth(8))
	if err != nil {
		b.Fatalf("unable create tree: %v", err)
	}
	tree = tree.BatchInsert(randRects(4096))
	query := geo.Rect{X: 256, Y: 256, Width: 64, Height: 64}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tree.Search(query)
	}
}

func BenchmarkLinearScan(b *testing.B) {
	rects := randRects(4096)
	query := geo.Rect{X: 256, Y: 256, Width: 64, Height: 64}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var matches []geo.Rect
		for _, r := range rects {
			if r.Intersects(query) {
				matches = append(matches, r)
			}
		}
		_ = matches
	}
}
