package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"

	"github.com/Zubry/immutable-quadtree/internal/logging"
	"github.com/Zubry/immutable-quadtree/internal/shutdown"
	"github.com/Zubry/immutable-quadtree/pkg/container/quadtree"
	"github.com/Zubry/immutable-quadtree/pkg/geo"
	"github.com/Zubry/immutable-quadtree/pkg/rworker"
)

// Config of the demo runner, read from the environment.
type Config struct {
	ScenePath            string `env:"QUADTREE_SCENE,default=scene.toml"`
	MaxConcurrentQueries int    `env:"QUADTREE_MAX_CONCURRENT_QUERIES,default=4"`
}

type rectDef struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// scene is a TOML description of a boundary, the rectangles to index and
// the queries to run against them.
type scene struct {
	Boundary rectDef   `toml:"boundary"`
	MaxItems int       `toml:"max_items"`
	MaxDepth int       `toml:"max_depth"`
	Items    []rectDef `toml:"items"`
	Queries  []rectDef `toml:"queries"`
}

func main() {
	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		logger.Fatal(err)
	}
	done()
}

func run(ctx context.Context) error {
	var config Config
	if err := envconfig.Process(ctx, &config); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}
	if len(os.Args) > 1 {
		config.ScenePath = os.Args[1]
	}

	var sc scene
	if _, err := toml.DecodeFile(config.ScenePath, &sc); err != nil {
		return fmt.Errorf("unable decode scene %s: %w", config.ScenePath, err)
	}

	tree, err := buildTree(sc)
	if err != nil {
		return err
	}

	queries := make([]geo.Rect, 0, len(sc.Queries))
	for _, q := range sc.Queries {
		queryRect, err := toRect(q)
		if err != nil {
			return fmt.Errorf("invalid query %v: %w", q, err)
		}
		queries = append(queries, queryRect)
	}

	results := make([][]geo.Rect, len(queries))
	rate := make(chan struct{}, config.MaxConcurrentQueries)
	errCh := make(chan error, 1)
	var wg sync.WaitGroup
	for i := range queries {
		i := i
		rworker.Job(&wg, func() error {
			results[i] = tree.Search(queries[i])
			return nil
		}, rate, errCh)
	}
	wg.Wait()

	fmt.Printf("indexed %d rectangles within %s\n", tree.Len(), tree.Root().Bounds())
	for i, matches := range results {
		fmt.Printf("query %s: %d matches\n", queries[i], len(matches))
		for _, m := range matches {
			fmt.Printf("  %s\n", m)
		}
	}

	return nil
}

func buildTree(sc scene) (*quadtree.Tree, error) {
	bounds, err := toRect(sc.Boundary)
	if err != nil {
		return nil, fmt.Errorf("invalid boundary: %w", err)
	}

	var opts []quadtree.Option
	if sc.MaxItems > 0 {
		opts = append(opts, quadtree.WithMaxItems(sc.MaxItems))
	}
	if sc.MaxDepth > 0 {
		opts = append(opts, quadtree.WithMaxDepth(sc.MaxDepth))
	}
	tree, err := quadtree.New(bounds, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable create tree: %w", err)
	}

	items := make([]geo.Rect, 0, len(sc.Items))
	for _, item := range sc.Items {
		rect, err := toRect(item)
		if err != nil {
			return nil, fmt.Errorf("invalid item %v: %w", item, err)
		}
		items = append(items, rect)
	}

	return tree.BatchInsert(items), nil
}

func toRect(def rectDef) (geo.Rect, error) {
	return geo.NewRect(def.X, def.Y, def.Width, def.Height)
}
