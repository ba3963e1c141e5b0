package index

import "time"

type Config struct {
	BoundsX       float64       `envconfig:"QUADTREE_BOUNDS_X" default:"0"`
	BoundsY       float64       `envconfig:"QUADTREE_BOUNDS_Y" default:"0"`
	BoundsWidth   float64       `envconfig:"QUADTREE_BOUNDS_WIDTH" default:"1024"`
	BoundsHeight  float64       `envconfig:"QUADTREE_BOUNDS_HEIGHT" default:"1024"`
	MaxItems      int           `envconfig:"QUADTREE_MAX_ITEMS" default:"4"`
	MaxDepth      int           `envconfig:"QUADTREE_MAX_DEPTH" default:"4"`
	MaxVersions   int           `envconfig:"QUADTREE_MAX_VERSIONS" default:"32"`
	MaxVersionAge time.Duration `envconfig:"QUADTREE_MAX_VERSION_AGE" default:"1h"`
	PruneInterval time.Duration `envconfig:"QUADTREE_PRUNE_INTERVAL" default:"1m"`
}
