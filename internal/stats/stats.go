package stats

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// KeyIndex tags every measurement with the index the operation ran against.
var KeyIndex = tag.MustNewKey("index")

var (
	MInsertedItems = stats.Int64(
		"quadtree/inserted_items",
		"Number of rectangles inserted into an index",
		stats.UnitDimensionless,
	)
	MSearches = stats.Int64(
		"quadtree/searches",
		"Number of search operations served",
		stats.UnitDimensionless,
	)
	MSearchMatches = stats.Int64(
		"quadtree/search_matches",
		"Number of rectangles returned by searches",
		stats.UnitDimensionless,
	)
	MRetainedVersions = stats.Int64(
		"quadtree/retained_versions",
		"Number of tree versions currently retained for an index",
		stats.UnitDimensionless,
	)
)

var Views = []*view.View{
	{
		Name:        "quadtree/inserted_items",
		Description: "Total rectangles inserted",
		Measure:     MInsertedItems,
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{KeyIndex},
	},
	{
		Name:        "quadtree/searches",
		Description: "Total search operations",
		Measure:     MSearches,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyIndex},
	},
	{
		Name:        "quadtree/search_matches",
		Description: "Total rectangles returned by searches",
		Measure:     MSearchMatches,
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{KeyIndex},
	},
	{
		Name:        "quadtree/retained_versions",
		Description: "Tree versions currently retained",
		Measure:     MRetainedVersions,
		Aggregation: view.LastValue(),
		TagKeys:     []tag.Key{KeyIndex},
	},
}
