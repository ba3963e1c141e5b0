package query

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"QUADTREE_QUERY_REQUEST_TIMEOUT" default:"30s"`
	MaxQueriesLen  int           `envconfig:"QUADTREE_QUERY_MAX_QUERIES_LEN" default:"10"`
}
