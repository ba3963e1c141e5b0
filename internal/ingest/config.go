package ingest

import "time"

type Config struct {
	RequestTimeout  time.Duration `envconfig:"QUADTREE_INGEST_REQUEST_TIMEOUT" default:"60s"`
	MaxDataItemsLen int           `envconfig:"QUADTREE_INGEST_MAX_DATA_ITEMS_LEN" default:"1000"`
}
