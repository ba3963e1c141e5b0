package quadtreesrv

import (
	"github.com/Zubry/immutable-quadtree/internal/index"
	"github.com/Zubry/immutable-quadtree/internal/ingest"
	"github.com/Zubry/immutable-quadtree/internal/query"
	"github.com/Zubry/immutable-quadtree/internal/setup"
)

var _ setup.IndexConfigProvider = (*Config)(nil)

type Config struct {
	SrvAddr string `envconfig:"QUADTREE_ADDR" default:":8787"`
	Index   index.Config
	Ingest  ingest.Config
	Query   query.Config
}

func (c Config) IndexConfig() *index.Config {
	return &c.Index
}

func (c Config) IngestConfig() *ingest.Config {
	return &c.Ingest
}

func (c Config) QueryConfig() *query.Config {
	return &c.Query
}
