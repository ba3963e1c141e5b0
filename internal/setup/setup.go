package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/Zubry/immutable-quadtree/internal/index"
	"github.com/Zubry/immutable-quadtree/internal/logging"
	"github.com/Zubry/immutable-quadtree/internal/srvenv"
	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	if indexConfigProvider, ok := config.(IndexConfigProvider); ok {
		logger.Info("Configuring index manager")
		provideFn, err := ProvideIndexFor(indexConfigProvider)
		if err != nil {
			return nil, fmt.Errorf("unable create index provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithIndex(provideFn))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvideIndexFor(provider IndexConfigProvider) (index.ProvideFn, error) {
	cfg := provider.IndexConfig()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("dont process index env: %w", err)
	}
	bounds, err := geo.NewRect(cfg.BoundsX, cfg.BoundsY, cfg.BoundsWidth, cfg.BoundsHeight)
	if err != nil {
		return nil, fmt.Errorf("invalid index bounds: %w", err)
	}
	return func(shutdownCh chan<- error) (index.Manager, error) {
		return index.New(
			shutdownCh,
			index.WithBounds(bounds),
			index.WithMaxItems(cfg.MaxItems),
			index.WithMaxDepth(cfg.MaxDepth),
			index.WithMaxVersions(cfg.MaxVersions),
			index.WithMaxVersionAge(cfg.MaxVersionAge),
			index.WithPruneInterval(cfg.PruneInterval),
		)
	}, nil
}
