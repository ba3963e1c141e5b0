package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	ocprometheus "contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats/view"

	"github.com/Zubry/immutable-quadtree/internal/buildinfo"
	quadtreesrv "github.com/Zubry/immutable-quadtree/internal/config"
	"github.com/Zubry/immutable-quadtree/internal/ingest"
	"github.com/Zubry/immutable-quadtree/internal/logging"
	"github.com/Zubry/immutable-quadtree/internal/query"
	"github.com/Zubry/immutable-quadtree/internal/server"
	"github.com/Zubry/immutable-quadtree/internal/setup"
	"github.com/Zubry/immutable-quadtree/internal/shutdown"
	"github.com/Zubry/immutable-quadtree/internal/stats"
	"github.com/Zubry/immutable-quadtree/internal/version"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	go func() {
		_ = http.ListenAndServe("0.0.0.0:8080", nil)
	}()
	if err := run(ctx, done); err != nil {
		logger.Fatal(err)
	}
	defer done()
}

func run(ctx context.Context, cancel func()) error {
	config := quadtreesrv.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	shutdownCh := make(chan error, 1)
	idx, err := env.ProvideIndex()(shutdownCh)
	if err != nil {
		return fmt.Errorf("index provider function error: %w", err)
	}
	if err := idx.Run(ctx); err != nil {
		return fmt.Errorf("index.Run: %w", err)
	}

	if err := view.Register(stats.Views...); err != nil {
		return fmt.Errorf("view.Register: %w", err)
	}
	exporter, err := ocprometheus.NewExporter(ocprometheus.Options{Namespace: "quadtree"})
	if err != nil {
		return fmt.Errorf("prometheus.NewExporter: %w", err)
	}
	view.RegisterExporter(exporter)

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()

	ingestHandler, err := ingest.NewHandler(&config.Ingest, idx)
	if err != nil {
		return fmt.Errorf("ingest.NewHandler: %w", err)
	}
	queryHandler, err := query.NewHandler(&config.Query, idx)
	if err != nil {
		return fmt.Errorf("query.NewHandler: %w", err)
	}
	versionHandler, err := version.NewHandler(idx)
	if err != nil {
		return fmt.Errorf("version.NewHandler: %w", err)
	}

	mux.Handle("/insert", ingestHandler)
	mux.Handle("/search", queryHandler)
	mux.Handle("/versions", versionHandler)
	mux.Handle("/metrics", exporter)
	mux.Handle("/health", server.HandleHealth(ctx))

	go func() {
		if err := srv.ServeHTTPHandler(ctx, mux); err != nil {
			cancel()
		}
	}()

	return <-shutdownCh
}
