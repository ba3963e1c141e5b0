package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Zubry/immutable-quadtree/internal/httputil"
	"github.com/Zubry/immutable-quadtree/internal/index"
	"github.com/Zubry/immutable-quadtree/internal/logging"
	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

const maxBodyBytes = 64 * 1024 * 1024

type rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type request struct {
	IndexID string `json:"index"`
	// optional: search a retained historical version instead of the latest
	VersionID string `json:"version,omitempty"`
	Queries   []rect `json:"queries"`
}

type result struct {
	Query   rect   `json:"query"`
	Matches []rect `json:"matches"`
}

type response struct {
	IndexID string   `json:"index"`
	Results []result `json:"results"`
}

func NewHandler(cfg *Config, searcher index.Searcher) (http.Handler, error) {
	return &handler{
		cfg:      cfg,
		searcher: searcher,
	}, nil
}

type handler struct {
	searcher index.Searcher
	cfg      *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if !httputil.ValidateRequest(ctx, w, r, "POST") {
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if len(req.Queries) > h.cfg.MaxQueriesLen {
		httputil.RespBadRequest(ctx, w, `{"error": "queries is too large, max allowed len is %d"}`, h.cfg.MaxQueriesLen)
		return
	}

	var versionID uuid.UUID
	if req.VersionID != "" {
		id, err := uuid.Parse(req.VersionID)
		if err != nil {
			httputil.RespBadRequest(ctx, w, `{"error": "invalid version id %q"}`, req.VersionID)
			return
		}
		versionID = id
	}

	results := make([]result, len(req.Queries))
	errGrp := errgroup.Group{}
	for i, q := range req.Queries {
		i, q := i, q
		errGrp.Go(func() error {
			queryRect, err := geo.NewRect(q.X, q.Y, q.Width, q.Height)
			if err != nil {
				return fmt.Errorf("invalid query rectangle: %w", err)
			}
			matches, err := h.search(ctx, req.IndexID, versionID, queryRect)
			if err != nil {
				return err
			}
			results[i] = result{Query: q, Matches: matches}
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		switch {
		case errors.Is(err, index.ErrUnknownIndex), errors.Is(err, index.ErrUnknownVersion):
			httputil.RespNotFound(ctx, w, `{"error": "%v"}`, err)
		case errors.Is(err, geo.ErrNegativeSize), errors.Is(err, geo.ErrNotFinite):
			httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		default:
			httputil.RespInternalError(ctx, w, `{"error": "search processing error, %v"}`, err)
		}
		return
	}

	logger.Debugf("served %d queries against index %s", len(req.Queries), req.IndexID)

	bytes, err := json.Marshal(response{IndexID: req.IndexID, Results: results})
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "%s", bytes)
}

func (h *handler) search(ctx context.Context, indexID string, versionID uuid.UUID, queryRect geo.Rect) ([]rect, error) {
	var (
		found []geo.Rect
		err   error
	)
	if versionID == uuid.Nil {
		found, err = h.searcher.Search(ctx, indexID, queryRect)
	} else {
		found, err = h.searcher.SearchAt(ctx, indexID, versionID, queryRect)
	}
	if err != nil {
		return nil, err
	}

	matches := make([]rect, len(found))
	for i, m := range found {
		matches[i] = rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
	}
	return matches, nil
}
