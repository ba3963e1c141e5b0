package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Zubry/immutable-quadtree/internal/httputil"
	"github.com/Zubry/immutable-quadtree/internal/index"
	"github.com/Zubry/immutable-quadtree/internal/logging"
	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

const maxBodyBytes = 64 * 1024 * 1024

type request struct {
	IndexID string `json:"index"`
	Items   []struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"items"`
}

type response struct {
	IndexID string        `json:"index"`
	Version index.Version `json:"version"`
}

func NewHandler(cfg *Config, inserter index.Inserter) (http.Handler, error) {
	return &handler{
		cfg:      cfg,
		inserter: inserter,
	}, nil
}

type handler struct {
	inserter index.Inserter
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

	if len(req.Items) > h.cfg.MaxDataItemsLen {
		httputil.RespBadRequest(ctx, w, `{"error": "data items is too large, max allowed len is %d"}`, h.cfg.MaxDataItemsLen)
		return
	}

	items := make([]geo.Rect, 0, len(req.Items))
	for _, item := range req.Items {
		rect, err := geo.NewRect(item.X, item.Y, item.Width, item.Height)
		if err != nil {
			httputil.RespBadRequest(ctx, w, `{"error": "invalid rectangle (%g,%g %gx%g): %v"}`,
				item.X, item.Y, item.Width, item.Height, err)
			return
		}
		items = append(items, rect)
	}

	version, err := h.inserter.Insert(ctx, req.IndexID, items...)
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "insert error, %v"}`, err)
		return
	}

	logger.Infof("inserted %d items into index %s", len(items), req.IndexID)

	bytes, err := json.Marshal(response{IndexID: req.IndexID, Version: version})
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "%s", bytes)
}
