package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Zubry/immutable-quadtree/internal/httputil"
	"github.com/Zubry/immutable-quadtree/internal/index"
)

type response struct {
	IndexID  string          `json:"index"`
	Versions []index.Version `json:"versions"`
}

// NewHandler lists the retained versions of an index.
func NewHandler(searcher index.Searcher) (http.Handler, error) {
	return &handler{searcher: searcher}, nil
}

type handler struct {
	searcher index.Searcher
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	indexID := r.URL.Query().Get("index")
	if indexID == "" {
		httputil.RespBadRequest(ctx, w, `{"error": "index query parameter is required"}`)
		return
	}

	versions, err := h.searcher.Versions(indexID)
	if err != nil {
		if errors.Is(err, index.ErrUnknownIndex) {
			httputil.RespNotFound(ctx, w, `{"error": "%v"}`, err)
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "versions error, %v"}`, err)
		return
	}

	bytes, err := json.Marshal(response{IndexID: indexID, Versions: versions})
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "%s", bytes)
}
