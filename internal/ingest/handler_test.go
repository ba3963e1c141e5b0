package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Zubry/immutable-quadtree/internal/index"
	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

type fakeInserter struct {
	inserted []geo.Rect
	indexID  string
}

func (f *fakeInserter) Insert(_ context.Context, indexID string, items ...geo.Rect) (index.Version, error) {
	f.indexID = indexID
	f.inserted = append(f.inserted, items...)
	return index.Version{ID: uuid.New(), Size: len(f.inserted), CreatedAt: time.Now()}, nil
}

func (f *fakeInserter) Clear(_ context.Context, indexID string) (index.Version, error) {
	f.inserted = nil
	return index.Version{ID: uuid.New(), CreatedAt: time.Now()}, nil
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		contentType  string
		body         string
		expectedCode int
		expectedLen  int
	}{
		{
			name:         "positive",
			method:       "POST",
			contentType:  "application/json",
			body:         `{"index": "fleet", "items": [{"x": 1, "y": 2, "width": 3, "height": 4}, {"x": 5, "y": 6, "width": 7, "height": 8}]}`,
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:         "method_not_allowed",
			method:       "GET",
			contentType:  "application/json",
			body:         `{}`,
			expectedCode: http.StatusMethodNotAllowed,
		},
		{
			name:         "unsupported_media_type",
			method:       "POST",
			contentType:  "text/plain",
			body:         `{}`,
			expectedCode: http.StatusUnsupportedMediaType,
		},
		{
			name:         "malformed_json",
			method:       "POST",
			contentType:  "application/json",
			body:         `{"index": }`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative_rectangle",
			method:       "POST",
			contentType:  "application/json",
			body:         `{"index": "fleet", "items": [{"x": 1, "y": 2, "width": -3, "height": 4}]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "too_many_items",
			method:       "POST",
			contentType:  "application/json",
			body:         `{"index": "fleet", "items": [{"x": 1}, {"x": 2}, {"x": 3}]}`,
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			inserter := &fakeInserter{}
			h, err := NewHandler(&Config{RequestTimeout: time.Second, MaxDataItemsLen: 2}, inserter)
			if err != nil {
				t.Fatalf("unable create handler: %v", err)
			}

			r := httptest.NewRequest(test.method, "/insert", strings.NewReader(test.body))
			r.Header.Set("content-type", test.contentType)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != test.expectedCode {
				t.Errorf("status code got: %d, expected: %d, body: %s", w.Code, test.expectedCode, w.Body.String())
			}
			if len(inserter.inserted) != test.expectedLen {
				t.Errorf("inserted items got: %d, expected: %d", len(inserter.inserted), test.expectedLen)
			}
			if test.expectedCode == http.StatusOK && inserter.indexID != "fleet" {
				t.Errorf("index id got: %q, expected: %q", inserter.indexID, "fleet")
			}
		})
	}
}
