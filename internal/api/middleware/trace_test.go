package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halverson/recall-api/internal/api/shared"
)

func TestTraceMiddleware(t *testing.T) {
	var seen []string

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := shared.GetTraceID(r.Context())
		seen = append(seen, traceID)
		w.WriteHeader(http.StatusOK)
	})

	handler := TraceMiddleware(inner)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	require.Len(t, seen, 2)
	for _, traceID := range seen {
		assert.Len(t, traceID, 2*shared.TraceIDLength)
	}
	assert.NotEqual(t, seen[0], seen[1], "each request gets its own trace ID")
}
