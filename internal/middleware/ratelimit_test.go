package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netways/checkinlist-export/internal/middleware"
)

func serveFrom(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, exportPath, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_RejectsAfterLimit(t *testing.T) {
	h := middleware.NewRateLimiter(2)(trivialHandler)

	require.Equal(t, http.StatusOK, serveFrom(h, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, serveFrom(h, "10.0.0.1:1234").Code)

	rec := serveFrom(h, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":{"code":"rate_limited","message":"too many export requests, try again later"}}`, rec.Body.String())
}

func TestRateLimiter_CountsPerIP(t *testing.T) {
	h := middleware.NewRateLimiter(1)(trivialHandler)

	require.Equal(t, http.StatusOK, serveFrom(h, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, serveFrom(h, "10.0.0.2:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(h, "10.0.0.1:5678").Code)
}

func TestRateLimiter_ZeroDisables(t *testing.T) {
	h := middleware.NewRateLimiter(0)(trivialHandler)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, serveFrom(h, "10.0.0.1:1234").Code)
	}
}
