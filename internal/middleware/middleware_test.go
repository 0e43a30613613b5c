package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestLoggingPassesThrough(t *testing.T) {
	var handled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	RequestLogging(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.True(t, handled)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestResponseCacheDisabledWithoutClient(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true}`))
	})

	wrapped := ResponseCache(nil, time.Minute)(next)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/facets", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"), "a nil client must bypass the cache entirely")
	}
	assert.Equal(t, 2, calls)
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
	a := cacheKey(httptest.NewRequest(http.MethodGet, "/api/products?page=1", nil))
	b := cacheKey(httptest.NewRequest(http.MethodGet, "/api/products?page=2", nil))
	same := cacheKey(httptest.NewRequest(http.MethodGet, "/api/products?page=1", nil))

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, same)
}
