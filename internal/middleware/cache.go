package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medwear/storefront/pkg/logger"
)

// ResponseCache caches successful GET responses in Redis. The catalog is
// immutable for the process lifetime, so listing and facet responses are
// ideal cache material; the TTL only bounds staleness across deploys. A nil
// client disables the middleware.
func ResponseCache(client *redis.Client, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r)
			ctx := r.Context()

			if cached, err := client.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
				logger.Debug(ctx).
					Str("path", r.URL.Path).
					Str("cache_key", key).
					Msg("Response cache hit")

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			rec.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)

			// Only store successful JSON payloads
			if rec.status == http.StatusOK && rec.body.Len() > 0 {
				if err := client.Set(ctx, key, rec.body.Bytes(), ttl).Err(); err != nil {
					logger.Warn(ctx).
						Err(err).
						Str("cache_key", key).
						Msg("Failed to store cached response")
				}
			}
		})
	}
}

// cacheKey hashes method, path and query into a fixed-length Redis key.
func cacheKey(r *http.Request) string {
	sum := sha256.Sum256([]byte(r.Method + ":" + r.URL.Path + "?" + r.URL.RawQuery))
	return "respcache:" + hex.EncodeToString(sum[:])
}

// recordingWriter tees the response body so it can be cached after serving.
type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}
