package middleware

import (
	"bytes"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"storefront/internal/domain/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheKey derives the cache key for a request: the path, then one
// "|name-value" segment per query parameter with names sorted ascending.
// Repeated parameters keep their encountered value order, so the same
// parameter set always yields the same key regardless of original order.
func CacheKey(path string, query url.Values) string {
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(path)
	for _, name := range names {
		for _, value := range query[name] {
			b.WriteString("|")
			b.WriteString(name)
			b.WriteString("-")
			b.WriteString(value)
		}
	}
	return b.String()
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cached decorates read endpoints with a response cache. A hit is served
// verbatim without invoking the handler; on a miss only a 200 response body
// is stored, with the configured TTL. The cache is an optimization: any
// store failure falls through to the handler.
func Cached(store repository.ResponseCache, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := CacheKey(c.Request.URL.Path, c.Request.URL.Query())

		payload, err := store.Get(c.Request.Context(), key)
		if err != nil {
			logger.Warn("Response cache read failed, serving uncached",
				zap.Error(err), zap.String("key", key))
		}
		if payload != nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() != http.StatusOK || writer.body.Len() == 0 {
			return
		}
		if err := store.Set(c.Request.Context(), key, writer.body.Bytes(), ttl); err != nil {
			logger.Warn("Response cache write failed",
				zap.Error(err), zap.String("key", key))
		}
	}
}
