package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"storefront/internal/domain/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestCacheKey_SortedParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawQuery string
		want     string
	}{
		{"no params", "", "/orders"},
		{"already sorted", "a=1&b=2", "/orders|a-1|b-2"},
		{"reversed", "b=2&a=1", "/orders|a-1|b-2"},
		{"repeated values keep encountered order", "b=2&a=1&a=3", "/orders|a-1|a-3|b-2"},
		{"interleaved", "z=9&a=1&m=5", "/orders|a-1|m-5|z-9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			query, err := url.ParseQuery(tc.rawQuery)
			require.NoError(t, err)
			assert.Equal(t, tc.want, CacheKey("/orders", query))
		})
	}
}

func TestCacheKey_CommutativeUnderReordering(t *testing.T) {
	t.Parallel()

	first, err := url.ParseQuery("b=2&a=1&c=3")
	require.NoError(t, err)
	second, err := url.ParseQuery("c=3&a=1&b=2")
	require.NoError(t, err)

	assert.Equal(t, CacheKey("/orders", first), CacheKey("/orders", second))
}

func newCachedRouter(store *mocks.MockResponseCache, ttl time.Duration, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders", Cached(store, ttl, zap.NewNop()), handler)
	return r
}

func TestCached_MissThenHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockResponseCache(ctrl)
	ttl := time.Minute
	invocations := 0

	router := newCachedRouter(store, ttl, func(c *gin.Context) {
		invocations++
		c.JSON(http.StatusOK, gin.H{"orders": []int{1, 2}})
	})

	payload := `{"orders":[1,2]}`

	// First request misses and stores the handler's response.
	store.EXPECT().Get(gomock.Any(), "/orders|a-1|b-2").Return(nil, nil)
	store.EXPECT().Set(gomock.Any(), "/orders|a-1|b-2", []byte(payload), ttl).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders?b=2&a=1", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.String())
	assert.Equal(t, 1, invocations)

	// Reordered params hit the same key; the handler never runs.
	store.EXPECT().Get(gomock.Any(), "/orders|a-1|b-2").Return([]byte(payload), nil)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders?a=1&b=2", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.String())
	assert.Equal(t, 1, invocations)
}

func TestCached_NonOKResponseIsNotCached(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockResponseCache(ctrl)
	router := newCachedRouter(store, time.Minute, func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	})

	store.EXPECT().Get(gomock.Any(), "/orders").Return(nil, nil)
	store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCached_StoreFailureFallsThrough(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockResponseCache(ctrl)
	invocations := 0
	router := newCachedRouter(store, time.Minute, func(c *gin.Context) {
		invocations++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	store.EXPECT().Get(gomock.Any(), "/orders").Return(nil, errors.New("redis down"))
	store.EXPECT().Set(gomock.Any(), "/orders", gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, invocations)
}
