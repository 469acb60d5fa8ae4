package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupTestAPI(t *testing.T) (*chi.Mux, huma.API) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	return router, api
}

func TestRequestMeta(t *testing.T) {
	t.Run("puts referer and user-agent into the request context", func(t *testing.T) {
		router, api := setupTestAPI(t)

		ctxChan := make(chan context.Context, 1)

		huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
			ctxChan <- ctx

			return &testOutput{Body: "ok"}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("User-Agent", testUserAgent)
		req.Header.Set("Referer", "https://example.com/page")

		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := shortener.RequestMetaFromContext(<-ctxChan)
		assert.Equal(t, testUserAgent, meta.UserAgent)
		assert.Equal(t, "https://example.com/page", meta.Referer)
	})

	t.Run("leaves metadata empty when headers are absent", func(t *testing.T) {
		router, api := setupTestAPI(t)

		ctxChan := make(chan context.Context, 1)

		huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
			ctxChan <- ctx

			return &testOutput{Body: "ok"}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Del("User-Agent")

		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := shortener.RequestMetaFromContext(<-ctxChan)
		assert.Empty(t, meta.Referer)
		assert.Empty(t, meta.UserAgent)
	})
}
