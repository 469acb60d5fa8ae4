package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/shortener"
)

// RequestMeta adds the referer and user agent to the request context for the
// analytics recorder. The client IP is deliberately not extracted: the core
// never sees it.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := shortener.RequestMeta{
			Referer:   ctx.Header("Referer"),
			UserAgent: ctx.Header("User-Agent"),
		}

		newCtx := shortener.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}
