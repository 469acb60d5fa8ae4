package shortener

import "context"

type requestMetaKey struct{}

// RequestMeta is the request metadata the HTTP layer extracts for analytics.
// It deliberately carries no client IP: the core never sees one.
type RequestMeta struct {
	Referer   string
	UserAgent string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
