package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening and redirect operations.
type URLHandler struct {
	engine   *shortener.Engine
	resolver *shortener.Resolver
	logger   *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(engine *shortener.Engine, resolver *shortener.Resolver, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		engine:   engine,
		resolver: resolver,
		logger:   logger,
	}
}

// Shorten creates a permanent or ephemeral short URL.
func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	result, err := h.engine.Shorten(ctx, req.Body.URL, req.Body.Minutes)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error422UnprocessableEntity("url must be an absolute http(s) URL with an allowed host")
		case errors.Is(err, shortener.ErrInvalidExpiry):
			return nil, huma.Error422UnprocessableEntity("minutes must be between 0 and 525960")
		case errors.Is(err, shortener.ErrCodeSpaceExhausted):
			h.logger.Error("short code space under pressure", zap.Error(err))
			return nil, huma.Error500InternalServerError("unable to allocate a short code")
		default:
			h.logger.Error("failed to shorten url", zap.Error(err))
			return nil, huma.Error500InternalServerError("failed to shorten url")
		}
	}

	resp := &ShortenResponse{}
	resp.Body.Code = result.Code
	resp.Body.OriginalURL = result.OriginalURL
	resp.Body.ShortenedURL = result.ShortURL

	return resp, nil
}

// Redirect resolves a short code to its destination.
func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	dest, err := h.resolver.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found or expired")
		}

		h.logger.Error("failed to resolve short code",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve short url")
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = dest

	return resp, nil
}
