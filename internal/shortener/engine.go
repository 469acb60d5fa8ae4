package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config bounds code allocation and caching. Zero values fall back to the
// production defaults so tests can set only what they care about.
type Config struct {
	// BaseURL is the absolute prefix of returned short links, without a
	// trailing slash.
	BaseURL string

	// MaxRetries caps generation attempts before giving up with
	// ErrCodeSpaceExhausted.
	MaxRetries int

	// CacheTTL is how long a permanent mapping is primed in the cache.
	CacheTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}

	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}

	return c
}

// Result is the outcome of a successful shorten call.
type Result struct {
	Code        string
	OriginalURL string
	ShortURL    string
}

// Engine allocates short codes and writes mappings. Permanent mappings go to
// the store (cache primed as an accelerator); ephemeral mappings live only in
// the cache and expire through its TTL.
type Engine struct {
	store     Store
	cache     Cache
	generate  CodeGenerator
	validator *Validator
	cfg       Config
	logger    *zap.Logger
}

// NewEngine creates a shortening engine.
func NewEngine(store Store, cache Cache, generate CodeGenerator, validator *Validator, cfg Config, logger *zap.Logger) *Engine {
	return &Engine{
		store:     store,
		cache:     cache,
		generate:  generate,
		validator: validator,
		cfg:       cfg.withDefaults(),
		logger:    logger,
	}
}

// Shorten maps originalURL to a fresh code. minutes == 0 creates a permanent
// record; minutes > 0 creates a cache-only mapping with that lifetime.
// Validation failures are returned before any side effect.
func (e *Engine) Shorten(ctx context.Context, originalURL string, minutes int) (*Result, error) {
	if !e.validator.IsValid(originalURL) {
		return nil, ErrInvalidURL
	}

	if minutes < 0 || minutes > MaxMinutes {
		return nil, ErrInvalidExpiry
	}

	for attempt := 0; attempt < e.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code := e.generate()

		if minutes > 0 {
			taken, err := e.codeTaken(ctx, code)
			if err != nil {
				return nil, err
			}

			if taken {
				continue
			}

			ttl := time.Duration(minutes) * time.Minute
			if err := e.cache.Put(ctx, CacheKey(code), originalURL, ttl); err != nil {
				// The cache is the only storage for ephemeral mappings,
				// so this failure is fatal.
				return nil, fmt.Errorf("store ephemeral mapping: %w", err)
			}

			return e.result(originalURL, code), nil
		}

		// A live ephemeral key owns the code too; both namespaces share one
		// code space. The check is advisory, the unique constraint decides.
		if live, err := e.cache.Has(ctx, CacheKey(code)); err != nil {
			e.logger.Warn("ephemeral collision check unavailable",
				zap.String("code", code),
				zap.Error(err),
			)
		} else if live {
			continue
		}

		rec, err := e.store.Insert(ctx, originalURL, code)
		if err != nil {
			if errors.Is(err, ErrCodeExists) {
				continue
			}

			return nil, err
		}

		// Prime the cache so the first resolve skips the store. Best effort:
		// the store remains the source of truth.
		if err := e.cache.Put(ctx, CacheKey(code), rec.OriginalURL, e.cfg.CacheTTL); err != nil {
			e.logger.Warn("failed to prime cache",
				zap.String("code", code),
				zap.Error(err),
			)
		}

		return e.result(originalURL, code), nil
	}

	return nil, ErrCodeSpaceExhausted
}

// codeTaken checks both namespaces before an ephemeral allocation. Cache
// back-ends lack atomic unique-insert semantics, so an explicit existence
// check is the best available collision guard on this path.
func (e *Engine) codeTaken(ctx context.Context, code string) (bool, error) {
	has, err := e.cache.Has(ctx, CacheKey(code))
	if err != nil {
		return false, fmt.Errorf("check ephemeral namespace: %w", err)
	}

	if has {
		return true, nil
	}

	_, err = e.store.FindByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("check permanent namespace: %w", err)
	}

	return true, nil
}

func (e *Engine) result(originalURL, code string) *Result {
	return &Result{
		Code:        code,
		OriginalURL: originalURL,
		ShortURL:    e.cfg.BaseURL + "/" + code,
	}
}
