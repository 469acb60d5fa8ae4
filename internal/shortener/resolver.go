package shortener

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Resolver looks up a code across the cache and the store. Cache hits serve
// both ephemeral and warm permanent mappings; store hits repopulate the cache.
type Resolver struct {
	store     Store
	cache     Cache
	validator *Validator
	recorder  ClickRecorder
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewResolver creates a resolver. cacheTTL applies when repopulating the
// cache after a store hit; zero falls back to DefaultCacheTTL.
func NewResolver(store Store, cache Cache, validator *Validator, recorder ClickRecorder, cacheTTL time.Duration, logger *zap.Logger) *Resolver {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &Resolver{
		store:     store,
		cache:     cache,
		validator: validator,
		recorder:  recorder,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Resolve returns the destination for code, or ErrNotFound when the code is
// unknown, expired, or its destination no longer passes validation.
func (r *Resolver) Resolve(ctx context.Context, code string) (string, error) {
	meta := RequestMetaFromContext(ctx)
	key := CacheKey(code)

	dest, err := r.cache.Get(ctx, key)

	switch {
	case err == nil:
		if !r.validator.IsValid(dest) {
			r.recorder.RecordNotFound(ctx, code, meta)
			return "", ErrNotFound
		}

		r.recordCacheHit(ctx, code, meta)

		return dest, nil

	case !errors.Is(err, ErrCacheMiss):
		// Degraded cache: the store can still serve the lookup.
		r.logger.Warn("cache lookup failed",
			zap.String("code", code),
			zap.Error(err),
		)
	}

	rec, err := r.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.recorder.RecordNotFound(ctx, code, meta)
		}

		return "", err
	}

	if !r.validator.IsValid(rec.OriginalURL) {
		r.recorder.RecordNotFound(ctx, code, meta)
		return "", ErrNotFound
	}

	if err := r.cache.Put(ctx, key, rec.OriginalURL, r.cacheTTL); err != nil {
		r.logger.Warn("failed to repopulate cache",
			zap.String("code", code),
			zap.Error(err),
		)
	}

	if err := r.recorder.RecordRedirect(ctx, rec, meta); err != nil {
		r.logger.Error("failed to record redirect",
			zap.String("code", code),
			zap.Error(err),
		)
	}

	return rec.OriginalURL, nil
}

// recordCacheHit attributes a cache hit to its permanent record, if one
// exists. Ephemeral mappings have no backing record and stay invisible to
// analytics. The probe happens inside the recorder path, not resolution:
// the redirect is already decided by the time it runs.
func (r *Resolver) recordCacheHit(ctx context.Context, code string, meta RequestMeta) {
	rec, err := r.store.FindByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Error("failed to load record for analytics",
				zap.String("code", code),
				zap.Error(err),
			)
		}

		return
	}

	if err := r.recorder.RecordRedirect(ctx, rec, meta); err != nil {
		r.logger.Error("failed to record redirect",
			zap.String("code", code),
			zap.Error(err),
		)
	}
}
