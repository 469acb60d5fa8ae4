package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecorder_RecordRedirect(t *testing.T) {
	ctx := context.Background()

	t.Run("records the click and publishes an access event", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		clock := shortener.NewMockClock(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))

		var published []analytics.AccessEvent

		recorder := analytics.NewRecorder(
			memStore,
			func(event *analytics.AccessEvent) error {
				published = append(published, *event)
				return nil
			},
			func(_ *analytics.LookupFailedEvent) error { return nil },
			clock,
			zap.NewNop(),
		)

		rec, err := memStore.Insert(ctx, "https://example.com", "abcd")
		require.NoError(t, err)

		meta := shortener.RequestMeta{
			Referer:   "https://blog.example.org/post/1",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0",
		}

		require.NoError(t, recorder.RecordRedirect(ctx, rec, meta))

		got, err := memStore.FindByCode(ctx, "abcd")
		require.NoError(t, err)
		assert.EqualValues(t, 1, got.Clicks)
		require.Len(t, got.Analytics, 1)
		assert.Equal(t, clock.Now().UTC(), got.Analytics[0].Timestamp)

		require.Len(t, published, 1)
		assert.NotEmpty(t, published[0].EventID)
		assert.Equal(t, "abcd", published[0].Code)
		require.NotNil(t, published[0].RefererDomain)
		assert.Equal(t, "blog.example.org", *published[0].RefererDomain)
		assert.Equal(t, "Firefox", published[0].UserAgentFamily)
	})

	t.Run("fails when the click cannot be stored", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		var published int

		recorder := analytics.NewRecorder(
			memStore,
			func(_ *analytics.AccessEvent) error {
				published++
				return nil
			},
			func(_ *analytics.LookupFailedEvent) error { return nil },
			nil,
			zap.NewNop(),
		)

		ghost := &shortener.URL{ID: 42, Code: "gone"}

		err := recorder.RecordRedirect(ctx, ghost, shortener.RequestMeta{})

		assert.ErrorIs(t, err, shortener.ErrNotFound)
		assert.Zero(t, published)
	})

	t.Run("tolerates a publish failure", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		recorder := analytics.NewRecorder(
			memStore,
			func(_ *analytics.AccessEvent) error { return errors.New("stream down") },
			func(_ *analytics.LookupFailedEvent) error { return nil },
			nil,
			zap.NewNop(),
		)

		rec, err := memStore.Insert(ctx, "https://example.com", "abcd")
		require.NoError(t, err)

		assert.NoError(t, recorder.RecordRedirect(ctx, rec, shortener.RequestMeta{}))

		got, err := memStore.FindByCode(ctx, "abcd")
		require.NoError(t, err)
		assert.EqualValues(t, 1, got.Clicks)
	})

	t.Run("omits the referer domain when the referer is unusable", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		var published []analytics.AccessEvent

		recorder := analytics.NewRecorder(
			memStore,
			func(event *analytics.AccessEvent) error {
				published = append(published, *event)
				return nil
			},
			func(_ *analytics.LookupFailedEvent) error { return nil },
			nil,
			zap.NewNop(),
		)

		rec, err := memStore.Insert(ctx, "https://example.com", "abcd")
		require.NoError(t, err)

		require.NoError(t, recorder.RecordRedirect(ctx, rec, shortener.RequestMeta{Referer: "::not a url::"}))

		require.Len(t, published, 1)
		assert.Nil(t, published[0].RefererDomain)
	})
}

func TestRecorder_RecordNotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a lookup failure event", func(t *testing.T) {
		clock := shortener.NewMockClock(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))

		var published []analytics.LookupFailedEvent

		recorder := analytics.NewRecorder(
			store.NewMemoryStore(),
			func(_ *analytics.AccessEvent) error { return nil },
			func(event *analytics.LookupFailedEvent) error {
				published = append(published, *event)
				return nil
			},
			clock,
			zap.NewNop(),
		)

		recorder.RecordNotFound(ctx, "zzzz", shortener.RequestMeta{})

		require.Len(t, published, 1)
		assert.NotEmpty(t, published[0].EventID)
		assert.Equal(t, "zzzz", published[0].Code)
		assert.Equal(t, clock.Now().UTC(), published[0].OccurredAt)
	})

	t.Run("swallows a publish failure", func(t *testing.T) {
		recorder := analytics.NewRecorder(
			store.NewMemoryStore(),
			func(_ *analytics.AccessEvent) error { return nil },
			func(_ *analytics.LookupFailedEvent) error { return errors.New("stream down") },
			nil,
			zap.NewNop(),
		)

		assert.NotPanics(t, func() {
			recorder.RecordNotFound(ctx, "zzzz", shortener.RequestMeta{})
		})
	})
}

func TestRefererDomain(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    *string
	}{
		{"full url", "https://News.Ycombinator.com/item?id=1", ptr("news.ycombinator.com")},
		{"with port", "https://example.com:8443/path", ptr("example.com")},
		{"empty", "", nil},
		{"garbage", "::not a url::", nil},
		{"no host", "/relative/path", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.RefererDomain(tt.referer)

			if tt.want == nil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func ptr(s string) *string {
	return &s
}
