package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/analytics"
)

// Postgres persists analytics events to their own tables, separate from the
// urls table. Inserts are idempotent on event id so redelivered messages do
// not double count.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) SaveAccess(ctx context.Context, event *analytics.AccessEvent) error {
	query := `
		INSERT INTO url_access_events (id, code, referer_domain, user_agent_family, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Code,
		event.RefererDomain,
		event.UserAgentFamily,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("save access event: %w", err)
	}

	return nil
}

func (p *Postgres) SaveLookupFailed(ctx context.Context, event *analytics.LookupFailedEvent) error {
	query := `
		INSERT INTO url_lookup_failures (id, code, occurred_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Code,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("save lookup failure event: %w", err)
	}

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Postgres)(nil)
