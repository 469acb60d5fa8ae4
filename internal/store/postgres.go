package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// Postgres error code for unique_violation. Matched structurally via
// pgconn.PgError, never by message text.
const uniqueViolationCode = "23505"

// PostgresStore is the PostgreSQL implementation of shortener.Store. The
// unique constraint on urls.code is the uniqueness authority for permanent
// mappings; RecordClick runs as a single statement so concurrent redirects
// never lose an increment or an analytics entry.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Insert(ctx context.Context, originalURL, code string) (*shortener.URL, error) {
	query := `
		INSERT INTO urls (code, original_url)
		VALUES ($1, $2)
		RETURNING id, code, original_url, clicks, analytics, created_at, updated_at
	`

	rec, err := p.scanURL(p.pool.QueryRow(ctx, query, code, originalURL))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, shortener.ErrCodeExists
		}

		return nil, fmt.Errorf("insert url record: %w", err)
	}

	return rec, nil
}

func (p *PostgresStore) FindByCode(ctx context.Context, code string) (*shortener.URL, error) {
	query := `
		SELECT id, code, original_url, clicks, analytics, created_at, updated_at
		FROM urls
		WHERE code = $1
	`

	rec, err := p.scanURL(p.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("find url record: %w", err)
	}

	return rec, nil
}

// RecordClick increments the counter and appends the event to the analytics
// ring in one UPDATE. The subquery keeps the most recent MaxClickEvents
// entries in chronological order, so the whole read-modify-write is atomic
// from the store's perspective.
func (p *PostgresStore) RecordClick(ctx context.Context, id int64, event shortener.ClickEvent) error {
	payload, err := json.Marshal([]shortener.ClickEvent{event})
	if err != nil {
		return fmt.Errorf("encode click event: %w", err)
	}

	query := `
		UPDATE urls
		SET clicks = clicks + 1,
		    analytics = (
		        SELECT COALESCE(jsonb_agg(elem ORDER BY ord), '[]'::jsonb)
		        FROM (
		            SELECT elem, ord
		            FROM jsonb_array_elements(COALESCE(analytics, '[]'::jsonb) || $2::jsonb)
		                WITH ORDINALITY AS t(elem, ord)
		            ORDER BY ord DESC
		            LIMIT $3
		        ) AS recent
		    ),
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query, id, payload, shortener.MaxClickEvents)
	if err != nil {
		return fmt.Errorf("record click: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) scanURL(row pgx.Row) (*shortener.URL, error) {
	var rec shortener.URL

	err := row.Scan(
		&rec.ID,
		&rec.Code,
		&rec.OriginalURL,
		&rec.Clicks,
		&rec.Analytics,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// Compile-time check.
var _ shortener.Store = (*PostgresStore)(nil)
