package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// rateCacheID is the primary key of the single rates row.
const rateCacheID = "rates"

// RateCacheRepo implements RateCacheStore over Postgres. The table holds at
// most one row; writes overwrite it wholesale.
type RateCacheRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewRateCacheRepo creates a new rate cache repository.
func NewRateCacheRepo(db *sqlx.DB) *RateCacheRepo {
	return &RateCacheRepo{db: db, now: time.Now}
}

// Get returns the cached snapshot. A missing row yields a zero RateCache with
// empty rates, not an error.
func (r *RateCacheRepo) Get(ctx context.Context) (RateCache, error) {
	var row struct {
		FetchedAt int64  `db:"fetched_at"`
		Rates     []byte `db:"rates"`
	}
	query := `SELECT fetched_at, rates FROM rate_cache WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, rateCacheID)
	if errors.Is(err, sql.ErrNoRows) {
		return RateCache{Rates: map[string]float64{}}, nil
	}
	if err != nil {
		return RateCache{}, fmt.Errorf("get rate cache: %w", err)
	}

	rates := map[string]float64{}
	if len(row.Rates) > 0 {
		if err := json.Unmarshal(row.Rates, &rates); err != nil {
			return RateCache{}, fmt.Errorf("decode rate cache: %w", err)
		}
	}
	return RateCache{
		FetchedAt: time.Unix(row.FetchedAt, 0),
		Rates:     rates,
	}, nil
}

// Put overwrites the snapshot wholesale and stamps the current time.
func (r *RateCacheRepo) Put(ctx context.Context, rates map[string]float64) error {
	payload, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("encode rate cache: %w", err)
	}
	query := `
		INSERT INTO rate_cache (id, fetched_at, rates)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET fetched_at = EXCLUDED.fetched_at, rates = EXCLUDED.rates
	`
	if _, err := r.db.ExecContext(ctx, query, rateCacheID, r.now().Unix(), payload); err != nil {
		return fmt.Errorf("put rate cache: %w", err)
	}
	return nil
}
