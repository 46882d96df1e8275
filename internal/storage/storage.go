// Package storage persists the user registry and the exchange-rate cache row.
package storage

import (
	"context"
	"time"
)

// User is a registered bot user. Created on first interaction, mutated only by
// ban/unban, never deleted.
type User struct {
	ID       int64  `db:"user_id"`
	Username string `db:"username"`
	Banned   bool   `db:"banned"`
}

// RateCache is the single persisted snapshot of exchange rates versus the base
// currency. Rates is either empty (never fetched) or a complete snapshot from
// one successful fetch.
type RateCache struct {
	FetchedAt time.Time
	Rates     map[string]float64
}

// UserDirectory is the contract for the persisted user registry.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]User, error)
	UpsertUser(ctx context.Context, id int64, username string) error
	SetBanned(ctx context.Context, id int64, banned bool) error
	BannedIDs(ctx context.Context) (map[int64]struct{}, error)
}

// RateCacheStore is the contract for the exchange-rate cache document.
// Writes are wholesale overwrites; last-writer-wins.
type RateCacheStore interface {
	Get(ctx context.Context) (RateCache, error)
	Put(ctx context.Context, rates map[string]float64) error
}
