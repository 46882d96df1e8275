package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/ulugdev/yordamchi/internal/logger"
)

// UserRepo implements UserDirectory over Postgres.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ListUsers returns every registered user.
func (r *UserRepo) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	query := `SELECT user_id, username, banned FROM users ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpsertUser registers a user or refreshes the stored display name.
// The ban flag is never touched here.
func (r *UserRepo) UpsertUser(ctx context.Context, id int64, username string) error {
	query := `
		INSERT INTO users (user_id, username, banned)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (user_id)
		DO UPDATE SET username = EXCLUDED.username
	`
	if _, err := r.db.ExecContext(ctx, query, id, username); err != nil {
		return fmt.Errorf("upsert user %d: %w", id, err)
	}
	logger.DB.Debug("user upserted",
		slog.String("event", "users.upsert"),
		slog.Int64("user_id", id),
	)
	return nil
}

// SetBanned flips the ban flag for the given user id.
func (r *UserRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	query := `UPDATE users SET banned = $2 WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, banned); err != nil {
		return fmt.Errorf("set banned %d: %w", id, err)
	}
	logger.DB.Info("user ban flag updated",
		slog.String("event", "users.set_banned"),
		slog.Int64("user_id", id),
		slog.Bool("banned", banned),
	)
	return nil
}

// BannedIDs returns the set of banned user ids.
func (r *UserRepo) BannedIDs(ctx context.Context) (map[int64]struct{}, error) {
	var ids []int64
	query := `SELECT user_id FROM users WHERE banned`
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("banned ids: %w", err)
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
