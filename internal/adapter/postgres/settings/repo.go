// Package settings stores installation-wide key/value settings.
package settings

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/election-backend/internal/adapter/postgres"
	"github.com/heartmarshall/election-backend/internal/domain"
)

// Repo provides system_settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (r *Repo) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	query, args, err := postgres.Builder().
		Select("value").
		From("system_settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select setting: %w", err)
	}

	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&value)
	if err != nil {
		mapped := postgres.MapError(err, "setting", key)
		if errors.Is(mapped, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, mapped
	}
	return value, true, nil
}

// Set creates or replaces the value stored under key.
func (r *Repo) Set(ctx context.Context, key, value string) error {
	query, args, err := postgres.Builder().
		Insert("system_settings").
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert setting: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "setting", key)
	}
	return nil
}
