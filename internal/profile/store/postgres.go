package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dermis/internal/profile"
	id "dermis/pkg/domain"
	"dermis/pkg/platform/sentinel"
)

// Schema is the table this store expects. Snapshots are append-only; the
// profile body is a JSON document so profile fields evolve without migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS skin_profiles (
	user_id    UUID        NOT NULL,
	version    INT         NOT NULL,
	body       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, version)
)`

// Postgres persists profile snapshots in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Latest returns the highest-version snapshot for the user.
func (s *Postgres) Latest(ctx context.Context, userID id.UserID) (*profile.SkinProfile, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `
		SELECT body FROM skin_profiles
		WHERE user_id = $1
		ORDER BY version DESC
		LIMIT 1
	`, userID.String()).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest profile: %w", err)
	}

	var snap profile.SkinProfile
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode profile body: %w", err)
	}
	return &snap, nil
}

// Save appends a snapshot. The (user_id, version) primary key turns a version
// race into sentinel.ErrVersionConflict rather than silent overwrite.
func (s *Postgres) Save(ctx context.Context, snap profile.SkinProfile) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode profile body: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO skin_profiles (user_id, version, body, created_at)
		VALUES ($1, $2, $3, $4)
	`, snap.UserID.String(), int(snap.Version), body, snap.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrVersionConflict
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Version returns a specific snapshot version for the user.
func (s *Postgres) Version(ctx context.Context, userID id.UserID, version id.ProfileVersion) (*profile.SkinProfile, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `
		SELECT body FROM skin_profiles
		WHERE user_id = $1 AND version = $2
	`, userID.String(), int(version)).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile version: %w", err)
	}

	var snap profile.SkinProfile
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode profile body: %w", err)
	}
	return &snap, nil
}
