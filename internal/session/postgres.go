package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage keeps one row per profile in storefront_sessions.
type PostgresStorage struct {
	pool    *pgxpool.Pool
	profile string
}

func NewPostgresStorage(pool *pgxpool.Pool, profile string) *PostgresStorage {
	return &PostgresStorage{pool: pool, profile: profile}
}

// EnsureSchema creates the sessions table if it is missing.
func (p *PostgresStorage) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS storefront_sessions (
			profile    TEXT PRIMARY KEY,
			token      TEXT NOT NULL,
			user_info  JSONB,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create storefront_sessions: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Load(ctx context.Context) (State, error) {
	var (
		token string
		raw   *string
	)
	err := p.pool.QueryRow(ctx,
		`SELECT token, user_info::text FROM storefront_sessions WHERE profile = $1`, p.profile,
	).Scan(&token, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}

	st := State{Token: token}
	if raw != nil {
		st.User, _ = decodeUser(*raw)
	}
	return st, nil
}

func (p *PostgresStorage) Save(ctx context.Context, st State) error {
	raw, err := encodeUser(st.User)
	if err != nil {
		return err
	}
	var userInfo *string
	if raw != "" {
		userInfo = &raw
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO storefront_sessions (profile, token, user_info, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (profile) DO UPDATE
		SET token = EXCLUDED.token, user_info = EXCLUDED.user_info, updated_at = NOW()
	`, p.profile, st.Token, userInfo)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Clear(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM storefront_sessions WHERE profile = $1`, p.profile); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
