package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStorage is the local key/value store used by default. Each profile
// owns a "token" and a "userInfo" row.
type SQLiteStorage struct {
	db      *sql.DB
	profile string
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for a
// throwaway store.
func OpenSQLite(ctx context.Context, path, profile string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db, profile: profile}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS local_storage (
		profile TEXT NOT NULL,
		key     TEXT NOT NULL,
		value   TEXT NOT NULL,
		PRIMARY KEY (profile, key)
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create local_storage: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE profile = ? AND key = ?`, s.profile, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (State, error) {
	token, err := s.get(ctx, keyToken)
	if err != nil {
		return State{}, err
	}
	raw, err := s.get(ctx, keyUserInfo)
	if err != nil {
		return State{}, err
	}
	// An unreadable profile leaves a half session, which Restore discards.
	user, _ := decodeUser(raw)
	return State{Token: token, User: user}, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, st State) error {
	raw, err := encodeUser(st.User)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	upsert := `INSERT INTO local_storage (profile, key, value) VALUES (?, ?, ?)
		ON CONFLICT (profile, key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, s.profile, keyToken, st.Token); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, s.profile, keyUserInfo, raw); err != nil {
		return fmt.Errorf("write user info: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM local_storage WHERE profile = ? AND key IN (?, ?)`, s.profile, keyToken, keyUserInfo)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
