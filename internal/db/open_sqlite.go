//go:build !mem

package db

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mithrel/firesale/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Touch(ctx context.Context, path, digest string, at time.Time) error {
	_, err := conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO recent_documents(path, opened_at, opens, digest)
VALUES(?, ?, 1, ?)
ON CONFLICT(path) DO UPDATE SET
  opened_at = excluded.opened_at,
  opens = recent_documents.opens + 1,
  digest = excluded.digest`, path, at.UTC(), digest)
	return err
}

func (s *sqliteStore) Get(ctx context.Context, path string) (api.RecentDocument, error) {
	var d api.RecentDocument
	err := conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT path, opened_at, opens, digest FROM recent_documents WHERE path = ?`, path).
		Scan(&d.Path, &d.OpenedAt, &d.Opens, &d.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return api.RecentDocument{}, ErrNotFound
	}
	return d, err
}

func (s *sqliteStore) List(ctx context.Context, limit int) ([]api.RecentDocument, error) {
	q := `SELECT path, opened_at, opens, digest FROM recent_documents ORDER BY opened_at DESC, path ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := conn(ctx, s.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.RecentDocument
	for rows.Next() {
		var d api.RecentDocument
		if err := rows.Scan(&d.Path, &d.OpenedAt, &d.Opens, &d.Digest); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Remove(ctx context.Context, path string) error {
	_, err := conn(ctx, s.db).ExecContext(ctx, `DELETE FROM recent_documents WHERE path = ?`, path)
	return err
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	_, err := conn(ctx, s.db).ExecContext(ctx, `DELETE FROM recent_documents`)
	return err
}

func (s *sqliteStore) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := conn(ctx, s.db).ExecContext(ctx, `
DELETE FROM recent_documents WHERE path NOT IN (
  SELECT path FROM recent_documents ORDER BY opened_at DESC, path ASC LIMIT ?
)`, keep)
	return err
}

// remember runs Touch and Prune in one transaction.
func (s *sqliteStore) remember(ctx context.Context, path, digest string, at time.Time, keep int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	txctx := WithTx(ctx, tx)
	if err := s.Touch(txctx, path, digest, at); err != nil {
		return err
	}
	if err := s.Prune(txctx, keep); err != nil {
		return err
	}
	return tx.Commit()
}

func openSQLite(ctx context.Context, dsn string) (*Store, io.Closer, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	return &Store{Recent: &sqliteStore{db: dbh}}, dbh, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS recent_documents (
  path TEXT PRIMARY KEY,
  opened_at TIMESTAMP NOT NULL,
  opens INTEGER NOT NULL DEFAULT 1,
  digest TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_recent_opened ON recent_documents(opened_at DESC, path);
`)
	return err
}
