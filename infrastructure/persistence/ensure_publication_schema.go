package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsurePublicationSchema creates the publish audit table and adds newer
// columns if they are missing. Safe to call at startup.
func EnsurePublicationSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	create := `CREATE TABLE IF NOT EXISTS publications (
		id BIGSERIAL PRIMARY KEY,
		video_id TEXT NOT NULL,
		platform TEXT NOT NULL,
		status TEXT NOT NULL,
		remote_id TEXT,
		error_message TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating publications table failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_publications_video_id ON publications (video_id, created_at DESC)`); err != nil {
		return fmt.Errorf("creating publications index failed: %w", err)
	}

	checks := []struct {
		table  string
		column string
		ddl    string
	}{
		{"publications", "post_url", "ALTER TABLE publications ADD COLUMN post_url TEXT"},
	}

	for _, c := range checks {
		exists, err := columnExists(ctx, db, c.table, c.column)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := db.ExecContext(ctx, c.ddl); err != nil {
				return fmt.Errorf("adding column %s.%s failed: %w", c.table, c.column, err)
			}
		}
	}
	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	row := db.QueryRowContext(ctx, `SELECT 1 FROM information_schema.columns WHERE table_name=$1 AND column_name=$2`, table, column)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
