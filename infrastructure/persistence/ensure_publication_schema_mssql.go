package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsurePublicationSchemaMSSQL ensures the publish audit table exists in MSSQL.
func EnsurePublicationSchemaMSSQL(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	create := `IF OBJECT_ID('dbo.publications', 'U') IS NULL BEGIN
		CREATE TABLE dbo.[publications] (
			id BIGINT IDENTITY(1,1) PRIMARY KEY,
			video_id NVARCHAR(64) NOT NULL,
			platform NVARCHAR(32) NOT NULL,
			status NVARCHAR(16) NOT NULL,
			remote_id NVARCHAR(255) NULL,
			post_url NVARCHAR(512) NULL,
			error_message NVARCHAR(MAX) NULL,
			created_at DATETIMEOFFSET NOT NULL DEFAULT SYSDATETIMEOFFSET()
		)
	END`
	if _, err := db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating publications table failed: %w", err)
	}

	addIfMissing := func(table, column, ddl string) error {
		q := fmt.Sprintf(`IF COL_LENGTH('%s', '%s') IS NULL BEGIN %s END`, table, column, ddl)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure column %s.%s: %w", table, column, err)
		}
		return nil
	}
	return addIfMissing("dbo.publications", "post_url", "ALTER TABLE dbo.[publications] ADD post_url NVARCHAR(512) NULL")
}
