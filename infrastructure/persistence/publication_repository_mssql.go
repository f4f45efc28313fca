package persistence

import (
	"context"
	"database/sql"
	"time"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
)

// PublicationRepositoryMSSQL is the SQL Server variant of the publish audit log.
type PublicationRepositoryMSSQL struct{ db *sql.DB }

func NewPublicationRepositoryMSSQL(db *sql.DB) repository.IPublication {
	return &PublicationRepositoryMSSQL{db}
}

func (r *PublicationRepositoryMSSQL) RecordAttempt(ctx context.Context, pub *model.Publication) error {
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO dbo.[publications] (video_id, platform, status, remote_id, post_url, error_message, created_at) VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7)`,
		pub.VideoID, string(pub.Platform), pub.Status, pub.RemoteID, pub.PostURL, pub.ErrorMessage, pub.CreatedAt)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":    err,
			"video_id": pub.VideoID,
			"platform": pub.Platform,
		}).Error("mssql: record publish attempt failed")
	}
	return err
}

func (r *PublicationRepositoryMSSQL) History(ctx context.Context, videoID string) ([]*model.Publication, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, video_id, platform, status, remote_id, post_url, error_message, created_at FROM dbo.[publications] WHERE video_id = @p1 ORDER BY created_at DESC`, videoID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mssql: query publish history failed")
		return nil, err
	}
	defer rows.Close()

	var list []*model.Publication
	for rows.Next() {
		pub := &model.Publication{}
		var platform string
		var remoteID, postURL, errMsg sql.NullString
		if err := rows.Scan(&pub.ID, &pub.VideoID, &platform, &pub.Status, &remoteID, &postURL, &errMsg, &pub.CreatedAt); err != nil {
			return nil, err
		}
		pub.Platform = model.Platform(platform)
		if remoteID.Valid {
			pub.RemoteID = &remoteID.String
		}
		if postURL.Valid {
			pub.PostURL = &postURL.String
		}
		if errMsg.Valid {
			pub.ErrorMessage = &errMsg.String
		}
		list = append(list, pub)
	}
	return list, rows.Err()
}
