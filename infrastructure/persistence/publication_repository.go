package persistence

import (
	"context"
	"database/sql"
	"time"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
)

// PublicationRepository keeps the append-only publish attempt log in PostgreSQL.
// The authoritative per-platform state lives on the video document; these rows
// exist so the dashboard can show attempt history across videos.
type PublicationRepository struct {
	db *sql.DB
}

func NewPublicationRepository(db *sql.DB) repository.IPublication {
	return &PublicationRepository{db: db}
}

func (r *PublicationRepository) RecordAttempt(ctx context.Context, pub *model.Publication) error {
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = time.Now().UTC()
	}
	stmt, err := r.db.PrepareContext(ctx, `INSERT INTO publications (video_id, platform, status, remote_id, post_url, error_message, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while prepare statement")
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, pub.VideoID, string(pub.Platform), pub.Status, pub.RemoteID, pub.PostURL, pub.ErrorMessage, pub.CreatedAt); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":    err,
			"video_id": pub.VideoID,
			"platform": pub.Platform,
		}).Error("Error while record publish attempt")
		return err
	}
	return nil
}

func (r *PublicationRepository) History(ctx context.Context, videoID string) ([]*model.Publication, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, video_id, platform, status, remote_id, post_url, error_message, created_at FROM publications WHERE video_id = $1 ORDER BY created_at DESC`, videoID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while query publish history")
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
