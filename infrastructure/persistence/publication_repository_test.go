package persistence

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"content-ops/domain/model"
)

func TestPublicationRepository_RecordAttempt_Published(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)

	remoteID := "yt-abc123"
	postURL := "https://www.youtube.com/watch?v=yt-abc123"
	createdAt := time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO publications (video_id, platform, status, remote_id, post_url, error_message, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`)).
		ExpectExec().
		WithArgs("vid-1", "youtube", "published", &remoteID, &postURL, nil, createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repository.RecordAttempt(context.Background(), &model.Publication{
		VideoID:   "vid-1",
		Platform:  model.PlatformYouTube,
		Status:    "published",
		RemoteID:  &remoteID,
		PostURL:   &postURL,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationRepository_RecordAttempt_FailedKeepsErrorMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)

	errMsg := "media rejected: unsupported aspect ratio"
	createdAt := time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO publications`)).
		ExpectExec().
		WithArgs("vid-1", "tiktok", "failed", nil, nil, &errMsg, createdAt).
		WillReturnResult(sqlmock.NewResult(2, 1))

	err = repository.RecordAttempt(context.Background(), &model.Publication{
		VideoID:      "vid-1",
		Platform:     model.PlatformTikTok,
		Status:       "failed",
		ErrorMessage: &errMsg,
		CreatedAt:    createdAt,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationRepository_History(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)

	createdAt := time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "video_id", "platform", "status", "remote_id", "post_url", "error_message", "created_at"}).
		AddRow(2, "vid-1", "instagram", "failed", nil, nil, "rate limited", createdAt).
		AddRow(1, "vid-1", "youtube", "published", "yt-abc123", "https://www.youtube.com/watch?v=yt-abc123", nil, createdAt.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, video_id, platform, status, remote_id, post_url, error_message, created_at FROM publications WHERE video_id = $1 ORDER BY created_at DESC`)).
		WithArgs("vid-1").
		WillReturnRows(rows)

	list, err := repository.History(context.Background(), "vid-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, model.PlatformInstagram, list[0].Platform)
	require.Nil(t, list[0].RemoteID)
	require.NotNil(t, list[0].ErrorMessage)
	require.Equal(t, "rate limited", *list[0].ErrorMessage)
	require.Equal(t, model.PlatformYouTube, list[1].Platform)
	require.NotNil(t, list[1].RemoteID)
	require.Equal(t, "yt-abc123", *list[1].RemoteID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicationRepository_History_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewPublicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, video_id, platform, status, remote_id, post_url, error_message, created_at FROM publications`)).
		WithArgs("vid-404").
		WillReturnError(fmt.Errorf("connection reset"))

	list, err := repository.History(context.Background(), "vid-404")
	require.Error(t, err)
	require.Nil(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}
