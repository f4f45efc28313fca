package repository

import (
	"context"

	"content-ops/domain/model"
)

// IPublication is the append-only publish audit trail kept in SQL.
type IPublication interface {
	RecordAttempt(ctx context.Context, pub *model.Publication) error
	History(ctx context.Context, videoID string) ([]*model.Publication, error)
}
