package repository

import (
	"context"
	"errors"

	"content-ops/domain/model"
)

// ErrScriptNotFound is returned when a script id has no row.
var ErrScriptNotFound = errors.New("script not found")

// IScript stores generated-script metadata for the library pages.
type IScript interface {
	Save(ctx context.Context, script *model.Script) error
	GetByID(ctx context.Context, id int64) (*model.Script, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*model.Script, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
