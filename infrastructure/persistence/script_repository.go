package persistence

import (
	"context"
	"errors"

	"content-ops/domain/model"
	"content-ops/domain/repository"

	"gorm.io/gorm"
)

// ScriptRepository stores generated-script metadata via GORM on MySQL.
type ScriptRepository struct {
	db *gorm.DB
}

func NewScriptRepository(db *gorm.DB) repository.IScript {
	return &ScriptRepository{db: db}
}

// AutoMigrateScripts creates or updates the scripts table.
func AutoMigrateScripts(db *gorm.DB) error {
	return db.AutoMigrate(&model.Script{})
}

func (r *ScriptRepository) Save(ctx context.Context, script *model.Script) error {
	if script.Status == "" {
		script.Status = model.ScriptStatusDraft
	}
	return r.db.WithContext(ctx).Save(script).Error
}

func (r *ScriptRepository) GetByID(ctx context.Context, id int64) (*model.Script, error) {
	var script model.Script
	err := r.db.WithContext(ctx).First(&script, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrScriptNotFound
		}
		return nil, err
	}
	return &script, nil
}

func (r *ScriptRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*model.Script, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var scripts []*model.Script
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&scripts).Error; err != nil {
		return nil, err
	}
	return scripts, nil
}

func (r *ScriptRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Script{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrScriptNotFound
	}
	return nil
}
