package usecase

import (
	"context"

	"content-ops/domain/model"
	"content-ops/domain/repository"
)

type IScriptUsecase interface {
	Save(ctx context.Context, script *model.Script) error
	Get(ctx context.Context, id int64) (*model.Script, error)
	List(ctx context.Context, status string, limit int) ([]*model.Script, error)
	MarkVideoMade(ctx context.Context, id int64) error
}

type scriptUsecase struct {
	scriptRepo repository.IScript
}

func NewScriptUsecase(scriptRepo repository.IScript) IScriptUsecase {
	return &scriptUsecase{scriptRepo: scriptRepo}
}

func (u *scriptUsecase) Save(ctx context.Context, script *model.Script) error {
	return u.scriptRepo.Save(ctx, script)
}

func (u *scriptUsecase) Get(ctx context.Context, id int64) (*model.Script, error) {
	return u.scriptRepo.GetByID(ctx, id)
}

func (u *scriptUsecase) List(ctx context.Context, status string, limit int) ([]*model.Script, error) {
	return u.scriptRepo.ListByStatus(ctx, status, limit)
}

// MarkVideoMade flips a script to video_made once a video has been generated
// from it.
func (u *scriptUsecase) MarkVideoMade(ctx context.Context, id int64) error {
	return u.scriptRepo.UpdateStatus(ctx, id, model.ScriptStatusVideoMade)
}
