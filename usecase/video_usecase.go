package usecase

import (
	"context"

	"content-ops/domain/dto"
	"content-ops/domain/model"
	"content-ops/domain/repository"
)

type IVideoUsecase interface {
	Create(ctx context.Context, req dto.CreateVideoRequest) (*model.VideoRecord, error)
	Get(ctx context.Context, id string) (*model.VideoRecord, error)
	List(ctx context.Context, req dto.VideoListRequest) ([]*model.VideoRecord, error)
	Delete(ctx context.Context, id string) error
}

type videoUsecase struct {
	videoRepo repository.IVideo
}

func NewVideoUsecase(videoRepo repository.IVideo) IVideoUsecase {
	return &videoUsecase{videoRepo: videoRepo}
}

func (u *videoUsecase) Create(ctx context.Context, req dto.CreateVideoRequest) (*model.VideoRecord, error) {
	video := &model.VideoRecord{
		Title:        req.Title,
		Description:  req.Description,
		Tags:         req.Tags,
		MediaRef:     req.MediaRef,
		ThumbnailRef: req.ThumbnailRef,
		ScriptID:     req.ScriptID,
	}
	if err := u.videoRepo.CreateVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (u *videoUsecase) Get(ctx context.Context, id string) (*model.VideoRecord, error) {
	return u.videoRepo.GetVideo(ctx, id)
}

func (u *videoUsecase) List(ctx context.Context, req dto.VideoListRequest) ([]*model.VideoRecord, error) {
	return u.videoRepo.ListVideos(ctx, req.Limit, req.Offset)
}

func (u *videoUsecase) Delete(ctx context.Context, id string) error {
	return u.videoRepo.DeleteVideo(ctx, id)
}
