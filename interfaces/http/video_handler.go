package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-ops/domain/dto"
	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/infrastructure/logger"
	"content-ops/usecase"
)

type IVideoHandler interface {
	CreateVideo(ctx *gin.Context)
	GetVideo(ctx *gin.Context)
	ListVideos(ctx *gin.Context)
	DeleteVideo(ctx *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
}

func NewVideoHandler(uc usecase.IVideoUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: uc}
}

func (h *VideoHandler) CreateVideo(ctx *gin.Context) {
	var req dto.CreateVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	video, err := h.videoUsecase.Create(ctx.Request.Context(), req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while create video")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) GetVideo(ctx *gin.Context) {
	video, err := h.videoUsecase.Get(ctx.Request.Context(), ctx.Param("videoId"))
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, video)
}

func (h *VideoHandler) ListVideos(ctx *gin.Context) {
	var req dto.VideoListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid paging parameters"})
		return
	}
	videos, err := h.videoUsecase.List(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if videos == nil {
		videos = []*model.VideoRecord{}
	}
	ctx.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *VideoHandler) DeleteVideo(ctx *gin.Context) {
	if err := h.videoUsecase.Delete(ctx.Request.Context(), ctx.Param("videoId")); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
