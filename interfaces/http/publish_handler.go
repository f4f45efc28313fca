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

type IPublishHandler interface {
	PublishVideo(ctx *gin.Context)
	GetPublishStatus(ctx *gin.Context)
	GetHistory(ctx *gin.Context)
	GetPlatforms(ctx *gin.Context)
}

type PublishHandler struct {
	publishUsecase usecase.IPublishUsecase
}

func NewPublishHandler(uc usecase.IPublishUsecase) IPublishHandler {
	return &PublishHandler{publishUsecase: uc}
}

func (h *PublishHandler) PublishVideo(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	userID := ctx.GetString("user_id")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: missing user_id"})
		return
	}

	var req dto.PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	results, err := h.publishUsecase.Publish(ctx.Request.Context(), videoID, userID, req.Platforms)
	if err != nil {
		logger.GetLogger().WithField("video_id", videoID).WithField("user_id", userID).WithField("error", err.Error()).Warn("publish request failed")
		status := http.StatusBadRequest
		if errors.Is(err, repository.ErrVideoNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.PublishResponse{VideoID: videoID, Results: results})
}

func (h *PublishHandler) GetPublishStatus(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	res, err := h.publishUsecase.Status(ctx.Request.Context(), videoID)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *PublishHandler) GetHistory(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	list, err := h.publishUsecase.History(ctx.Request.Context(), videoID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		list = []*model.Publication{}
	}
	ctx.JSON(http.StatusOK, gin.H{"video_id": videoID, "attempts": list})
}

func (h *PublishHandler) GetPlatforms(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"platforms": h.publishUsecase.Capabilities()})
}
