package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"content-ops/domain/model"
	"content-ops/domain/repository"
	"content-ops/usecase"
)

type IScriptHandler interface {
	SaveScript(ctx *gin.Context)
	GetScript(ctx *gin.Context)
	ListScripts(ctx *gin.Context)
	MarkVideoMade(ctx *gin.Context)
}

type ScriptHandler struct {
	scriptUsecase usecase.IScriptUsecase
}

func NewScriptHandler(uc usecase.IScriptUsecase) IScriptHandler {
	return &ScriptHandler{scriptUsecase: uc}
}

func (h *ScriptHandler) SaveScript(ctx *gin.Context) {
	var script model.Script
	if err := ctx.ShouldBindJSON(&script); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.scriptUsecase.Save(ctx.Request.Context(), &script); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, script)
}

func (h *ScriptHandler) GetScript(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("scriptId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid script id"})
		return
	}
	script, err := h.scriptUsecase.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrScriptNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, script)
}

func (h *ScriptHandler) ListScripts(ctx *gin.Context) {
	limit := 100
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	scripts, err := h.scriptUsecase.List(ctx.Request.Context(), ctx.Query("status"), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if scripts == nil {
		scripts = []*model.Script{}
	}
	ctx.JSON(http.StatusOK, gin.H{"scripts": scripts})
}

func (h *ScriptHandler) MarkVideoMade(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("scriptId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid script id"})
		return
	}
	if err := h.scriptUsecase.MarkVideoMade(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrScriptNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": model.ScriptStatusVideoMade})
}
