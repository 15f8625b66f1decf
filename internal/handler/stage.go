package handler

import (
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListStages(c *gin.Context) {
	stages, err := h.Repo.ListStages(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, stages)
}

func (h *Handler) CreateStage(c *gin.Context) {
	var req model.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	stage, err := h.Repo.CreateStage(c.Request.Context(), req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, stage)
}

func (h *Handler) UpdateStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	stage, err := h.Repo.UpdateStage(c.Request.Context(), id, req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, stage)
}

// SetStageOrder moves a stage to a new position, renumbering the rest densely.
func (h *Handler) SetStageOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req setOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if *req.Order < 0 {
		response.ValidationError(c, "order must not be negative")
		return
	}
	stage, err := h.Repo.UpdateStage(c.Request.Context(), id, model.UpdateStageRequest{Order: req.Order})
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, stage)
}

func (h *Handler) DeleteStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteStage(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	response.Message(c, "stage deleted, candidates moved to "+model.StageNewCandidate)
}
