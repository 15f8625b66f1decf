package handler

import (
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) HiringFunnel(c *gin.Context) {
	funnel, err := h.Repo.HiringFunnel(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, funnel)
}

func (h *Handler) TimeToHire(c *gin.Context) {
	stats, err := h.Repo.TimeToHire(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) SourceEffectiveness(c *gin.Context) {
	sources, err := h.Repo.SourceEffectiveness(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, sources)
}

func (h *Handler) DiversityTracking(c *gin.Context) {
	stats, err := h.Repo.DiversityTracking(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) ScreeningDisparity(c *gin.Context) {
	stats, err := h.Repo.ScreeningDisparity(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) AssessmentScoreDisparity(c *gin.Context) {
	stats, err := h.Repo.AssessmentScoreDisparity(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, stats)
}
