package handler

import (
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCandidates(c *gin.Context) {
	var q model.ListCandidatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	candidates, err := h.Repo.ListCandidates(c.Request.Context(), q)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, candidates)
}

func (h *Handler) GetCandidate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cand, err := h.Repo.GetCandidateByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, cand)
}

func (h *Handler) UpdateCandidate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.Status != nil {
		known, err := h.Repo.StageExistsByName(c.Request.Context(), *req.Status)
		if err != nil {
			h.repoError(c, err)
			return
		}
		if !known {
			response.ValidationError(c, "status must match a pipeline stage")
			return
		}
	}
	cand, err := h.Repo.UpdateCandidate(c.Request.Context(), id, req, currentUserID(c))
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, cand)
}

func (h *Handler) DeleteCandidate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cand, err := h.Repo.GetCandidateByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if err := h.Repo.DeleteCandidate(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	if cand.ResumeFilepath != nil && *cand.ResumeFilepath != "" {
		if err := h.ResumeStore.Delete(*cand.ResumeFilepath); err != nil {
			h.Logger.Sugar().Warnw("delete resume file", "candidate_id", id, "err", err)
		}
	}
	response.Message(c, "candidate deleted")
}

func (h *Handler) AddCandidateNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if _, err := h.Repo.GetCandidateByID(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	note, err := h.Repo.AddCandidateNote(c.Request.Context(), id, currentUserID(c), req.NoteText)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, note)
}

func (h *Handler) ListCandidateNotes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Repo.GetCandidateByID(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	notes, err := h.Repo.ListCandidateNotes(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, notes)
}

func (h *Handler) CandidateStatusHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Repo.GetCandidateByID(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	history, err := h.Repo.ListStatusHistory(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, history)
}
