package handler

import (
	"errors"
	"strings"

	"github.com/brianmahove/recruiting-ai/internal/assessment"
	"github.com/brianmahove/recruiting-ai/internal/repository"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAssessment(c *gin.Context) {
	var req model.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.JobDescriptionID != nil {
		if _, err := h.Repo.GetJobDescriptionByID(c.Request.Context(), *req.JobDescriptionID); err != nil {
			h.repoError(c, err)
			return
		}
	}
	a, err := h.Repo.CreateAssessment(c.Request.Context(), req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, a)
}

func (h *Handler) ListAssessments(c *gin.Context) {
	assessments, err := h.Repo.ListAssessments(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, assessments)
}

func (h *Handler) GetAssessment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.Repo.GetAssessmentByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	questions, err := h.Repo.ListAssessmentQuestions(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, gin.H{"assessment": a, "questions": questions})
}

func (h *Handler) UpdateAssessment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if err := h.Repo.UpdateAssessment(c.Request.Context(), id, req); err != nil {
		h.repoError(c, err)
		return
	}
	a, err := h.Repo.GetAssessmentByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, a)
}

// DeleteAssessment removes the assessment and its questions. Existing results
// stay behind as historical records.
func (h *Handler) DeleteAssessment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteAssessment(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	response.Message(c, "assessment deleted")
}

func (h *Handler) AddAssessmentQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CreateAssessmentQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.QuestionType == "" {
		req.QuestionType = model.AssessmentOpenText
	}
	if !req.QuestionType.Valid() {
		response.ValidationError(c, "invalid question_type")
		return
	}
	if req.QuestionType.NeedsOptions() && len(req.Options) == 0 {
		response.ValidationError(c, "options are required for "+string(req.QuestionType)+" questions")
		return
	}
	if req.Points != nil && *req.Points < 0 {
		response.ValidationError(c, "points must not be negative")
		return
	}
	if _, err := h.Repo.GetAssessmentByID(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	q, err := h.Repo.CreateAssessmentQuestion(c.Request.Context(), id, req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, q)
}

func (h *Handler) UpdateAssessmentQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAssessmentQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.QuestionType != nil && !req.QuestionType.Valid() {
		response.ValidationError(c, "invalid question_type")
		return
	}
	if req.Points != nil && *req.Points < 0 {
		response.ValidationError(c, "points must not be negative")
		return
	}
	q, err := h.Repo.UpdateAssessmentQuestion(c.Request.Context(), id, req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, q)
}

func (h *Handler) SetAssessmentQuestionOrder(c *gin.Context) {
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
	if err := h.Repo.SetAssessmentQuestionOrder(c.Request.Context(), id, *req.Order); err != nil {
		h.repoError(c, err)
		return
	}
	q, err := h.Repo.GetAssessmentQuestionByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, q)
}

func (h *Handler) DeleteAssessmentQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteAssessmentQuestion(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	response.Message(c, "question deleted")
}

func (h *Handler) StartAssessment(c *gin.Context) {
	candidateID, ok := pathID(c, "id")
	if !ok {
		return
	}
	assessmentID, ok := pathID(c, "aid")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.Repo.GetCandidateByID(ctx, candidateID); err != nil {
		h.repoError(c, err)
		return
	}
	if _, err := h.Repo.GetAssessmentByID(ctx, assessmentID); err != nil {
		h.repoError(c, err)
		return
	}
	result, err := h.Repo.StartAssessmentResult(ctx, candidateID, assessmentID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, result)
}

// SubmitAssessmentResponse grades a single answer and upserts it, so a
// candidate revising an answer before completion replaces the earlier attempt.
func (h *Handler) SubmitAssessmentResponse(c *gin.Context) {
	resultID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	result, err := h.Repo.GetAssessmentResult(ctx, resultID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if result.Status != model.ResultInProgress {
		response.AlreadyCompleted(c, "assessment has already been submitted")
		return
	}

	question, err := h.Repo.GetAssessmentQuestionByID(ctx, req.QuestionID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if question.AssessmentID != result.AssessmentID {
		response.ValidationError(c, "question does not belong to this assessment")
		return
	}

	responseText := ""
	if req.ResponseText != nil {
		responseText = strings.TrimSpace(*req.ResponseText)
	}
	score, feedback := assessment.Grade(question, responseText)

	qr := &model.QuestionResponse{
		ResultID:     resultID,
		QuestionID:   req.QuestionID,
		ResponseText: responseText,
		Score:        score,
	}
	if feedback != "" {
		qr.AIFeedback = &feedback
	}
	saved, total, err := h.Repo.UpsertQuestionResponse(ctx, qr)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, model.SubmitResponseResult{Response: saved, TotalScore: total})
}

func (h *Handler) CompleteAssessment(c *gin.Context) {
	resultID, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.Repo.CompleteAssessmentResult(c.Request.Context(), resultID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.AlreadyCompleted(c, "assessment has already been submitted")
			return
		}
		h.repoError(c, err)
		return
	}
	response.OK(c, result)
}

// ManualGradeResponse lets a reviewer score a pending CodeSnippet or keyless
// OpenText answer. The result flips to Graded once nothing is left pending.
func (h *Handler) ManualGradeResponse(c *gin.Context) {
	resultID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.ManualGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.Score < 0 {
		response.ValidationError(c, "score must not be negative")
		return
	}
	question, err := h.Repo.GetAssessmentQuestionByID(c.Request.Context(), req.QuestionID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if req.Score > question.Points {
		response.ValidationError(c, "score exceeds the question's points")
		return
	}
	total, err := h.Repo.SetManualScore(c.Request.Context(), resultID, req.QuestionID, req.Score)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, gin.H{"total_score": total})
}

func (h *Handler) GetAssessmentResult(c *gin.Context) {
	resultID, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.Repo.GetAssessmentResult(c.Request.Context(), resultID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	responses, err := h.Repo.ListQuestionResponses(c.Request.Context(), resultID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, model.AssessmentResultDetail{AssessmentResult: result, Responses: responses})
}

func (h *Handler) ListCandidateAssessmentResults(c *gin.Context) {
	candidateID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Repo.GetCandidateByID(c.Request.Context(), candidateID); err != nil {
		h.repoError(c, err)
		return
	}
	results, err := h.Repo.ListAssessmentResultsByCandidate(c.Request.Context(), candidateID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, results)
}
