package handler

import (
	"strconv"

	"github.com/brianmahove/recruiting-ai/internal/match"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateJobDescription(c *gin.Context) {
	var req model.CreateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	jd := &model.JobDescription{
		Title:            req.Title,
		Description:      req.Description,
		SkillsIdentified: match.ExtractSkills(req.Description),
	}
	id, err := h.Repo.CreateJobDescription(c.Request.Context(), jd)
	if err != nil {
		h.repoError(c, err)
		return
	}
	jd.JobDescriptionID = id
	response.Created(c, jd)
}

func (h *Handler) ListJobDescriptions(c *gin.Context) {
	jds, err := h.Repo.ListJobDescriptions(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, jds)
}

func (h *Handler) GetJobDescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	jd, err := h.Repo.GetJobDescriptionByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, jd)
}

func (h *Handler) UpdateJobDescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	jd, err := h.Repo.GetJobDescriptionByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if req.Title != nil {
		jd.Title = *req.Title
	}
	if req.Description != nil {
		jd.Description = *req.Description
		jd.SkillsIdentified = match.ExtractSkills(jd.Description)
	}
	if err := h.Repo.UpdateJobDescription(c.Request.Context(), id, jd.Title, jd.Description, jd.SkillsIdentified); err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, jd)
}

func (h *Handler) DeleteJobDescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteJobDescription(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	response.Message(c, "job description and associated candidates deleted")
}

// GenerateScreeningQuestions drafts screening questions for a job description
// and persists them. Uses the LLM when configured, otherwise a skills-based
// template fallback.
func (h *Handler) GenerateScreeningQuestions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	jd, err := h.Repo.GetJobDescriptionByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}

	count := 5
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 20 {
			response.ValidationError(c, "count must be between 1 and 20")
			return
		}
		count = n
	}

	var drafts []model.CreateScreeningQuestionRequest
	if h.Groq.Enabled() {
		generated, err := h.Groq.ScreeningQuestions(c.Request.Context(), jd.Title, jd.Description, count)
		if err != nil {
			h.Logger.Sugar().Errorw("generate screening questions", "job_description_id", id, "err", err)
			response.UpstreamFailure(c, "question generation service unavailable")
			return
		}
		for _, g := range generated {
			drafts = append(drafts, model.CreateScreeningQuestionRequest{
				JobDescriptionID: id,
				QuestionText:     g.Question,
				QuestionType:     model.QuestionTypeText,
				ExpectedKeywords: g.ExpectedKeywords,
				IdealAnswer:      optional(g.IdealAnswer),
			})
		}
	} else {
		drafts = templateQuestions(jd, count)
	}

	questions := make([]model.ScreeningQuestion, 0, len(drafts))
	for _, d := range drafts {
		q, err := h.Repo.CreateScreeningQuestion(c.Request.Context(), d)
		if err != nil {
			h.repoError(c, err)
			return
		}
		questions = append(questions, q)
	}
	response.Created(c, questions)
}

// templateQuestions builds one question per identified skill, topped up with
// generic behavioural prompts when the skill list runs short.
func templateQuestions(jd model.JobDescription, count int) []model.CreateScreeningQuestionRequest {
	generic := []string{
		"Tell me about a challenging project you worked on and how you approached it.",
		"How do you keep your technical skills up to date?",
		"Describe a time you disagreed with a teammate. How was it resolved?",
		"What interests you about the " + jd.Title + " role?",
		"How do you prioritise work when everything feels urgent?",
	}

	var drafts []model.CreateScreeningQuestionRequest
	for _, skill := range jd.SkillsIdentified {
		if len(drafts) >= count {
			break
		}
		drafts = append(drafts, model.CreateScreeningQuestionRequest{
			JobDescriptionID: jd.JobDescriptionID,
			QuestionText:     "Describe your hands-on experience with " + skill + ".",
			QuestionType:     model.QuestionTypeText,
			ExpectedKeywords: []string{skill},
		})
	}
	for i := 0; len(drafts) < count && i < len(generic); i++ {
		drafts = append(drafts, model.CreateScreeningQuestionRequest{
			JobDescriptionID: jd.JobDescriptionID,
			QuestionText:     generic[i],
			QuestionType:     model.QuestionTypeText,
		})
	}
	return drafts
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
