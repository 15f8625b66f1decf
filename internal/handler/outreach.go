package handler

import (
	"fmt"
	"time"

	"github.com/brianmahove/recruiting-ai/internal/mailer"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateEmailTemplate(c *gin.Context) {
	var req model.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	tmpl, err := h.Repo.CreateEmailTemplate(c.Request.Context(), req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, tmpl)
}

func (h *Handler) ListEmailTemplates(c *gin.Context) {
	templates, err := h.Repo.ListEmailTemplates(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, templates)
}

func (h *Handler) GetEmailTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tmpl, err := h.Repo.GetEmailTemplateByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, tmpl)
}

func (h *Handler) UpdateEmailTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if err := h.Repo.UpdateEmailTemplate(c.Request.Context(), id, req); err != nil {
		h.repoError(c, err)
		return
	}
	tmpl, err := h.Repo.GetEmailTemplateByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, tmpl)
}

func (h *Handler) DeleteEmailTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteEmailTemplate(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	response.Message(c, "template deleted")
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	var req model.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if _, err := h.Repo.GetEmailTemplateByID(c.Request.Context(), req.TemplateID); err != nil {
		h.repoError(c, err)
		return
	}
	for _, id := range req.CandidateIDs {
		if _, err := h.Repo.GetCandidateByID(c.Request.Context(), id); err != nil {
			h.repoError(c, err)
			return
		}
	}
	campaign, err := h.Repo.CreateCampaign(c.Request.Context(), req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, campaign)
}

func (h *Handler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.Repo.ListCampaigns(c.Request.Context())
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, campaigns)
}

func (h *Handler) GetCampaign(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	campaign, err := h.Repo.GetCampaignByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, campaign)
}

// SendCampaign emails every candidate on the campaign. Candidates without an
// email address are reported as skipped rather than failing the send.
func (h *Handler) SendCampaign(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	campaign, err := h.Repo.GetCampaignByID(ctx, id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if campaign.Status == model.CampaignSent {
		response.AlreadyCompleted(c, "campaign has already been sent")
		return
	}
	if !h.Mailer.Enabled() {
		response.UpstreamFailure(c, "email delivery is not configured")
		return
	}
	tmpl, err := h.Repo.GetEmailTemplateByID(ctx, campaign.TemplateID)
	if err != nil {
		h.repoError(c, err)
		return
	}

	sent := 0
	var failures []string
	for _, candidateID := range campaign.CandidateIDs {
		cand, err := h.Repo.GetCandidateByID(ctx, candidateID)
		if err != nil {
			failures = append(failures, fmt.Sprintf("candidate %d: %v", candidateID, err))
			continue
		}
		if cand.Email == nil || *cand.Email == "" {
			failures = append(failures, fmt.Sprintf("candidate %d: no email address", candidateID))
			continue
		}

		jobTitle := ""
		if cand.JobDescriptionID != nil {
			if jd, err := h.Repo.GetJobDescriptionByID(ctx, *cand.JobDescriptionID); err == nil {
				jobTitle = jd.Title
			}
		}

		subject := mailer.Render(tmpl.Subject, cand.Name, jobTitle)
		body := mailer.Render(tmpl.Body, cand.Name, jobTitle)
		if err := h.Mailer.Send(*cand.Email, subject, body); err != nil {
			h.Logger.Sugar().Errorw("send campaign email", "campaign_id", id, "candidate_id", candidateID, "err", err)
			failures = append(failures, fmt.Sprintf("candidate %d: delivery failed", candidateID))
			continue
		}
		sent++
	}

	status := model.CampaignSent
	if sent == 0 {
		status = model.CampaignFailed
	}
	if err := h.Repo.MarkCampaignSent(ctx, id, status, currentUserID(c), time.Now()); err != nil {
		h.repoError(c, err)
		return
	}

	report := gin.H{"sent": sent, "failed": len(failures), "errors": failures, "status": status}
	if len(failures) > 0 {
		response.MultiStatus(c, report)
		return
	}
	response.OK(c, report)
}

type sendEmailRequest struct {
	CandidateID int64  `json:"candidate_id" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// SendEmail delivers a one-off message to a single candidate, rendering the
// same placeholders the campaign templates use.
func (h *Handler) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if !h.Mailer.Enabled() {
		response.UpstreamFailure(c, "email delivery is not configured")
		return
	}
	ctx := c.Request.Context()

	cand, err := h.Repo.GetCandidateByID(ctx, req.CandidateID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if cand.Email == nil || *cand.Email == "" {
		response.ValidationError(c, "candidate has no email address")
		return
	}

	jobTitle := ""
	if cand.JobDescriptionID != nil {
		if jd, err := h.Repo.GetJobDescriptionByID(ctx, *cand.JobDescriptionID); err == nil {
			jobTitle = jd.Title
		}
	}

	subject := mailer.Render(req.Subject, cand.Name, jobTitle)
	body := mailer.Render(req.Body, cand.Name, jobTitle)
	if err := h.Mailer.Send(*cand.Email, subject, body); err != nil {
		h.Logger.Sugar().Errorw("send email", "candidate_id", req.CandidateID, "err", err)
		response.UpstreamFailure(c, "email delivery failed")
		return
	}
	response.Message(c, "email sent")
}
