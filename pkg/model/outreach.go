package model

import (
	"time"

	"github.com/google/uuid"
)

type EmailTemplate struct {
	TemplateID int64     `json:"template_id" db:"template_id"`
	Name       string    `json:"name" db:"name"`
	Subject    string    `json:"subject" db:"subject"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type CreateTemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type UpdateTemplateRequest struct {
	Name    *string `json:"name,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Body    *string `json:"body,omitempty"`
}

type CampaignStatus string

const (
	CampaignDraft  CampaignStatus = "Draft"
	CampaignSent   CampaignStatus = "Sent"
	CampaignFailed CampaignStatus = "Failed"
)

type OutreachCampaign struct {
	CampaignID   int64          `json:"campaign_id" db:"campaign_id"`
	Name         string         `json:"name" db:"name"`
	TemplateID   int64          `json:"template_id" db:"template_id"`
	CandidateIDs []int64        `json:"candidate_ids" db:"candidate_ids"`
	Status       CampaignStatus `json:"status" db:"status"`
	SentBy       *uuid.UUID     `json:"sent_by_user_id" db:"sent_by_user_id"`
	SentAt       *time.Time     `json:"sent_at" db:"sent_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateCampaignRequest struct {
	Name         string  `json:"name" binding:"required"`
	TemplateID   int64   `json:"template_id" binding:"required"`
	CandidateIDs []int64 `json:"candidate_ids" binding:"required,min=1"`
}

type SendEmailRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	Subject        string `json:"subject" binding:"required"`
	Body           string `json:"body" binding:"required"`
}
