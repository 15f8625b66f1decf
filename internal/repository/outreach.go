package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateEmailTemplate(ctx context.Context, req model.CreateTemplateRequest) (model.EmailTemplate, error) {
	const q = `
INSERT INTO email_templates (name, subject, body)
VALUES ($1, $2, $3)
RETURNING template_id, name, subject, body, created_at, updated_at
`
	var t model.EmailTemplate
	row := r.db.QueryRow(ctx, q, req.Name, req.Subject, req.Body)
	if err := row.Scan(&t.TemplateID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return model.EmailTemplate{}, fmt.Errorf("template %q: %w", req.Name, ErrDuplicate)
		}
		return model.EmailTemplate{}, fmt.Errorf("insert email template: %w", err)
	}
	return t, nil
}

func (r *Repository) GetEmailTemplateByID(ctx context.Context, id int64) (model.EmailTemplate, error) {
	const q = `
SELECT template_id, name, subject, body, created_at, updated_at
FROM email_templates WHERE template_id = $1
`
	var t model.EmailTemplate
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&t.TemplateID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EmailTemplate{}, fmt.Errorf("email template %d: %w", id, ErrNotFound)
		}
		return model.EmailTemplate{}, fmt.Errorf("scan email template: %w", err)
	}
	return t, nil
}

func (r *Repository) ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error) {
	const q = `
SELECT template_id, name, subject, body, created_at, updated_at
FROM email_templates
ORDER BY name ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query email templates: %w", err)
	}
	defer rows.Close()

	out := []model.EmailTemplate{}
	for rows.Next() {
		var t model.EmailTemplate
		if err := rows.Scan(&t.TemplateID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan email template row: %w", err)
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) UpdateEmailTemplate(ctx context.Context, id int64, req model.UpdateTemplateRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE email_templates SET updated_at = now()"
	args := []interface{}{}
	argId := 1
	for col, val := range updates {
		query += fmt.Sprintf(", %s = $%d", col, argId)
		args = append(args, val)
		argId++
	}
	query += fmt.Sprintf(" WHERE template_id = $%d", argId)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("template name: %w", ErrDuplicate)
		}
		return fmt.Errorf("update email template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("email template %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteEmailTemplate(ctx context.Context, id int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var inUse bool
		const qUse = `SELECT EXISTS (SELECT 1 FROM outreach_campaigns WHERE template_id = $1)`
		if err := tx.QueryRow(ctx, qUse, id).Scan(&inUse); err != nil {
			return fmt.Errorf("check template use: %w", err)
		}
		if inUse {
			return fmt.Errorf("email template %d is referenced by campaigns: %w", id, ErrProtected)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM email_templates WHERE template_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete email template: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("email template %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

const campaignCols = `
campaign_id, name, template_id, candidate_ids, status, sent_by_user_id, sent_at, created_at, updated_at`

func scanCampaign(row pgx.Row, c *model.OutreachCampaign) error {
	return row.Scan(&c.CampaignID, &c.Name, &c.TemplateID, &c.CandidateIDs, &c.Status,
		&c.SentBy, &c.SentAt, &c.CreatedAt, &c.UpdatedAt)
}

func (r *Repository) CreateCampaign(ctx context.Context, req model.CreateCampaignRequest) (model.OutreachCampaign, error) {
	const q = `
INSERT INTO outreach_campaigns (name, template_id, candidate_ids)
VALUES ($1, $2, $3)
RETURNING ` + campaignCols
	var c model.OutreachCampaign
	if err := scanCampaign(r.db.QueryRow(ctx, q, req.Name, req.TemplateID, req.CandidateIDs), &c); err != nil {
		return model.OutreachCampaign{}, fmt.Errorf("insert campaign: %w", err)
	}
	return c, nil
}

func (r *Repository) GetCampaignByID(ctx context.Context, id int64) (model.OutreachCampaign, error) {
	q := `SELECT ` + campaignCols + ` FROM outreach_campaigns WHERE campaign_id = $1`
	var c model.OutreachCampaign
	if err := scanCampaign(r.db.QueryRow(ctx, q, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OutreachCampaign{}, fmt.Errorf("campaign %d: %w", id, ErrNotFound)
		}
		return model.OutreachCampaign{}, fmt.Errorf("scan campaign: %w", err)
	}
	return c, nil
}

func (r *Repository) ListCampaigns(ctx context.Context) ([]model.OutreachCampaign, error) {
	q := `SELECT ` + campaignCols + ` FROM outreach_campaigns ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	defer rows.Close()

	out := []model.OutreachCampaign{}
	for rows.Next() {
		var c model.OutreachCampaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, fmt.Errorf("scan campaign row: %w", err)
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// MarkCampaignSent records the send outcome.
func (r *Repository) MarkCampaignSent(ctx context.Context, id int64, status model.CampaignStatus, sentBy *uuid.UUID, sentAt time.Time) error {
	const q = `
UPDATE outreach_campaigns
SET status = $1, sent_by_user_id = $2, sent_at = $3, updated_at = now()
WHERE campaign_id = $4
`
	tag, err := r.db.Exec(ctx, q, status, sentBy, sentAt, id)
	if err != nil {
		return fmt.Errorf("mark campaign sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %d: %w", id, ErrNotFound)
	}
	return nil
}
