package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateJobDescription(ctx context.Context, jd *model.JobDescription) (int64, error) {
	const q = `
INSERT INTO job_descriptions (title, description, skills_identified)
VALUES ($1, $2, $3) RETURNING job_description_id
`
	var id int64
	if err := r.db.QueryRow(ctx, q, jd.Title, jd.Description, jd.SkillsIdentified).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert job description: %w", err)
	}
	return id, nil
}

func (r *Repository) GetJobDescriptionByID(ctx context.Context, id int64) (model.JobDescription, error) {
	const q = `
SELECT job_description_id, title, description, skills_identified, created_at, updated_at
FROM job_descriptions WHERE job_description_id = $1
`
	var jd model.JobDescription
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&jd.JobDescriptionID, &jd.Title, &jd.Description, &jd.SkillsIdentified, &jd.CreatedAt, &jd.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.JobDescription{}, fmt.Errorf("job description %d: %w", id, ErrNotFound)
		}
		return model.JobDescription{}, fmt.Errorf("scan job description: %w", err)
	}
	return jd, nil
}

func (r *Repository) ListJobDescriptions(ctx context.Context) ([]model.JobDescription, error) {
	const q = `
SELECT job_description_id, title, description, skills_identified, created_at, updated_at
FROM job_descriptions
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query job descriptions: %w", err)
	}
	defer rows.Close()

	out := []model.JobDescription{}
	for rows.Next() {
		var jd model.JobDescription
		if err := rows.Scan(&jd.JobDescriptionID, &jd.Title, &jd.Description, &jd.SkillsIdentified, &jd.CreatedAt, &jd.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job description row: %w", err)
		}
		out = append(out, jd)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) UpdateJobDescription(ctx context.Context, id int64, title, description string, skills []string) error {
	const q = `
UPDATE job_descriptions
SET title = $1, description = $2, skills_identified = $3, updated_at = now()
WHERE job_description_id = $4
`
	tag, err := r.db.Exec(ctx, q, title, description, skills, id)
	if err != nil {
		return fmt.Errorf("update job description: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job description %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteJobDescription removes a job description together with its candidates,
// their child rows, and the JD's screening questions.
func (r *Repository) DeleteJobDescription(ctx context.Context, id int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		const qCheck = `SELECT 1 FROM job_descriptions WHERE job_description_id = $1`
		var one int
		if err := tx.QueryRow(ctx, qCheck, id).Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("job description %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("check job description: %w", err)
		}

		if err := deleteCandidateChildren(ctx, tx,
			`SELECT candidate_id FROM candidates WHERE job_description_id = $1`, id); err != nil {
			return err
		}

		steps := []string{
			`DELETE FROM screening_answers WHERE interview_id IN
			   (SELECT interview_id FROM screening_sessions WHERE job_description_id = $1)`,
			`DELETE FROM screening_sessions WHERE job_description_id = $1`,
			`DELETE FROM screening_questions WHERE job_description_id = $1`,
			`DELETE FROM candidates WHERE job_description_id = $1`,
			`DELETE FROM job_descriptions WHERE job_description_id = $1`,
		}
		for _, q := range steps {
			if _, err := tx.Exec(ctx, q, id); err != nil {
				return fmt.Errorf("cascade job description delete: %w", err)
			}
		}
		return nil
	})
}

// deleteCandidateChildren clears the rows hanging off every candidate selected
// by candidateQuery (one bigint argument).
func deleteCandidateChildren(ctx context.Context, tx pgx.Tx, candidateQuery string, arg any) error {
	steps := []string{
		`DELETE FROM screening_answers WHERE interview_id IN
		   (SELECT interview_id FROM screening_sessions WHERE candidate_id IN (` + candidateQuery + `))`,
		`DELETE FROM screening_sessions WHERE candidate_id IN (` + candidateQuery + `)`,
		`DELETE FROM question_responses WHERE result_id IN
		   (SELECT result_id FROM assessment_results WHERE candidate_id IN (` + candidateQuery + `))`,
		`DELETE FROM assessment_results WHERE candidate_id IN (` + candidateQuery + `)`,
		`DELETE FROM interview_schedules WHERE candidate_id IN (` + candidateQuery + `)`,
		`DELETE FROM video_interviews WHERE candidate_id IN (` + candidateQuery + `)`,
		`DELETE FROM candidate_notes WHERE candidate_id IN (` + candidateQuery + `)`,
		`DELETE FROM candidate_status_history WHERE candidate_id IN (` + candidateQuery + `)`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, arg); err != nil {
			return fmt.Errorf("cascade candidate children: %w", err)
		}
	}
	return nil
}
