package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const candidateCols = `
candidate_id, name, email, phone, skills, experience, education, summary,
match_score, matched_skills, status, rating, assigned_to_user_id,
resume_filepath, job_description_id, gender, ethnicity, source,
years_of_experience, hired_at, created_at, updated_at`

func scanCandidate(row pgx.Row) (model.Candidate, error) {
	var c model.Candidate
	err := row.Scan(
		&c.CandidateID, &c.Name, &c.Email, &c.Phone, &c.Skills, &c.Experience,
		&c.Education, &c.Summary, &c.MatchScore, &c.MatchedSkills, &c.Status,
		&c.Rating, &c.AssignedToUserID, &c.ResumeFilepath, &c.JobDescriptionID,
		&c.Gender, &c.Ethnicity, &c.Source, &c.YearsOfExperience, &c.HiredAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// CreateCandidate inserts a candidate plus the opening status-history row.
func (r *Repository) CreateCandidate(ctx context.Context, c *model.Candidate) (int64, error) {
	var id int64
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const q = `
INSERT INTO candidates (
	 name, email, phone, skills, experience, education, summary,
	 match_score, matched_skills, status, resume_filepath, job_description_id, source
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING candidate_id
`
		err := tx.QueryRow(ctx, q,
			c.Name, c.Email, c.Phone, c.Skills, c.Experience, c.Education, c.Summary,
			c.MatchScore, c.MatchedSkills, c.Status, c.ResumeFilepath, c.JobDescriptionID, c.Source,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert candidate: %w", err)
		}

		const qh = `
INSERT INTO candidate_status_history (candidate_id, old_status, new_status)
VALUES ($1, NULL, $2)
`
		if _, err := tx.Exec(ctx, qh, id, c.Status); err != nil {
			return fmt.Errorf("insert initial status history: %w", err)
		}
		return nil
	})
	return id, err
}

func (r *Repository) CandidateExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM candidates WHERE email = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check candidate email: %w", err)
	}
	return exists, nil
}

func (r *Repository) GetCandidateByID(ctx context.Context, id int64) (model.Candidate, error) {
	q := `SELECT ` + candidateCols + ` FROM candidates WHERE candidate_id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Candidate{}, fmt.Errorf("candidate %d: %w", id, ErrNotFound)
		}
		return model.Candidate{}, fmt.Errorf("scan candidate: %w", err)
	}
	return c, nil
}

// sortable whitelists ListCandidates order columns.
var sortable = map[string]string{
	"created_at":  "created_at",
	"updated_at":  "updated_at",
	"name":        "name",
	"match_score": "match_score",
	"rating":      "rating",
	"status":      "status",
}

func (r *Repository) ListCandidates(ctx context.Context, f model.ListCandidatesQuery) ([]model.Candidate, error) {
	query := `SELECT ` + candidateCols + ` FROM candidates WHERE 1=1`
	args := []interface{}{}
	argId := 1

	if f.JobDescriptionID != nil {
		query += fmt.Sprintf(" AND job_description_id = $%d", argId)
		args = append(args, *f.JobDescriptionID)
		argId++
	}
	if f.Status != nil && *f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argId)
		args = append(args, *f.Status)
		argId++
	}
	if f.MinScore != nil {
		query += fmt.Sprintf(" AND match_score >= $%d", argId)
		args = append(args, *f.MinScore)
		argId++
	}
	if f.SearchTerm != nil && *f.SearchTerm != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR skills::text ILIKE $%d)", argId, argId, argId)
		args = append(args, "%"+*f.SearchTerm+"%")
		argId++
	}

	col, ok := sortable[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s NULLS LAST, candidate_id %s", col, dir, dir)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := []model.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpdateCandidate applies a partial update. A status change also appends one
// status-history row and maintains hired_at inside the same transaction.
func (r *Repository) UpdateCandidate(ctx context.Context, id int64, req model.UpdateCandidateRequest, changedBy *uuid.UUID) (model.Candidate, error) {
	var updated model.Candidate
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		cur, err := scanCandidate(tx.QueryRow(ctx, `SELECT `+candidateCols+` FROM candidates WHERE candidate_id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("candidate %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("lock candidate: %w", err)
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.Rating != nil {
			updates["rating"] = *req.Rating
		}
		if req.AssignedToUserID != nil {
			updates["assigned_to_user_id"] = *req.AssignedToUserID
		}
		if req.Gender != nil {
			updates["gender"] = *req.Gender
		}
		if req.Ethnicity != nil {
			updates["ethnicity"] = *req.Ethnicity
		}
		if req.Source != nil {
			updates["source"] = *req.Source
		}
		if req.YearsOfExperience != nil {
			updates["years_of_experience"] = *req.YearsOfExperience
		}

		statusChanged := req.Status != nil && *req.Status != cur.Status
		if statusChanged {
			updates["status"] = *req.Status
			switch {
			case *req.Status == model.StageHired:
				updates["hired_at"] = "now()"
			case cur.Status == model.StageHired:
				updates["hired_at"] = nil
			}
		}

		if len(updates) > 0 {
			query := "UPDATE candidates SET updated_at = now()"
			args := []interface{}{}
			argId := 1
			for col, val := range updates {
				if col == "hired_at" && val == "now()" {
					query += ", hired_at = now()"
					continue
				}
				query += fmt.Sprintf(", %s = $%d", col, argId)
				args = append(args, val)
				argId++
			}
			query += fmt.Sprintf(" WHERE candidate_id = $%d", argId)
			args = append(args, id)
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("update candidate: %w", err)
			}
		}

		if statusChanged {
			const qh = `
INSERT INTO candidate_status_history (candidate_id, old_status, new_status, changed_by_user_id)
VALUES ($1, $2, $3, $4)
`
			if _, err := tx.Exec(ctx, qh, id, cur.Status, *req.Status, changedBy); err != nil {
				return fmt.Errorf("insert status history: %w", err)
			}
		}

		updated, err = scanCandidate(tx.QueryRow(ctx, `SELECT `+candidateCols+` FROM candidates WHERE candidate_id = $1`, id))
		if err != nil {
			return fmt.Errorf("reload candidate: %w", err)
		}
		return nil
	})
	return updated, err
}

// DeleteCandidate removes a candidate with all dependent rows.
func (r *Repository) DeleteCandidate(ctx context.Context, id int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		if err := deleteCandidateChildren(ctx, tx, `SELECT $1::bigint`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM candidates WHERE candidate_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete candidate: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("candidate %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (r *Repository) AddCandidateNote(ctx context.Context, candidateID int64, userID *uuid.UUID, text string) (model.CandidateNote, error) {
	const q = `
INSERT INTO candidate_notes (candidate_id, user_id, note_text)
VALUES ($1, $2, $3)
RETURNING note_id, candidate_id, user_id, note_text, created_at
`
	var n model.CandidateNote
	row := r.db.QueryRow(ctx, q, candidateID, userID, text)
	if err := row.Scan(&n.NoteID, &n.CandidateID, &n.UserID, &n.NoteText, &n.CreatedAt); err != nil {
		return model.CandidateNote{}, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

func (r *Repository) ListCandidateNotes(ctx context.Context, candidateID int64) ([]model.CandidateNote, error) {
	const q = `
SELECT note_id, candidate_id, user_id, note_text, created_at
FROM candidate_notes
WHERE candidate_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	out := []model.CandidateNote{}
	for rows.Next() {
		var n model.CandidateNote
		if err := rows.Scan(&n.NoteID, &n.CandidateID, &n.UserID, &n.NoteText, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note row: %w", err)
		}
		out = append(out, n)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) ListStatusHistory(ctx context.Context, candidateID int64) ([]model.StatusHistory, error) {
	const q = `
SELECT history_id, candidate_id, old_status, new_status, changed_by_user_id, changed_at
FROM candidate_status_history
WHERE candidate_id = $1
ORDER BY changed_at ASC, history_id ASC
`
	rows, err := r.db.Query(ctx, q, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	defer rows.Close()

	out := []model.StatusHistory{}
	for rows.Next() {
		var h model.StatusHistory
		if err := rows.Scan(&h.HistoryID, &h.CandidateID, &h.OldStatus, &h.NewStatus, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, h)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
