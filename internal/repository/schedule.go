package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/jackc/pgx/v5"
)

func scanSchedule(row pgx.Row, s *model.InterviewSchedule) error {
	return row.Scan(&s.ScheduleID, &s.CandidateID, &s.JobDescriptionID, &s.RecruiterName,
		&s.InterviewType, &s.StartTime, &s.EndTime, &s.Status, &s.MeetingLink,
		&s.CandidateNotes, &s.RecruiterNotes, &s.CreatedAt, &s.UpdatedAt)
}

const scheduleCols = `
schedule_id, candidate_id, job_description_id, recruiter_name, interview_type,
start_time, end_time, status, meeting_link, candidate_notes, recruiter_notes,
created_at, updated_at`

func (r *Repository) CreateSchedule(ctx context.Context, s *model.InterviewSchedule) (model.InterviewSchedule, error) {
	const q = `
INSERT INTO interview_schedules (
	 candidate_id, job_description_id, recruiter_name, interview_type,
	 start_time, end_time, status, meeting_link, candidate_notes, recruiter_notes
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + scheduleCols
	var out model.InterviewSchedule
	row := r.db.QueryRow(ctx, q,
		s.CandidateID, s.JobDescriptionID, s.RecruiterName, s.InterviewType,
		s.StartTime, s.EndTime, s.Status, s.MeetingLink, s.CandidateNotes, s.RecruiterNotes,
	)
	if err := scanSchedule(row, &out); err != nil {
		return model.InterviewSchedule{}, fmt.Errorf("insert schedule: %w", err)
	}
	return out, nil
}

func (r *Repository) GetScheduleByID(ctx context.Context, id int64) (model.InterviewSchedule, error) {
	q := `SELECT ` + scheduleCols + ` FROM interview_schedules WHERE schedule_id = $1`
	var s model.InterviewSchedule
	if err := scanSchedule(r.db.QueryRow(ctx, q, id), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InterviewSchedule{}, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
		}
		return model.InterviewSchedule{}, fmt.Errorf("scan schedule: %w", err)
	}
	return s, nil
}

// ListSchedules returns schedules, optionally filtered by candidate and/or
// job description, ordered by start time.
func (r *Repository) ListSchedules(ctx context.Context, candidateID, jobDescriptionID *int64) ([]model.InterviewSchedule, error) {
	q := `SELECT ` + scheduleCols + ` FROM interview_schedules`
	where := []string{}
	args := []interface{}{}
	if candidateID != nil {
		args = append(args, *candidateID)
		where = append(where, fmt.Sprintf("candidate_id = $%d", len(args)))
	}
	if jobDescriptionID != nil {
		args = append(args, *jobDescriptionID)
		where = append(where, fmt.Sprintf("job_description_id = $%d", len(args)))
	}
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY start_time ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	defer rows.Close()

	out := []model.InterviewSchedule{}
	for rows.Next() {
		var s model.InterviewSchedule
		if err := scanSchedule(rows, &s); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpdateSchedule applies a partial update. Moving the time window flips the
// status to Rescheduled unless the caller sets one explicitly.
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, req model.UpdateScheduleRequest, start, end *time.Time) (model.InterviewSchedule, error) {
	updates := map[string]interface{}{}
	if req.RecruiterName != nil {
		updates["recruiter_name"] = *req.RecruiterName
	}
	if req.InterviewType != nil {
		updates["interview_type"] = *req.InterviewType
	}
	if start != nil {
		updates["start_time"] = *start
	}
	if end != nil {
		updates["end_time"] = *end
	}
	if req.MeetingLink != nil {
		updates["meeting_link"] = *req.MeetingLink
	}
	if req.CandidateNotes != nil {
		updates["candidate_notes"] = *req.CandidateNotes
	}
	if req.RecruiterNotes != nil {
		updates["recruiter_notes"] = *req.RecruiterNotes
	}
	switch {
	case req.Status != nil:
		updates["status"] = *req.Status
	case start != nil || end != nil:
		updates["status"] = model.ScheduleRescheduled
	}

	if len(updates) == 0 {
		return r.GetScheduleByID(ctx, id)
	}

	query := "UPDATE interview_schedules SET updated_at = now()"
	args := []interface{}{}
	argId := 1
	for col, val := range updates {
		query += fmt.Sprintf(", %s = $%d", col, argId)
		args = append(args, val)
		argId++
	}
	query += fmt.Sprintf(" WHERE schedule_id = $%d RETURNING ", argId) + scheduleCols
	args = append(args, id)

	var s model.InterviewSchedule
	if err := scanSchedule(r.db.QueryRow(ctx, query, args...), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InterviewSchedule{}, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
		}
		return model.InterviewSchedule{}, fmt.Errorf("update schedule: %w", err)
	}
	return s, nil
}

func (r *Repository) DeleteSchedule(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM interview_schedules WHERE schedule_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("schedule %d: %w", id, ErrNotFound)
	}
	return nil
}
