package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/jackc/pgx/v5"
)

const videoCols = `
video_interview_id, candidate_id, job_description_id, interview_type,
interview_date, duration_seconds, video_url, sentiment_score,
behavior_summary, keywords_detected, ai_feedback_raw, created_at`

func scanVideo(row pgx.Row, v *model.VideoInterview) error {
	return row.Scan(&v.VideoInterviewID, &v.CandidateID, &v.JobDescriptionID, &v.InterviewType,
		&v.InterviewDate, &v.DurationSeconds, &v.VideoURL, &v.SentimentScore,
		&v.BehaviorSummary, &v.KeywordsDetected, &v.AIFeedbackRaw, &v.CreatedAt)
}

func (r *Repository) CreateVideoInterview(ctx context.Context, v *model.VideoInterview) (model.VideoInterview, error) {
	const q = `
INSERT INTO video_interviews (
	 candidate_id, job_description_id, interview_type, duration_seconds, video_url,
	 sentiment_score, behavior_summary, keywords_detected, ai_feedback_raw
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + videoCols
	var out model.VideoInterview
	row := r.db.QueryRow(ctx, q,
		v.CandidateID, v.JobDescriptionID, v.InterviewType, v.DurationSeconds, v.VideoURL,
		v.SentimentScore, v.BehaviorSummary, v.KeywordsDetected, v.AIFeedbackRaw,
	)
	if err := scanVideo(row, &out); err != nil {
		return model.VideoInterview{}, fmt.Errorf("insert video interview: %w", err)
	}
	return out, nil
}

func (r *Repository) GetVideoInterviewByID(ctx context.Context, id int64) (model.VideoInterview, error) {
	q := `SELECT ` + videoCols + ` FROM video_interviews WHERE video_interview_id = $1`
	var v model.VideoInterview
	if err := scanVideo(r.db.QueryRow(ctx, q, id), &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VideoInterview{}, fmt.Errorf("video interview %d: %w", id, ErrNotFound)
		}
		return model.VideoInterview{}, fmt.Errorf("scan video interview: %w", err)
	}
	return v, nil
}

func (r *Repository) ListVideoInterviewsByCandidate(ctx context.Context, candidateID int64) ([]model.VideoInterview, error) {
	q := `SELECT ` + videoCols + ` FROM video_interviews WHERE candidate_id = $1 ORDER BY interview_date DESC`
	rows, err := r.db.Query(ctx, q, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query video interviews: %w", err)
	}
	defer rows.Close()

	out := []model.VideoInterview{}
	for rows.Next() {
		var v model.VideoInterview
		if err := scanVideo(rows, &v); err != nil {
			return nil, fmt.Errorf("scan video interview row: %w", err)
		}
		out = append(out, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpdateVideoAnalysis stores the analysis verdict for a recording.
func (r *Repository) UpdateVideoAnalysis(ctx context.Context, id int64, a model.VideoAnalysis, keywordsCSV string) error {
	const q = `
UPDATE video_interviews
SET sentiment_score = $1, behavior_summary = $2, keywords_detected = $3, ai_feedback_raw = $4
WHERE video_interview_id = $5
`
	tag, err := r.db.Exec(ctx, q, a.SentimentScore, a.BehaviorSummary, keywordsCSV, a.RawFeedback, id)
	if err != nil {
		return fmt.Errorf("update video analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("video interview %d: %w", id, ErrNotFound)
	}
	return nil
}
