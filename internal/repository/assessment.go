package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateAssessment(ctx context.Context, req model.CreateAssessmentRequest) (model.Assessment, error) {
	assessmentType := req.AssessmentType
	if assessmentType == "" {
		assessmentType = "General"
	}
	const q = `
INSERT INTO assessments (title, description, assessment_type, duration_minutes, job_description_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING assessment_id, title, description, assessment_type, duration_minutes, job_description_id, created_at, updated_at
`
	var a model.Assessment
	row := r.db.QueryRow(ctx, q, req.Title, req.Description, assessmentType, req.DurationMinutes, req.JobDescriptionID)
	if err := row.Scan(&a.AssessmentID, &a.Title, &a.Description, &a.AssessmentType, &a.DurationMinutes, &a.JobDescriptionID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return model.Assessment{}, fmt.Errorf("insert assessment: %w", err)
	}
	return a, nil
}

func (r *Repository) GetAssessmentByID(ctx context.Context, id int64) (model.Assessment, error) {
	const q = `
SELECT assessment_id, title, description, assessment_type, duration_minutes, job_description_id, created_at, updated_at
FROM assessments WHERE assessment_id = $1
`
	var a model.Assessment
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&a.AssessmentID, &a.Title, &a.Description, &a.AssessmentType, &a.DurationMinutes, &a.JobDescriptionID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Assessment{}, fmt.Errorf("assessment %d: %w", id, ErrNotFound)
		}
		return model.Assessment{}, fmt.Errorf("scan assessment: %w", err)
	}
	return a, nil
}

func (r *Repository) ListAssessments(ctx context.Context) ([]model.Assessment, error) {
	const q = `
SELECT assessment_id, title, description, assessment_type, duration_minutes, job_description_id, created_at, updated_at
FROM assessments
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	out := []model.Assessment{}
	for rows.Next() {
		var a model.Assessment
		if err := rows.Scan(&a.AssessmentID, &a.Title, &a.Description, &a.AssessmentType, &a.DurationMinutes, &a.JobDescriptionID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment row: %w", err)
		}
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) UpdateAssessment(ctx context.Context, id int64, req model.UpdateAssessmentRequest) error {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AssessmentType != nil {
		updates["assessment_type"] = *req.AssessmentType
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.JobDescriptionID != nil {
		updates["job_description_id"] = *req.JobDescriptionID
	}
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE assessments SET updated_at = now()"
	args := []interface{}{}
	argId := 1
	for col, val := range updates {
		query += fmt.Sprintf(", %s = $%d", col, argId)
		args = append(args, val)
		argId++
	}
	query += fmt.Sprintf(" WHERE assessment_id = $%d", argId)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assessment %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAssessment removes an assessment with its questions. Past results
// stay as a historical record.
func (r *Repository) DeleteAssessment(ctx context.Context, id int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM assessment_questions WHERE assessment_id = $1`, id); err != nil {
			return fmt.Errorf("delete assessment questions: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM assessments WHERE assessment_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete assessment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("assessment %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func scanAssessmentQuestion(row pgx.Row, q *model.AssessmentQuestion) error {
	return row.Scan(&q.QuestionID, &q.AssessmentID, &q.QuestionText, &q.QuestionType,
		&q.Options, &q.CorrectAnswer, &q.Points, &q.QuestionOrder, &q.CreatedAt)
}

func (r *Repository) CreateAssessmentQuestion(ctx context.Context, assessmentID int64, req model.CreateAssessmentQuestionRequest) (model.AssessmentQuestion, error) {
	var created model.AssessmentQuestion
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		var nextOrder int
		const qOrder = `SELECT COALESCE(MAX(question_order) + 1, 0) FROM assessment_questions WHERE assessment_id = $1`
		if err := tx.QueryRow(ctx, qOrder, assessmentID).Scan(&nextOrder); err != nil {
			return fmt.Errorf("next question order: %w", err)
		}

		options := req.Options
		if options == nil {
			options = []string{}
		}
		points := 10.0
		if req.Points != nil {
			points = *req.Points
		}
		const q = `
INSERT INTO assessment_questions (assessment_id, question_text, question_type, options, correct_answer, points, question_order)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING question_id, assessment_id, question_text, question_type, options, correct_answer, points, question_order, created_at
`
		row := tx.QueryRow(ctx, q, assessmentID, req.QuestionText, req.QuestionType, options, req.CorrectAnswer, points, nextOrder)
		return scanAssessmentQuestion(row, &created)
	})
	if err != nil {
		return model.AssessmentQuestion{}, fmt.Errorf("insert assessment question: %w", err)
	}
	return created, nil
}

func (r *Repository) GetAssessmentQuestionByID(ctx context.Context, id int64) (model.AssessmentQuestion, error) {
	const q = `
SELECT question_id, assessment_id, question_text, question_type, options, correct_answer, points, question_order, created_at
FROM assessment_questions WHERE question_id = $1
`
	var out model.AssessmentQuestion
	if err := scanAssessmentQuestion(r.db.QueryRow(ctx, q, id), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AssessmentQuestion{}, fmt.Errorf("assessment question %d: %w", id, ErrNotFound)
		}
		return model.AssessmentQuestion{}, fmt.Errorf("scan assessment question: %w", err)
	}
	return out, nil
}

func (r *Repository) ListAssessmentQuestions(ctx context.Context, assessmentID int64) ([]model.AssessmentQuestion, error) {
	const q = `
SELECT question_id, assessment_id, question_text, question_type, options, correct_answer, points, question_order, created_at
FROM assessment_questions
WHERE assessment_id = $1
ORDER BY question_order ASC
`
	rows, err := r.db.Query(ctx, q, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("query assessment questions: %w", err)
	}
	defer rows.Close()

	out := []model.AssessmentQuestion{}
	for rows.Next() {
		var aq model.AssessmentQuestion
		if err := scanAssessmentQuestion(rows, &aq); err != nil {
			return nil, fmt.Errorf("scan assessment question row: %w", err)
		}
		out = append(out, aq)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) UpdateAssessmentQuestion(ctx context.Context, id int64, req model.UpdateAssessmentQuestionRequest) (model.AssessmentQuestion, error) {
	updates := make(map[string]interface{})
	if req.QuestionText != nil {
		updates["question_text"] = *req.QuestionText
	}
	if req.QuestionType != nil {
		updates["question_type"] = *req.QuestionType
	}
	if req.Options != nil {
		updates["options"] = *req.Options
	}
	if req.CorrectAnswer != nil {
		updates["correct_answer"] = *req.CorrectAnswer
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if len(updates) == 0 {
		return r.GetAssessmentQuestionByID(ctx, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argId := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argId))
		args = append(args, val)
		argId++
	}
	args = append(args, id)

	q := fmt.Sprintf(`
UPDATE assessment_questions SET %s
WHERE question_id = $%d
RETURNING question_id, assessment_id, question_text, question_type, options, correct_answer, points, question_order, created_at
`, strings.Join(setClauses, ", "), argId)

	var out model.AssessmentQuestion
	if err := scanAssessmentQuestion(r.db.QueryRow(ctx, q, args...), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AssessmentQuestion{}, fmt.Errorf("assessment question %d: %w", id, ErrNotFound)
		}
		return model.AssessmentQuestion{}, fmt.Errorf("update assessment question: %w", err)
	}
	return out, nil
}

func (r *Repository) DeleteAssessmentQuestion(ctx context.Context, id int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var assessmentID int64
		var order int
		const qCur = `SELECT assessment_id, question_order FROM assessment_questions WHERE question_id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, qCur, id).Scan(&assessmentID, &order); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("assessment question %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("lock assessment question: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM assessment_questions WHERE question_id = $1`, id); err != nil {
			return fmt.Errorf("delete assessment question: %w", err)
		}
		const qShift = `
UPDATE assessment_questions SET question_order = question_order - 1
WHERE assessment_id = $1 AND question_order > $2
`
		if _, err := tx.Exec(ctx, qShift, assessmentID, order); err != nil {
			return fmt.Errorf("renumber questions: %w", err)
		}
		return nil
	})
}

// SetAssessmentQuestionOrder moves a question to newOrder within its
// assessment, keeping sibling orders a dense 0..n-1 sequence.
func (r *Repository) SetAssessmentQuestionOrder(ctx context.Context, id int64, newOrder int) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var assessmentID int64
		var cur int
		const qCur = `SELECT assessment_id, question_order FROM assessment_questions WHERE question_id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, qCur, id).Scan(&assessmentID, &cur); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("assessment question %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("lock assessment question: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM assessment_questions WHERE assessment_id = $1`, assessmentID).Scan(&count); err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		newOrder = pkg.Clamp(newOrder, 0, count-1)
		if newOrder == cur {
			return nil
		}

		if newOrder < cur {
			const shift = `
UPDATE assessment_questions SET question_order = question_order + 1
WHERE assessment_id = $1 AND question_order >= $2 AND question_order < $3
`
			if _, err := tx.Exec(ctx, shift, assessmentID, newOrder, cur); err != nil {
				return fmt.Errorf("shift questions up: %w", err)
			}
		} else {
			const shift = `
UPDATE assessment_questions SET question_order = question_order - 1
WHERE assessment_id = $1 AND question_order > $2 AND question_order <= $3
`
			if _, err := tx.Exec(ctx, shift, assessmentID, cur, newOrder); err != nil {
				return fmt.Errorf("shift questions down: %w", err)
			}
		}
		if _, err := tx.Exec(ctx, `UPDATE assessment_questions SET question_order = $1 WHERE question_id = $2`, newOrder, id); err != nil {
			return fmt.Errorf("move question: %w", err)
		}
		return nil
	})
}

func scanResult(row pgx.Row, res *model.AssessmentResult) error {
	return row.Scan(&res.ResultID, &res.CandidateID, &res.AssessmentID, &res.Status,
		&res.StartTime, &res.CompletedAt, &res.TotalScore)
}

// StartAssessmentResult opens a result row. An InProgress result for the same
// candidate/assessment pair is a conflict.
func (r *Repository) StartAssessmentResult(ctx context.Context, candidateID, assessmentID int64) (model.AssessmentResult, error) {
	var res model.AssessmentResult
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const qActive = `
SELECT EXISTS (
	SELECT 1 FROM assessment_results
	WHERE candidate_id = $1 AND assessment_id = $2 AND status = 'InProgress'
)
`
		var active bool
		if err := tx.QueryRow(ctx, qActive, candidateID, assessmentID).Scan(&active); err != nil {
			return fmt.Errorf("check active result: %w", err)
		}
		if active {
			return fmt.Errorf("candidate %d assessment %d: %w", candidateID, assessmentID, ErrDuplicate)
		}

		const q = `
INSERT INTO assessment_results (candidate_id, assessment_id)
VALUES ($1, $2)
RETURNING result_id, candidate_id, assessment_id, status, start_time, completed_at, total_score
`
		return scanResult(tx.QueryRow(ctx, q, candidateID, assessmentID), &res)
	})
	if err != nil {
		return model.AssessmentResult{}, err
	}
	return res, nil
}

func (r *Repository) GetAssessmentResult(ctx context.Context, resultID int64) (model.AssessmentResult, error) {
	const q = `
SELECT result_id, candidate_id, assessment_id, status, start_time, completed_at, total_score
FROM assessment_results WHERE result_id = $1
`
	var res model.AssessmentResult
	if err := scanResult(r.db.QueryRow(ctx, q, resultID), &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AssessmentResult{}, fmt.Errorf("assessment result %d: %w", resultID, ErrNotFound)
		}
		return model.AssessmentResult{}, fmt.Errorf("scan assessment result: %w", err)
	}
	return res, nil
}

func (r *Repository) ListAssessmentResultsByCandidate(ctx context.Context, candidateID int64) ([]model.AssessmentResult, error) {
	const q = `
SELECT result_id, candidate_id, assessment_id, status, start_time, completed_at, total_score
FROM assessment_results
WHERE candidate_id = $1
ORDER BY start_time DESC
`
	rows, err := r.db.Query(ctx, q, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query assessment results: %w", err)
	}
	defer rows.Close()

	out := []model.AssessmentResult{}
	for rows.Next() {
		var res model.AssessmentResult
		if err := scanResult(rows, &res); err != nil {
			return nil, fmt.Errorf("scan assessment result row: %w", err)
		}
		out = append(out, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) ListQuestionResponses(ctx context.Context, resultID int64) ([]model.QuestionResponse, error) {
	const q = `
SELECT response_id, result_id, question_id, response_text, score, ai_feedback, responded_at
FROM question_responses
WHERE result_id = $1
ORDER BY responded_at ASC, response_id ASC
`
	rows, err := r.db.Query(ctx, q, resultID)
	if err != nil {
		return nil, fmt.Errorf("query question responses: %w", err)
	}
	defer rows.Close()

	out := []model.QuestionResponse{}
	for rows.Next() {
		var qr model.QuestionResponse
		if err := rows.Scan(&qr.ResponseID, &qr.ResultID, &qr.QuestionID, &qr.ResponseText, &qr.Score, &qr.AIFeedback, &qr.RespondedAt); err != nil {
			return nil, fmt.Errorf("scan question response row: %w", err)
		}
		out = append(out, qr)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpsertQuestionResponse stores a graded response (resubmission overwrites)
// and recomputes the result's total in the same transaction. Returns the saved
// response and the new total.
func (r *Repository) UpsertQuestionResponse(ctx context.Context, resp *model.QuestionResponse) (model.QuestionResponse, float64, error) {
	var saved model.QuestionResponse
	var total float64
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const q = `
INSERT INTO question_responses (result_id, question_id, response_text, score, ai_feedback)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (result_id, question_id) DO UPDATE
SET response_text = EXCLUDED.response_text,
    score = EXCLUDED.score,
    ai_feedback = EXCLUDED.ai_feedback,
    responded_at = now()
RETURNING response_id, result_id, question_id, response_text, score, ai_feedback, responded_at
`
		row := tx.QueryRow(ctx, q, resp.ResultID, resp.QuestionID, resp.ResponseText, resp.Score, resp.AIFeedback)
		if err := row.Scan(&saved.ResponseID, &saved.ResultID, &saved.QuestionID, &saved.ResponseText, &saved.Score, &saved.AIFeedback, &saved.RespondedAt); err != nil {
			return fmt.Errorf("upsert question response: %w", err)
		}
		return recomputeTotal(ctx, tx, resp.ResultID, &total)
	})
	return saved, total, err
}

// SetManualScore grades one pending response by hand and recomputes the
// total. When every response carries a score the result moves to Graded.
func (r *Repository) SetManualScore(ctx context.Context, resultID, questionID int64, score float64) (float64, error) {
	var total float64
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE question_responses SET score = $1 WHERE result_id = $2 AND question_id = $3`, score, resultID, questionID)
		if err != nil {
			return fmt.Errorf("set manual score: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("response for question %d: %w", questionID, ErrNotFound)
		}
		if err := recomputeTotal(ctx, tx, resultID, &total); err != nil {
			return err
		}

		const qPending = `
SELECT NOT EXISTS (SELECT 1 FROM question_responses WHERE result_id = $1 AND score IS NULL)
`
		var allGraded bool
		if err := tx.QueryRow(ctx, qPending, resultID).Scan(&allGraded); err != nil {
			return fmt.Errorf("check pending responses: %w", err)
		}
		if allGraded {
			if _, err := tx.Exec(ctx, `UPDATE assessment_results SET status = $1 WHERE result_id = $2 AND status = $3`,
				model.ResultGraded, resultID, model.ResultCompleted); err != nil {
				return fmt.Errorf("mark result graded: %w", err)
			}
		}
		return nil
	})
	return total, err
}

// CompleteAssessmentResult closes the attempt. Status lands on Graded when
// nothing awaits manual review, else Completed.
func (r *Repository) CompleteAssessmentResult(ctx context.Context, resultID int64) (model.AssessmentResult, error) {
	var res model.AssessmentResult
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		var status model.ResultStatus
		if err := tx.QueryRow(ctx, `SELECT status FROM assessment_results WHERE result_id = $1 FOR UPDATE`, resultID).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("assessment result %d: %w", resultID, ErrNotFound)
			}
			return fmt.Errorf("lock assessment result: %w", err)
		}
		if status != model.ResultInProgress {
			return fmt.Errorf("assessment result %d already completed: %w", resultID, ErrDuplicate)
		}

		var total float64
		if err := recomputeTotal(ctx, tx, resultID, &total); err != nil {
			return err
		}

		const qPending = `
SELECT NOT EXISTS (SELECT 1 FROM question_responses WHERE result_id = $1 AND score IS NULL)
`
		var allGraded bool
		if err := tx.QueryRow(ctx, qPending, resultID).Scan(&allGraded); err != nil {
			return fmt.Errorf("check pending responses: %w", err)
		}
		newStatus := model.ResultCompleted
		if allGraded {
			newStatus = model.ResultGraded
		}

		const q = `
UPDATE assessment_results SET status = $1, completed_at = now()
WHERE result_id = $2
RETURNING result_id, candidate_id, assessment_id, status, start_time, completed_at, total_score
`
		return scanResult(tx.QueryRow(ctx, q, newStatus, resultID), &res)
	})
	if err != nil {
		return model.AssessmentResult{}, err
	}
	return res, nil
}

// recomputeTotal sums populated response scores into the result row. Pending
// scores are excluded, not counted as zero.
func recomputeTotal(ctx context.Context, tx pgx.Tx, resultID int64, total *float64) error {
	const q = `
UPDATE assessment_results
SET total_score = (
	SELECT COALESCE(SUM(score), 0) FROM question_responses
	WHERE result_id = $1 AND score IS NOT NULL
)
WHERE result_id = $1
RETURNING total_score
`
	if err := tx.QueryRow(ctx, q, resultID).Scan(total); err != nil {
		return fmt.Errorf("recompute total score: %w", err)
	}
	return nil
}
