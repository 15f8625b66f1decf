package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateScreeningQuestion(ctx context.Context, req model.CreateScreeningQuestionRequest) (model.ScreeningQuestion, error) {
	var created model.ScreeningQuestion
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		var nextOrder int
		const qOrder = `SELECT COALESCE(MAX(question_order) + 1, 0) FROM screening_questions WHERE job_description_id = $1`
		if err := tx.QueryRow(ctx, qOrder, req.JobDescriptionID).Scan(&nextOrder); err != nil {
			return fmt.Errorf("next question order: %w", err)
		}

		keywords := req.ExpectedKeywords
		if keywords == nil {
			keywords = []string{}
		}
		const q = `
INSERT INTO screening_questions (job_description_id, question_text, question_type, expected_keywords, ideal_answer, question_order)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING question_id, job_description_id, question_text, question_type, expected_keywords, ideal_answer, question_order, created_at, updated_at
`
		row := tx.QueryRow(ctx, q, req.JobDescriptionID, req.QuestionText, req.QuestionType, keywords, req.IdealAnswer, nextOrder)
		return scanScreeningQuestion(row, &created)
	})
	if err != nil {
		return model.ScreeningQuestion{}, fmt.Errorf("insert screening question: %w", err)
	}
	return created, nil
}

func scanScreeningQuestion(row pgx.Row, q *model.ScreeningQuestion) error {
	return row.Scan(&q.QuestionID, &q.JobDescriptionID, &q.QuestionText, &q.QuestionType,
		&q.ExpectedKeywords, &q.IdealAnswer, &q.QuestionOrder, &q.CreatedAt, &q.UpdatedAt)
}

func (r *Repository) GetScreeningQuestionByID(ctx context.Context, id int64) (model.ScreeningQuestion, error) {
	const q = `
SELECT question_id, job_description_id, question_text, question_type, expected_keywords, ideal_answer, question_order, created_at, updated_at
FROM screening_questions WHERE question_id = $1
`
	var out model.ScreeningQuestion
	if err := scanScreeningQuestion(r.db.QueryRow(ctx, q, id), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ScreeningQuestion{}, fmt.Errorf("screening question %d: %w", id, ErrNotFound)
		}
		return model.ScreeningQuestion{}, fmt.Errorf("scan screening question: %w", err)
	}
	return out, nil
}

// ListScreeningQuestions returns a JD's questions in interview order.
func (r *Repository) ListScreeningQuestions(ctx context.Context, jobDescriptionID int64) ([]model.ScreeningQuestion, error) {
	const q = `
SELECT question_id, job_description_id, question_text, question_type, expected_keywords, ideal_answer, question_order, created_at, updated_at
FROM screening_questions
WHERE job_description_id = $1
ORDER BY question_order ASC
`
	rows, err := r.db.Query(ctx, q, jobDescriptionID)
	if err != nil {
		return nil, fmt.Errorf("query screening questions: %w", err)
	}
	defer rows.Close()

	out := []model.ScreeningQuestion{}
	for rows.Next() {
		var sq model.ScreeningQuestion
		if err := scanScreeningQuestion(rows, &sq); err != nil {
			return nil, fmt.Errorf("scan screening question row: %w", err)
		}
		out = append(out, sq)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) UpdateScreeningQuestion(ctx context.Context, id int64, req model.UpdateScreeningQuestionRequest) error {
	updates := map[string]interface{}{}
	if req.QuestionText != nil {
		updates["question_text"] = *req.QuestionText
	}
	if req.QuestionType != nil {
		updates["question_type"] = *req.QuestionType
	}
	if req.ExpectedKeywords != nil {
		updates["expected_keywords"] = *req.ExpectedKeywords
	}
	if req.IdealAnswer != nil {
		updates["ideal_answer"] = *req.IdealAnswer
	}
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE screening_questions SET updated_at = now()"
	args := []interface{}{}
	argId := 1
	for col, val := range updates {
		query += fmt.Sprintf(", %s = $%d", col, argId)
		args = append(args, val)
		argId++
	}
	query += fmt.Sprintf(" WHERE question_id = $%d", argId)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update screening question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("screening question %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteScreeningQuestion removes a question and renumbers the JD's remaining
// questions densely.
func (r *Repository) DeleteScreeningQuestion(ctx context.Context, id int64) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var jdID int64
		var order int
		const qCur = `SELECT job_description_id, question_order FROM screening_questions WHERE question_id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, qCur, id).Scan(&jdID, &order); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("screening question %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("lock screening question: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM screening_answers WHERE question_id = $1`, id); err != nil {
			return fmt.Errorf("delete question answers: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM screening_questions WHERE question_id = $1`, id); err != nil {
			return fmt.Errorf("delete screening question: %w", err)
		}
		const qShift = `
UPDATE screening_questions SET question_order = question_order - 1, updated_at = now()
WHERE job_description_id = $1 AND question_order > $2
`
		if _, err := tx.Exec(ctx, qShift, jdID, order); err != nil {
			return fmt.Errorf("renumber questions: %w", err)
		}
		return nil
	})
}

// SetScreeningQuestionOrder moves a question to newOrder within its JD,
// keeping sibling orders a dense 0..n-1 sequence. Out-of-range targets clamp.
func (r *Repository) SetScreeningQuestionOrder(ctx context.Context, id int64, newOrder int) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var jdID int64
		var cur int
		const qCur = `SELECT job_description_id, question_order FROM screening_questions WHERE question_id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, qCur, id).Scan(&jdID, &cur); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("screening question %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("lock screening question: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM screening_questions WHERE job_description_id = $1`, jdID).Scan(&count); err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		newOrder = pkg.Clamp(newOrder, 0, count-1)
		if newOrder == cur {
			return nil
		}

		if newOrder < cur {
			const shift = `
UPDATE screening_questions SET question_order = question_order + 1, updated_at = now()
WHERE job_description_id = $1 AND question_order >= $2 AND question_order < $3
`
			if _, err := tx.Exec(ctx, shift, jdID, newOrder, cur); err != nil {
				return fmt.Errorf("shift questions up: %w", err)
			}
		} else {
			const shift = `
UPDATE screening_questions SET question_order = question_order - 1, updated_at = now()
WHERE job_description_id = $1 AND question_order > $2 AND question_order <= $3
`
			if _, err := tx.Exec(ctx, shift, jdID, cur, newOrder); err != nil {
				return fmt.Errorf("shift questions down: %w", err)
			}
		}
		if _, err := tx.Exec(ctx, `UPDATE screening_questions SET question_order = $1, updated_at = now() WHERE question_id = $2`, newOrder, id); err != nil {
			return fmt.Errorf("move question: %w", err)
		}
		return nil
	})
}

// CreateScreeningSession opens a session. An in_progress or finalizing session
// for the same candidate/JD pair is a conflict.
func (r *Repository) CreateScreeningSession(ctx context.Context, candidateID, jobDescriptionID int64) (model.ScreeningSession, error) {
	var s model.ScreeningSession
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const qActive = `
SELECT EXISTS (
	SELECT 1 FROM screening_sessions
	WHERE candidate_id = $1 AND job_description_id = $2 AND state IN ('in_progress', 'finalizing')
)
`
		var active bool
		if err := tx.QueryRow(ctx, qActive, candidateID, jobDescriptionID).Scan(&active); err != nil {
			return fmt.Errorf("check active session: %w", err)
		}
		if active {
			return fmt.Errorf("candidate %d job %d: %w", candidateID, jobDescriptionID, ErrDuplicate)
		}

		const q = `
INSERT INTO screening_sessions (candidate_id, job_description_id)
VALUES ($1, $2)
RETURNING interview_id, candidate_id, job_description_id, state, current_question_index, overall_score, started_at, completed_at
`
		row := tx.QueryRow(ctx, q, candidateID, jobDescriptionID)
		return row.Scan(&s.InterviewID, &s.CandidateID, &s.JobDescriptionID, &s.State, &s.CurrentQuestion, &s.OverallScore, &s.StartedAt, &s.CompletedAt)
	})
	if err != nil {
		return model.ScreeningSession{}, err
	}
	return s, nil
}

func (r *Repository) GetScreeningSession(ctx context.Context, interviewID int64) (model.ScreeningSession, error) {
	const q = `
SELECT interview_id, candidate_id, job_description_id, state, current_question_index, overall_score, started_at, completed_at
FROM screening_sessions WHERE interview_id = $1
`
	var s model.ScreeningSession
	row := r.db.QueryRow(ctx, q, interviewID)
	if err := row.Scan(&s.InterviewID, &s.CandidateID, &s.JobDescriptionID, &s.State, &s.CurrentQuestion, &s.OverallScore, &s.StartedAt, &s.CompletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ScreeningSession{}, fmt.Errorf("screening session %d: %w", interviewID, ErrNotFound)
		}
		return model.ScreeningSession{}, fmt.Errorf("scan screening session: %w", err)
	}
	return s, nil
}

// SaveScreeningAnswer records one answer and advances the session cursor and
// state together.
func (r *Repository) SaveScreeningAnswer(ctx context.Context, a *model.ScreeningAnswer, newState model.SessionState, newIndex int) (int64, error) {
	var answerID int64
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const q = `
INSERT INTO screening_answers (interview_id, question_id, response_text, media_filepath, score, sentiment_score)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING answer_id
`
		row := tx.QueryRow(ctx, q, a.InterviewID, a.QuestionID, a.ResponseText, a.MediaFilepath, a.Score, a.SentimentScore)
		if err := row.Scan(&answerID); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("answer for question %d: %w", a.QuestionID, ErrDuplicate)
			}
			return fmt.Errorf("insert screening answer: %w", err)
		}

		const qSess = `
UPDATE screening_sessions SET state = $1, current_question_index = $2
WHERE interview_id = $3
`
		if _, err := tx.Exec(ctx, qSess, newState, newIndex, a.InterviewID); err != nil {
			return fmt.Errorf("advance session: %w", err)
		}
		return nil
	})
	return answerID, err
}

func (r *Repository) ListScreeningAnswers(ctx context.Context, interviewID int64) ([]model.ScreeningAnswer, error) {
	const q = `
SELECT answer_id, interview_id, question_id, response_text, media_filepath, score, sentiment_score, answered_at
FROM screening_answers
WHERE interview_id = $1
ORDER BY answered_at ASC, answer_id ASC
`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query screening answers: %w", err)
	}
	defer rows.Close()

	out := []model.ScreeningAnswer{}
	for rows.Next() {
		var a model.ScreeningAnswer
		if err := rows.Scan(&a.AnswerID, &a.InterviewID, &a.QuestionID, &a.ResponseText, &a.MediaFilepath, &a.Score, &a.SentimentScore, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan screening answer row: %w", err)
		}
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// CompleteScreeningSession stores the overall score and marks the session
// completed.
func (r *Repository) CompleteScreeningSession(ctx context.Context, interviewID int64, overallScore float64) error {
	const q = `
UPDATE screening_sessions
SET state = $1, overall_score = $2, completed_at = now()
WHERE interview_id = $3
`
	tag, err := r.db.Exec(ctx, q, model.SessionCompleted, overallScore, interviewID)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("screening session %d: %w", interviewID, ErrNotFound)
	}
	return nil
}

// FailScreeningSession moves a session to the terminal error state.
func (r *Repository) FailScreeningSession(ctx context.Context, interviewID int64) error {
	const q = `UPDATE screening_sessions SET state = $1, completed_at = now() WHERE interview_id = $2`
	if _, err := r.db.Exec(ctx, q, model.SessionError, interviewID); err != nil {
		return fmt.Errorf("fail session: %w", err)
	}
	return nil
}
