package handler

import (
	"errors"
	"strconv"

	"github.com/brianmahove/recruiting-ai/internal/repository"
	"github.com/brianmahove/recruiting-ai/internal/screening"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateScreeningQuestion(c *gin.Context) {
	var req model.CreateScreeningQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.QuestionType == "" {
		req.QuestionType = model.QuestionTypeText
	}
	if !req.QuestionType.Valid() {
		response.ValidationError(c, "question_type must be text, voice or video")
		return
	}
	if _, err := h.Repo.GetJobDescriptionByID(c.Request.Context(), req.JobDescriptionID); err != nil {
		h.repoError(c, err)
		return
	}
	q, err := h.Repo.CreateScreeningQuestion(c.Request.Context(), req)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, q)
}

func (h *Handler) ListScreeningQuestions(c *gin.Context) {
	jdID, err := strconv.ParseInt(c.Query("job_description_id"), 10, 64)
	if err != nil || jdID < 1 {
		response.ValidationError(c, "job_description_id query parameter is required")
		return
	}
	questions, err := h.Repo.ListScreeningQuestions(c.Request.Context(), jdID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, questions)
}

func (h *Handler) GetScreeningQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, err := h.Repo.GetScreeningQuestionByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, q)
}

func (h *Handler) UpdateScreeningQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateScreeningQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.QuestionType != nil && !req.QuestionType.Valid() {
		response.ValidationError(c, "question_type must be text, voice or video")
		return
	}
	if err := h.Repo.UpdateScreeningQuestion(c.Request.Context(), id, req); err != nil {
		h.repoError(c, err)
		return
	}
	q, err := h.Repo.GetScreeningQuestionByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, q)
}

type setOrderRequest struct {
	Order *int `json:"order" binding:"required"`
}

// SetScreeningQuestionOrder moves a question within its job description's
// sequence, renumbering siblings densely.
func (h *Handler) SetScreeningQuestionOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req setOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if *req.Order < 0 {
		response.ValidationError(c, "order must not be negative")
		return
	}
	if err := h.Repo.SetScreeningQuestionOrder(c.Request.Context(), id, *req.Order); err != nil {
		h.repoError(c, err)
		return
	}
	q, err := h.Repo.GetScreeningQuestionByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, q)
}

func (h *Handler) DeleteScreeningQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteScreeningQuestion(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	response.Message(c, "question deleted")
}

// StartInterview opens a screening session for a candidate/job pair. At most
// one live session per pair is allowed, enforced both in the database and via
// a redis lock so concurrent starts across processes lose cleanly.
func (h *Handler) StartInterview(c *gin.Context) {
	candidateID, ok := pathID(c, "candidate_id")
	if !ok {
		return
	}
	jobID, ok := pathID(c, "job_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Repo.GetCandidateByID(ctx, candidateID); err != nil {
		h.repoError(c, err)
		return
	}
	if _, err := h.Repo.GetJobDescriptionByID(ctx, jobID); err != nil {
		h.repoError(c, err)
		return
	}
	questions, err := h.Repo.ListScreeningQuestions(ctx, jobID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if len(questions) == 0 {
		response.ValidationError(c, "no screening questions configured for this job description")
		return
	}

	session, err := h.Repo.CreateScreeningSession(ctx, candidateID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.SessionConflict(c, "an interview for this candidate and job is already in progress")
			return
		}
		h.repoError(c, err)
		return
	}

	acquired, err := h.Locks.Acquire(ctx, candidateID, jobID, session.InterviewID)
	if err != nil {
		h.Logger.Sugar().Warnw("acquire session lock", "interview_id", session.InterviewID, "err", err)
	} else if !acquired {
		_ = h.Repo.FailScreeningSession(ctx, session.InterviewID)
		response.SessionConflict(c, "an interview for this candidate and job is already in progress")
		return
	}

	response.Created(c, model.StartInterviewResponse{
		InterviewID: session.InterviewID,
		Questions:   questions,
	})
}

// SubmitAnswer records and scores one answer. Accepts multipart so voice and
// video answers can attach a media file alongside the transcript.
func (h *Handler) SubmitAnswer(c *gin.Context) {
	interviewID, ok := pathID(c, "interview_id")
	if !ok {
		return
	}
	questionID, ok := pathID(c, "question_id")
	if !ok {
		return
	}
	responseText := c.PostForm("response_text")
	ctx := c.Request.Context()

	var resp model.SubmitAnswerResponse
	submitErr := h.Guard.Do(interviewID, func() error {
		session, err := h.Repo.GetScreeningSession(ctx, interviewID)
		if err != nil {
			return err
		}
		if err := screening.CanSubmit(session.State); err != nil {
			return err
		}

		question, err := h.Repo.GetScreeningQuestionByID(ctx, questionID)
		if err != nil {
			return err
		}
		if question.JobDescriptionID != session.JobDescriptionID {
			return errQuestionMismatch
		}

		questions, err := h.Repo.ListScreeningQuestions(ctx, session.JobDescriptionID)
		if err != nil {
			return err
		}
		answers, err := h.Repo.ListScreeningAnswers(ctx, interviewID)
		if err != nil {
			return err
		}
		if screening.AlreadyAnswered(answers, questionID) {
			return screening.ErrDuplicateAnswer
		}

		var mediaPath *string
		if file, err := c.FormFile("media"); err == nil && file != nil {
			if file.Size > h.MaxVideo {
				return errMediaTooLarge
			}
			stored, _, err := h.VideoStore.Save(file)
			if err != nil {
				return err
			}
			mediaPath = &stored
		}

		result := screening.EvaluateAnswer(question, responseText)
		newState := screening.Advance(len(answers)+1, len(questions))
		newIndex := session.CurrentQuestion + 1

		answer := &model.ScreeningAnswer{
			InterviewID:    interviewID,
			QuestionID:     questionID,
			ResponseText:   responseText,
			MediaFilepath:  mediaPath,
			Score:          result.Score,
			SentimentScore: result.SentimentScore,
		}
		if _, err := h.Repo.SaveScreeningAnswer(ctx, answer, newState, newIndex); err != nil {
			return err
		}

		if err := h.Locks.Refresh(ctx, session.CandidateID, session.JobDescriptionID); err != nil {
			h.Logger.Sugar().Warnw("refresh session lock", "interview_id", interviewID, "err", err)
		}

		resp = model.SubmitAnswerResponse{
			Score:          result.Score,
			SentimentScore: result.SentimentScore,
			State:          newState,
		}
		if newState == model.SessionInProgress && newIndex < len(questions) {
			resp.NextQuestionID = &questions[newIndex].QuestionID
		}
		return nil
	})
	if submitErr != nil {
		h.screeningError(c, submitErr)
		return
	}
	response.OK(c, resp)
}

// FinalizeInterview aggregates the answer scores into an overall score and
// closes the session. Calling it again on a completed session returns the
// stored score unchanged.
func (h *Handler) FinalizeInterview(c *gin.Context) {
	interviewID, ok := pathID(c, "interview_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var resp model.FinalizeResponse
	finalizeErr := h.Guard.Do(interviewID, func() error {
		session, err := h.Repo.GetScreeningSession(ctx, interviewID)
		if err != nil {
			return err
		}
		if err := screening.CanFinalize(session.State); err != nil {
			return err
		}

		answers, err := h.Repo.ListScreeningAnswers(ctx, interviewID)
		if err != nil {
			return err
		}

		if session.State == model.SessionCompleted {
			score := 0.0
			if session.OverallScore != nil {
				score = *session.OverallScore
			}
			resp = model.FinalizeResponse{InterviewID: interviewID, OverallScore: score, Answered: len(answers)}
			return nil
		}

		score := screening.OverallScore(answers)
		if err := h.Repo.CompleteScreeningSession(ctx, interviewID, score); err != nil {
			return err
		}
		if err := h.Locks.Release(ctx, session.CandidateID, session.JobDescriptionID); err != nil {
			h.Logger.Sugar().Warnw("release session lock", "interview_id", interviewID, "err", err)
		}
		resp = model.FinalizeResponse{InterviewID: interviewID, OverallScore: score, Answered: len(answers)}
		return nil
	})
	if finalizeErr != nil {
		h.screeningError(c, finalizeErr)
		return
	}
	h.Guard.Forget(interviewID)
	response.OK(c, resp)
}

func (h *Handler) GetInterview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	session, err := h.Repo.GetScreeningSession(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	answers, err := h.Repo.ListScreeningAnswers(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, gin.H{"session": session, "answers": answers})
}

var (
	errQuestionMismatch = errors.New("question does not belong to this interview's job description")
	errMediaTooLarge    = errors.New("media file exceeds the maximum upload size")
)

// screeningError extends repoError with the session lifecycle errors.
func (h *Handler) screeningError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, screening.ErrAlreadyCompleted):
		response.AlreadyCompleted(c, err.Error())
	case errors.Is(err, screening.ErrSessionConflict):
		response.SessionConflict(c, err.Error())
	case errors.Is(err, screening.ErrNotFinalizing), errors.Is(err, screening.ErrDuplicateAnswer):
		response.Conflict(c, err.Error())
	case errors.Is(err, errQuestionMismatch), errors.Is(err, errMediaTooLarge):
		response.ValidationError(c, err.Error())
	default:
		h.repoError(c, err)
	}
}
