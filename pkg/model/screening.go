package model

import "time"

type QuestionType string

const (
	QuestionTypeText  QuestionType = "text"
	QuestionTypeVoice QuestionType = "voice"
	QuestionTypeVideo QuestionType = "video"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeVoice, QuestionTypeVideo:
		return true
	}
	return false
}

type ScreeningQuestion struct {
	QuestionID       int64        `json:"question_id" db:"question_id"`
	JobDescriptionID int64        `json:"job_description_id" db:"job_description_id"`
	QuestionText     string       `json:"question_text" db:"question_text"`
	QuestionType     QuestionType `json:"question_type" db:"question_type"`
	ExpectedKeywords []string     `json:"expected_keywords" db:"expected_keywords"`
	IdealAnswer      *string      `json:"ideal_answer" db:"ideal_answer"`
	QuestionOrder    int          `json:"order" db:"question_order"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

type CreateScreeningQuestionRequest struct {
	JobDescriptionID int64        `json:"job_description_id" binding:"required"`
	QuestionText     string       `json:"question_text" binding:"required"`
	QuestionType     QuestionType `json:"question_type"`
	ExpectedKeywords []string     `json:"expected_keywords"`
	IdealAnswer      *string      `json:"ideal_answer,omitempty"`
}

type UpdateScreeningQuestionRequest struct {
	QuestionText     *string       `json:"question_text,omitempty"`
	QuestionType     *QuestionType `json:"question_type,omitempty"`
	ExpectedKeywords *[]string     `json:"expected_keywords,omitempty"`
	IdealAnswer      *string       `json:"ideal_answer,omitempty"`
}

// SessionState is the screening interview lifecycle. A session moves
// in_progress -> finalizing once the last question is answered, and
// finalizing -> completed on finalize. The error state is terminal.
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionFinalizing SessionState = "finalizing"
	SessionCompleted  SessionState = "completed"
	SessionError      SessionState = "error"
)

type ScreeningSession struct {
	InterviewID      int64        `json:"interview_id" db:"interview_id"`
	CandidateID      int64        `json:"candidate_id" db:"candidate_id"`
	JobDescriptionID int64        `json:"job_description_id" db:"job_description_id"`
	State            SessionState `json:"state" db:"state"`
	CurrentQuestion  int          `json:"current_question_index" db:"current_question_index"`
	OverallScore     *float64     `json:"overall_score" db:"overall_score"`
	StartedAt        time.Time    `json:"started_at" db:"started_at"`
	CompletedAt      *time.Time   `json:"completed_at" db:"completed_at"`
}

type ScreeningAnswer struct {
	AnswerID       int64     `json:"answer_id" db:"answer_id"`
	InterviewID    int64     `json:"interview_id" db:"interview_id"`
	QuestionID     int64     `json:"question_id" db:"question_id"`
	ResponseText   string    `json:"response_text" db:"response_text"`
	MediaFilepath  *string   `json:"media_filepath" db:"media_filepath"`
	Score          float64   `json:"score" db:"score"`
	SentimentScore float64   `json:"sentiment_score" db:"sentiment_score"`
	AnsweredAt     time.Time `json:"answered_at" db:"answered_at"`
}

type StartInterviewResponse struct {
	InterviewID int64               `json:"interview_id"`
	Questions   []ScreeningQuestion `json:"questions"`
}

type SubmitAnswerResponse struct {
	Score          float64      `json:"score"`
	SentimentScore float64      `json:"sentiment_score"`
	State          SessionState `json:"state"`
	NextQuestionID *int64       `json:"next_question_id"`
}

type FinalizeResponse struct {
	InterviewID  int64   `json:"interview_id"`
	OverallScore float64 `json:"overall_score"`
	Answered     int     `json:"answered"`
}
