package model

import "time"

type AssessmentQuestionType string

const (
	AssessmentOpenText       AssessmentQuestionType = "OpenText"
	AssessmentMultipleChoice AssessmentQuestionType = "MultipleChoice"
	AssessmentTrueFalse      AssessmentQuestionType = "TrueFalse"
	AssessmentCodeSnippet    AssessmentQuestionType = "CodeSnippet"
)

func (t AssessmentQuestionType) Valid() bool {
	switch t {
	case AssessmentOpenText, AssessmentMultipleChoice, AssessmentTrueFalse, AssessmentCodeSnippet:
		return true
	}
	return false
}

// NeedsOptions reports whether the type requires a non-empty options list.
func (t AssessmentQuestionType) NeedsOptions() bool {
	return t == AssessmentMultipleChoice || t == AssessmentTrueFalse
}

type Assessment struct {
	AssessmentID     int64     `json:"assessment_id" db:"assessment_id"`
	Title            string    `json:"title" db:"title"`
	Description      *string   `json:"description" db:"description"`
	AssessmentType   string    `json:"assessment_type" db:"assessment_type"`
	DurationMinutes  *int      `json:"duration_minutes" db:"duration_minutes"`
	JobDescriptionID *int64    `json:"job_description_id" db:"job_description_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

type CreateAssessmentRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      *string `json:"description,omitempty"`
	AssessmentType   string  `json:"assessment_type"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty"`
	JobDescriptionID *int64  `json:"job_description_id,omitempty"`
}

type UpdateAssessmentRequest struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	AssessmentType   *string `json:"assessment_type,omitempty"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty"`
	JobDescriptionID *int64  `json:"job_description_id,omitempty"`
}

type AssessmentQuestion struct {
	QuestionID    int64                  `json:"question_id" db:"question_id"`
	AssessmentID  int64                  `json:"assessment_id" db:"assessment_id"`
	QuestionText  string                 `json:"question_text" db:"question_text"`
	QuestionType  AssessmentQuestionType `json:"question_type" db:"question_type"`
	Options       []string               `json:"options" db:"options"`
	CorrectAnswer *string                `json:"correct_answer" db:"correct_answer"`
	Points        float64                `json:"points" db:"points"`
	QuestionOrder int                    `json:"order" db:"question_order"`
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
}

type CreateAssessmentQuestionRequest struct {
	QuestionText  string                 `json:"question_text" binding:"required"`
	QuestionType  AssessmentQuestionType `json:"question_type"`
	Options       []string               `json:"options"`
	CorrectAnswer *string                `json:"correct_answer,omitempty"`
	Points        *float64               `json:"points,omitempty"`
}

type UpdateAssessmentQuestionRequest struct {
	QuestionText  *string                 `json:"question_text,omitempty"`
	QuestionType  *AssessmentQuestionType `json:"question_type,omitempty"`
	Options       *[]string               `json:"options,omitempty"`
	CorrectAnswer *string                 `json:"correct_answer,omitempty"`
	Points        *float64                `json:"points,omitempty"`
}

type ResultStatus string

const (
	ResultInProgress ResultStatus = "InProgress"
	ResultCompleted  ResultStatus = "Completed"
	ResultGraded     ResultStatus = "Graded"
)

type AssessmentResult struct {
	ResultID     int64        `json:"result_id" db:"result_id"`
	CandidateID  int64        `json:"candidate_id" db:"candidate_id"`
	AssessmentID int64        `json:"assessment_id" db:"assessment_id"`
	Status       ResultStatus `json:"status" db:"status"`
	StartTime    time.Time    `json:"start_time" db:"start_time"`
	CompletedAt  *time.Time   `json:"completed_at" db:"completed_at"`
	TotalScore   float64      `json:"total_score" db:"total_score"`
}

// QuestionResponse.Score is nil while a response awaits manual grading
// (CodeSnippet, or OpenText with no answer key). A nil score is excluded from
// TotalScore, not counted as zero.
type QuestionResponse struct {
	ResponseID   int64     `json:"response_id" db:"response_id"`
	ResultID     int64     `json:"result_id" db:"result_id"`
	QuestionID   int64     `json:"question_id" db:"question_id"`
	ResponseText string    `json:"response_text" db:"response_text"`
	Score        *float64  `json:"score" db:"score"`
	AIFeedback   *string   `json:"ai_feedback" db:"ai_feedback"`
	RespondedAt  time.Time `json:"responded_at" db:"responded_at"`
}

type SubmitResponseRequest struct {
	QuestionID   int64   `json:"question_id" binding:"required"`
	ResponseText *string `json:"response_text" binding:"required"`
}

type SubmitResponseResult struct {
	Response   QuestionResponse `json:"response"`
	TotalScore float64          `json:"total_score"`
}

type ManualGradeRequest struct {
	QuestionID int64   `json:"question_id" binding:"required"`
	Score      float64 `json:"score"`
}

type AssessmentResultDetail struct {
	AssessmentResult
	Responses []QuestionResponse `json:"responses"`
}
