package model

import "time"

type VideoInterview struct {
	VideoInterviewID int64     `json:"video_interview_id" db:"video_interview_id"`
	CandidateID      int64     `json:"candidate_id" db:"candidate_id"`
	JobDescriptionID int64     `json:"job_description_id" db:"job_description_id"`
	InterviewType    string    `json:"interview_type" db:"interview_type"`
	InterviewDate    time.Time `json:"interview_date" db:"interview_date"`
	DurationSeconds  *int      `json:"duration_seconds" db:"duration_seconds"`
	VideoURL         string    `json:"video_url" db:"video_url"`
	SentimentScore   *float64  `json:"sentiment_score" db:"sentiment_score"`
	BehaviorSummary  *string   `json:"behavior_analysis_summary" db:"behavior_summary"`
	KeywordsDetected *string   `json:"keywords_detected" db:"keywords_detected"`
	AIFeedbackRaw    *string   `json:"ai_feedback_raw" db:"ai_feedback_raw"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// VideoAnalysis is what the analysis step produces for a recorded interview.
type VideoAnalysis struct {
	SentimentScore  float64  `json:"sentiment_score"`
	BehaviorSummary string   `json:"behavior_analysis_summary"`
	Keywords        []string `json:"keywords_detected"`
	RawFeedback     string   `json:"ai_feedback_raw"`
}
