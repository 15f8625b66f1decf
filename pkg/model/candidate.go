package model

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	CandidateID       int64      `json:"candidate_id" db:"candidate_id"`
	Name              string     `json:"name" db:"name"`
	Email             *string    `json:"email" db:"email"`
	Phone             *string    `json:"phone" db:"phone"`
	Skills            []string   `json:"skills" db:"skills"`
	Experience        []string   `json:"experience" db:"experience"`
	Education         []string   `json:"education" db:"education"`
	Summary           *string    `json:"summary" db:"summary"`
	MatchScore        *int       `json:"match_score" db:"match_score"`
	MatchedSkills     []string   `json:"matched_skills" db:"matched_skills"`
	Status            string     `json:"status" db:"status"`
	Rating            *int       `json:"rating" db:"rating"`
	AssignedToUserID  *uuid.UUID `json:"assigned_to_user_id" db:"assigned_to_user_id"`
	ResumeFilepath    *string    `json:"resume_filepath" db:"resume_filepath"`
	JobDescriptionID  *int64     `json:"job_description_id" db:"job_description_id"`
	Gender            *string    `json:"gender" db:"gender"`
	Ethnicity         *string    `json:"ethnicity" db:"ethnicity"`
	Source            *string    `json:"source" db:"source"`
	YearsOfExperience *int       `json:"years_of_experience" db:"years_of_experience"`
	HiredAt           *time.Time `json:"hired_at" db:"hired_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// ListCandidatesQuery mirrors the query params on GET /candidates.
type ListCandidatesQuery struct {
	JobDescriptionID *int64  `form:"job_description_id"`
	Status           *string `form:"status"`
	MinScore         *int    `form:"min_score"`
	SearchTerm       *string `form:"search_term"`
	SortBy           string  `form:"sort_by,default=created_at"`
	SortOrder        string  `form:"sort_order,default=desc"`
}

type UpdateCandidateRequest struct {
	Name              *string    `json:"name,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Status            *string    `json:"status,omitempty"`
	Rating            *int       `json:"rating,omitempty" binding:"omitempty,min=0,max=5"`
	AssignedToUserID  *uuid.UUID `json:"assigned_to_user_id,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	Ethnicity         *string    `json:"ethnicity,omitempty"`
	Source            *string    `json:"source,omitempty"`
	YearsOfExperience *int       `json:"years_of_experience,omitempty"`
}

type CandidateNote struct {
	NoteID      int64      `json:"note_id" db:"note_id"`
	CandidateID int64      `json:"candidate_id" db:"candidate_id"`
	UserID      *uuid.UUID `json:"user_id" db:"user_id"`
	NoteText    string     `json:"note_text" db:"note_text"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type AddNoteRequest struct {
	NoteText string `json:"note_text" binding:"required"`
}

// StatusHistory rows are append-only: one row per status transition, never
// updated or removed outside a candidate cascade.
type StatusHistory struct {
	HistoryID   int64      `json:"history_id" db:"history_id"`
	CandidateID int64      `json:"candidate_id" db:"candidate_id"`
	OldStatus   *string    `json:"old_status" db:"old_status"`
	NewStatus   string     `json:"new_status" db:"new_status"`
	ChangedBy   *uuid.UUID `json:"changed_by_user_id" db:"changed_by_user_id"`
	ChangedAt   time.Time  `json:"changed_at" db:"changed_at"`
}

// UploadResult is the payload returned by POST /upload.
type UploadResult struct {
	CandidateID          int64        `json:"candidate_id"`
	JobDescriptionID     int64        `json:"job_description_id"`
	MatchScore           int          `json:"match_score"`
	MatchedSkills        []string     `json:"matched_skills"`
	ParsedResume         ParsedResume `json:"parsed_resume"`
	JobDescriptionSkills []string     `json:"job_description_skills_identified"`
}

type ParsedResume struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Summary    string   `json:"summary"`
}

// BulkUploadReport summarizes a multi-resume upload: per-file outcomes so one
// bad document does not fail the batch.
type BulkUploadReport struct {
	Processed []Candidate `json:"processed"`
	Errors    []string    `json:"errors"`
}
