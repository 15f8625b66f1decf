package model

import "time"

// PipelineStage is a named, ordered hiring-workflow step. Candidate.Status
// always matches the name of an existing stage; StageOrder values form a dense
// 0..n-1 sequence.
type PipelineStage struct {
	StageID     int64     `json:"stage_id" db:"stage_id"`
	Name        string    `json:"name" db:"name"`
	StageOrder  int       `json:"order" db:"stage_order"`
	Description *string   `json:"description" db:"description"`
	IsDefault   bool      `json:"is_default" db:"is_default"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultStageNames seeds the pipeline on first boot, in column order. The
// first entry is the stage candidates land in on upload and fall back to when
// their stage is deleted.
var DefaultStageNames = []string{
	"New Candidate",
	"Under Review",
	"AI Screened",
	"Interview Scheduled",
	"Interviewed",
	"Assessment Started",
	"Assessment Completed",
	"Assessment Graded",
	"Offered",
	"Hired",
	"Rejected",
}

const (
	StageNewCandidate = "New Candidate"
	StageHired        = "Hired"
	StageRejected     = "Rejected"
)

type CreateStageRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

type UpdateStageRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
}
