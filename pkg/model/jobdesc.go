package model

import "time"

type JobDescription struct {
	JobDescriptionID int64     `json:"job_description_id" db:"job_description_id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	SkillsIdentified []string  `json:"skills_identified" db:"skills_identified"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

type CreateJobDescriptionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateJobDescriptionRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
