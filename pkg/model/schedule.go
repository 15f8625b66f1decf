package model

import "time"

type ScheduleStatus string

const (
	ScheduleScheduled   ScheduleStatus = "Scheduled"
	ScheduleRescheduled ScheduleStatus = "Rescheduled"
	ScheduleCompleted   ScheduleStatus = "Completed"
	ScheduleCancelled   ScheduleStatus = "Cancelled"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleScheduled, ScheduleRescheduled, ScheduleCompleted, ScheduleCancelled:
		return true
	}
	return false
}

type InterviewSchedule struct {
	ScheduleID       int64          `json:"schedule_id" db:"schedule_id"`
	CandidateID      int64          `json:"candidate_id" db:"candidate_id"`
	JobDescriptionID *int64         `json:"job_description_id" db:"job_description_id"`
	RecruiterName    string         `json:"recruiter_name" db:"recruiter_name"`
	InterviewType    string         `json:"interview_type" db:"interview_type"`
	StartTime        time.Time      `json:"start_time" db:"start_time"`
	EndTime          time.Time      `json:"end_time" db:"end_time"`
	Status           ScheduleStatus `json:"status" db:"status"`
	MeetingLink      *string        `json:"meeting_link" db:"meeting_link"`
	CandidateNotes   *string        `json:"candidate_notes" db:"candidate_notes"`
	RecruiterNotes   *string        `json:"recruiter_notes" db:"recruiter_notes"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateScheduleRequest struct {
	CandidateID      int64   `json:"candidate_id" binding:"required"`
	JobDescriptionID *int64  `json:"job_description_id,omitempty"`
	RecruiterName    string  `json:"recruiter_name" binding:"required"`
	InterviewType    string  `json:"interview_type" binding:"required"`
	StartTime        string  `json:"start_time" binding:"required"`
	EndTime          string  `json:"end_time" binding:"required"`
	MeetingLink      *string `json:"meeting_link,omitempty"`
	CandidateNotes   *string `json:"candidate_notes,omitempty"`
	RecruiterNotes   *string `json:"recruiter_notes,omitempty"`
}

type UpdateScheduleRequest struct {
	RecruiterName  *string         `json:"recruiter_name,omitempty"`
	InterviewType  *string         `json:"interview_type,omitempty"`
	StartTime      *string         `json:"start_time,omitempty"`
	EndTime        *string         `json:"end_time,omitempty"`
	Status         *ScheduleStatus `json:"status,omitempty"`
	MeetingLink    *string         `json:"meeting_link,omitempty"`
	CandidateNotes *string         `json:"candidate_notes,omitempty"`
	RecruiterNotes *string         `json:"recruiter_notes,omitempty"`
}
