package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

// parseScheduleTime accepts RFC 3339 or a bare "2006-01-02T15:04:05" local
// timestamp, matching what calendar frontends send.
func parseScheduleTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", raw)
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var req model.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	start, err := parseScheduleTime(req.StartTime)
	if err != nil {
		response.ValidationError(c, "invalid start_time")
		return
	}
	end, err := parseScheduleTime(req.EndTime)
	if err != nil {
		response.ValidationError(c, "invalid end_time")
		return
	}
	if !end.After(start) {
		response.ValidationError(c, "end_time must be after start_time")
		return
	}
	ctx := c.Request.Context()
	if _, err := h.Repo.GetCandidateByID(ctx, req.CandidateID); err != nil {
		h.repoError(c, err)
		return
	}
	if req.JobDescriptionID != nil {
		if _, err := h.Repo.GetJobDescriptionByID(ctx, *req.JobDescriptionID); err != nil {
			h.repoError(c, err)
			return
		}
	}

	sched := &model.InterviewSchedule{
		CandidateID:      req.CandidateID,
		JobDescriptionID: req.JobDescriptionID,
		RecruiterName:    req.RecruiterName,
		InterviewType:    req.InterviewType,
		StartTime:        start,
		EndTime:          end,
		Status:           model.ScheduleScheduled,
		MeetingLink:      req.MeetingLink,
		CandidateNotes:   req.CandidateNotes,
		RecruiterNotes:   req.RecruiterNotes,
	}
	created, err := h.Repo.CreateSchedule(ctx, sched)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, created)
}

func (h *Handler) ListSchedules(c *gin.Context) {
	var candidateID, jobDescriptionID *int64
	if raw := c.Query("candidate_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			response.ValidationError(c, "invalid candidate_id")
			return
		}
		candidateID = &id
	}
	if raw := c.Query("job_description_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			response.ValidationError(c, "invalid job_description_id")
			return
		}
		jobDescriptionID = &id
	}
	schedules, err := h.Repo.ListSchedules(c.Request.Context(), candidateID, jobDescriptionID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, schedules)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sched, err := h.Repo.GetScheduleByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, sched)
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		response.ValidationError(c, "invalid status")
		return
	}

	var start, end *time.Time
	if req.StartTime != nil {
		t, err := parseScheduleTime(*req.StartTime)
		if err != nil {
			response.ValidationError(c, "invalid start_time")
			return
		}
		start = &t
	}
	if req.EndTime != nil {
		t, err := parseScheduleTime(*req.EndTime)
		if err != nil {
			response.ValidationError(c, "invalid end_time")
			return
		}
		end = &t
	}
	if start != nil && end != nil && !end.After(*start) {
		response.ValidationError(c, "end_time must be after start_time")
		return
	}

	sched, err := h.Repo.UpdateSchedule(c.Request.Context(), id, req, start, end)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, sched)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Repo.DeleteSchedule(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	response.Message(c, "schedule deleted")
}

// DownloadScheduleICal renders the schedule as an iCalendar event so it can
// be imported into any calendar client.
func (h *Handler) DownloadScheduleICal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sched, err := h.Repo.GetScheduleByID(ctx, id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	cand, err := h.Repo.GetCandidateByID(ctx, sched.CandidateID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	jobTitle := "Interview"
	if sched.JobDescriptionID != nil {
		if jd, err := h.Repo.GetJobDescriptionByID(ctx, *sched.JobDescriptionID); err == nil {
			jobTitle = jd.Title
		}
	}

	ical := buildICalEvent(sched, cand, jobTitle)
	filename := fmt.Sprintf("interview_%d.ics", sched.ScheduleID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/calendar; charset=utf-8", []byte(ical))
}

func buildICalEvent(s model.InterviewSchedule, cand model.Candidate, jobTitle string) string {
	const stamp = "20060102T150405Z"
	now := time.Now().UTC().Format(stamp)

	desc := fmt.Sprintf("Interview Type: %s\\nRecruiter: %s", s.InterviewType, s.RecruiterName)
	if s.MeetingLink != nil && *s.MeetingLink != "" {
		desc += "\\nMeeting Link: " + escapeICal(*s.MeetingLink)
	}
	if s.CandidateNotes != nil && *s.CandidateNotes != "" {
		desc += "\\nNotes: " + escapeICal(*s.CandidateNotes)
	}

	location := s.InterviewType
	if s.MeetingLink != nil && *s.MeetingLink != "" {
		location = *s.MeetingLink
	}

	var b strings.Builder
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//recruiting-ai//interview-scheduler//EN",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:interview-%d@recruiting-ai", s.ScheduleID),
		"DTSTAMP:" + now,
		"DTSTART:" + s.StartTime.UTC().Format(stamp),
		"DTEND:" + s.EndTime.UTC().Format(stamp),
		fmt.Sprintf("SUMMARY:Interview for %s - %s", escapeICal(cand.Name), escapeICal(jobTitle)),
		"DESCRIPTION:" + desc,
		"LOCATION:" + escapeICal(location),
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	return b.String()
}

// escapeICal escapes the characters RFC 5545 reserves in text values.
func escapeICal(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
