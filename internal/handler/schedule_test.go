package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/brianmahove/recruiting-ai/pkg/model"
)

func TestBuildICalEvent(t *testing.T) {
	link := "https://meet.example.com/abc"
	s := model.InterviewSchedule{
		ScheduleID:    7,
		CandidateID:   3,
		RecruiterName: "Sam Okafor",
		InterviewType: "Technical",
		StartTime:     time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		MeetingLink:   &link,
	}
	cand := model.Candidate{Name: "Jane Doe"}

	ical := buildICalEvent(s, cand, "Backend Engineer")

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:interview-7@recruiting-ai",
		"DTSTART:20260310T140000Z",
		"DTEND:20260310T150000Z",
		"SUMMARY:Interview for Jane Doe - Backend Engineer",
		"LOCATION:https://meet.example.com/abc",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ical, want) {
			t.Errorf("ical missing %q\n%s", want, ical)
		}
	}
	if !strings.HasSuffix(ical, "END:VCALENDAR\r\n") {
		t.Error("ical lines must be CRLF terminated")
	}
}

func TestBuildICalEventNoLink(t *testing.T) {
	s := model.InterviewSchedule{
		ScheduleID:    1,
		RecruiterName: "Sam",
		InterviewType: "Phone Screen",
		StartTime:     time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
	}
	ical := buildICalEvent(s, model.Candidate{Name: "A"}, "Analyst")
	if !strings.Contains(ical, "LOCATION:Phone Screen") {
		t.Errorf("location should fall back to the interview type\n%s", ical)
	}
}

func TestEscapeICal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a,b;c", `a\,b\;c`},
		{"line\nbreak", `line\nbreak`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeICal(tt.in); got != tt.want {
			t.Errorf("escapeICal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseScheduleTime(t *testing.T) {
	if _, err := parseScheduleTime("2026-03-10T14:00:00Z"); err != nil {
		t.Errorf("RFC 3339 timestamp rejected: %v", err)
	}
	if _, err := parseScheduleTime("2026-03-10T14:00:00"); err != nil {
		t.Errorf("bare timestamp rejected: %v", err)
	}
	if _, err := parseScheduleTime("10/03/2026"); err == nil {
		t.Error("expected error for non-ISO timestamp")
	}
}
