package ingest

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 415-555-0134
San Francisco, CA

Summary
Backend engineer with a focus on data pipelines.

Experience
Senior Software Engineer at Acme Corp 2019 - Present
Built Python and Go services on AWS with PostgreSQL and Docker.
Software Developer at Widgets Inc 2016 - 2019
Maintained Java microservices and CI pipelines with Jenkins.

Education
Bachelor of Science in Computer Science, State University, 2016

Skills
Python, Go, SQL, Docker, Kubernetes
`

func TestParseResumeFields(t *testing.T) {
	parsed := ParseResume(sampleResume)

	if parsed.Name != "Jane Doe" {
		t.Errorf("name = %q, want %q", parsed.Name, "Jane Doe")
	}
	if parsed.Email != "jane.doe@example.com" {
		t.Errorf("email = %q, want %q", parsed.Email, "jane.doe@example.com")
	}
	if !strings.Contains(parsed.Phone, "415") {
		t.Errorf("phone = %q, want a match containing 415", parsed.Phone)
	}
	if len(parsed.Education) == 0 || !strings.Contains(parsed.Education[0], "Bachelor") {
		t.Errorf("education = %v, want bachelor entry", parsed.Education)
	}
	if len(parsed.Experience) == 0 {
		t.Fatalf("experience empty, want entries from experience section")
	}
	for _, want := range []string{"Python", "Docker", "SQL"} {
		if !containsSkill(parsed.Skills, want) {
			t.Errorf("skills = %v, missing %q", parsed.Skills, want)
		}
	}
}

func TestParseResumeEmptyText(t *testing.T) {
	parsed := ParseResume("")

	if parsed.Name != "" || parsed.Email != "" || parsed.Phone != "" {
		t.Errorf("contact fields not empty: %+v", parsed)
	}
	if len(parsed.Skills) != 0 {
		t.Errorf("skills = %v, want none", parsed.Skills)
	}
}

func TestParseResumeSummaryTruncated(t *testing.T) {
	long := strings.Repeat("experience with distributed systems ", 40)
	parsed := ParseResume(long)

	if got := len([]rune(parsed.Summary)); got != summaryLimit+3 {
		t.Errorf("summary length = %d, want %d", got, summaryLimit+3)
	}
	if !strings.HasSuffix(parsed.Summary, "...") {
		t.Errorf("summary %q does not end with ellipsis", parsed.Summary)
	}
}

func TestParseResumeSkipsHeaderAsName(t *testing.T) {
	text := "Curriculum Vitae\nJohn Alex Smith\njohn@smith.dev\n"
	parsed := ParseResume(text)

	if parsed.Name != "John Alex Smith" {
		t.Errorf("name = %q, want %q", parsed.Name, "John Alex Smith")
	}
}

func TestOriginalName(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{"prefixed", "20240115093000_resume.pdf", "resume.pdf"},
		{"no prefix", "resume.pdf", "resume.pdf"},
		{"underscore but not timestamp", "my_resume.pdf", "my_resume.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OriginalName(tt.stored); got != tt.want {
				t.Errorf("OriginalName(%q) = %q, want %q", tt.stored, got, tt.want)
			}
		})
	}
}

func TestAllowedResume(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"cv.pdf", true},
		{"cv.DOCX", true},
		{"cv.txt", false},
		{"cv", false},
	}
	for _, tt := range tests {
		if got := AllowedResume(tt.filename); got != tt.want {
			t.Errorf("AllowedResume(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func containsSkill(skills []string, want string) bool {
	for _, s := range skills {
		if s == want {
			return true
		}
	}
	return false
}
