package mailer

import (
	"errors"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		candidate string
		jobTitle  string
		want      string
	}{
		{
			name:      "both placeholders",
			template:  "Hi {{candidate_name}}, about {{job_title}}.",
			candidate: "Jane Doe",
			jobTitle:  "Backend Engineer",
			want:      "Hi Jane Doe, about Backend Engineer.",
		},
		{
			name:      "missing job title falls back",
			template:  "Update on {{job_title}}",
			candidate: "Jane Doe",
			jobTitle:  "",
			want:      "Update on the position",
		},
		{
			name:      "repeated placeholder",
			template:  "{{candidate_name}} {{candidate_name}}",
			candidate: "Jo",
			want:      "Jo Jo",
		},
		{
			name:     "no placeholders",
			template: "plain text",
			want:     "plain text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, tt.candidate, tt.jobTitle); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSendNotConfigured(t *testing.T) {
	m := New("", 0, "", "")
	if err := m.Send("a@b.com", "s", "b"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
