package match

import (
	"reflect"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		candidate   []string
		jd          []string
		wantScore   int
		wantMatched []string
	}{
		{
			name:        "One of two overlap",
			candidate:   []string{"Python", "Java"},
			jd:          []string{"Python", "SQL"},
			wantScore:   50,
			wantMatched: []string{"python"},
		},
		{
			name:        "Full overlap",
			candidate:   []string{"python", "sql"},
			jd:          []string{"SQL", "Python"},
			wantScore:   100,
			wantMatched: []string{"python", "sql"},
		},
		{
			name:        "No overlap",
			candidate:   []string{"ruby"},
			jd:          []string{"go", "rust"},
			wantScore:   0,
			wantMatched: []string{},
		},
		{
			name:        "Empty JD scores zero",
			candidate:   []string{"python"},
			jd:          nil,
			wantScore:   0,
			wantMatched: nil,
		},
		{
			name:        "Candidate duplicates counted once",
			candidate:   []string{"Python", "python", " PYTHON "},
			jd:          []string{"python", "docker", "kafka"},
			wantScore:   33,
			wantMatched: []string{"python"},
		},
		{
			name:        "Two of three rounds up",
			candidate:   []string{"docker", "kafka"},
			jd:          []string{"python", "docker", "kafka"},
			wantScore:   67,
			wantMatched: []string{"docker", "kafka"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched := Score(tt.candidate, tt.jd)
			if score != tt.wantScore {
				t.Errorf("Score() score = %d, want %d", score, tt.wantScore)
			}
			if len(matched) == 0 && len(tt.wantMatched) == 0 {
				return
			}
			if !reflect.DeepEqual(matched, tt.wantMatched) {
				t.Errorf("Score() matched = %v, want %v", matched, tt.wantMatched)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	candidate := []string{"Python", "Docker", "Kafka", "SQL"}
	jd := []string{"python", "kafka", "terraform"}

	s1, m1 := Score(candidate, jd)
	for i := 0; i < 50; i++ {
		s2, m2 := Score(candidate, jd)
		if s1 != s2 || !reflect.DeepEqual(m1, m2) {
			t.Fatalf("Score() not deterministic: (%d,%v) vs (%d,%v)", s1, m1, s2, m2)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	cases := [][2][]string{
		{{"python"}, {"python"}},
		{{}, {"python", "sql", "aws"}},
		{{"a", "b", "c"}, {"a"}},
		{{"python", "sql", "aws", "gcp"}, {"sql", "gcp"}},
	}
	for _, c := range cases {
		score, matched := Score(c[0], c[1])
		if score < 0 || score > 100 {
			t.Errorf("Score(%v, %v) = %d, out of [0,100]", c[0], c[1], score)
		}
		jdSet := make(map[string]bool)
		for _, s := range c[1] {
			jdSet[Normalize(s)] = true
		}
		candSet := make(map[string]bool)
		for _, s := range c[0] {
			candSet[Normalize(s)] = true
		}
		for _, m := range matched {
			if !jdSet[m] || !candSet[m] {
				t.Errorf("matched skill %q not in candidate∩jd for %v/%v", m, c[0], c[1])
			}
		}
	}
}

func TestExtractSkills(t *testing.T) {
	jd := "We need a Python developer with SQL, Docker and Kubernetes experience. Agile team."
	got := ExtractSkills(jd)

	want := map[string]bool{"python": true, "sql": true, "docker": true, "kubernetes": true, "agile": true}
	for w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ExtractSkills() missing %q, got %v", w, got)
		}
	}

	if got2 := ExtractSkills(jd); !reflect.DeepEqual(got, got2) {
		t.Errorf("ExtractSkills() not stable: %v vs %v", got, got2)
	}
}

func TestExtractSkillsEmpty(t *testing.T) {
	if got := ExtractSkills("nothing relevant here"); len(got) != 0 {
		t.Errorf("ExtractSkills() = %v, want empty", got)
	}
}
