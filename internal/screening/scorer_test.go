package screening

import (
	"testing"

	"github.com/brianmahove/recruiting-ai/pkg/model"
)

func strPtr(s string) *string { return &s }

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		response string
		want     float64
		matched  int
	}{
		{
			name:     "half the keywords present",
			keywords: []string{"docker", "kubernetes"},
			response: "I containerized our services with Docker.",
			want:     50,
			matched:  1,
		},
		{
			name:     "all keywords present",
			keywords: []string{"team", "conflict"},
			response: "I resolved a conflict within my team quickly.",
			want:     100,
			matched:  2,
		},
		{
			name:     "no keywords configured",
			keywords: nil,
			response: "anything",
			want:     0,
		},
		{
			name:     "case insensitive",
			keywords: []string{"PostgreSQL"},
			response: "we migrated to postgresql last year",
			want:     100,
			matched:  1,
		},
		{
			name:     "no hits",
			keywords: []string{"golang", "grpc"},
			response: "I mostly write documentation.",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := KeywordScore(tt.keywords, tt.response)
			if got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
			if len(matched) != tt.matched {
				t.Errorf("matched = %v, want %d hits", matched, tt.matched)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("databases and indexing", "databases and indexing"); got < 99.9 {
		t.Errorf("identical texts similarity = %v, want ~100", got)
	}
	if got := Similarity("kubernetes networking", "gardening tips"); got != 0 {
		t.Errorf("disjoint texts similarity = %v, want 0", got)
	}
	if got := Similarity("", "anything"); got != 0 {
		t.Errorf("empty text similarity = %v, want 0", got)
	}
}

func TestEvaluateAnswerKeywordOnly(t *testing.T) {
	q := model.ScreeningQuestion{
		ExpectedKeywords: []string{"python", "testing"},
	}
	res := EvaluateAnswer(q, "I write Python with a strong testing culture.")

	if res.Score != 100 {
		t.Errorf("score = %v, want 100", res.Score)
	}
	if res.Score < 0 || res.Score > 100 {
		t.Errorf("score %v outside [0, 100]", res.Score)
	}
}

func TestEvaluateAnswerWithIdealAnswer(t *testing.T) {
	q := model.ScreeningQuestion{
		ExpectedKeywords: []string{"index"},
		IdealAnswer:      strPtr("add an index to speed up the query"),
	}
	res := EvaluateAnswer(q, "add an index to speed up the query")

	// keyword component is 100 and the similarity component is 100, so the
	// weighted blend must also be 100
	if res.Score < 99.9 {
		t.Errorf("score = %v, want ~100", res.Score)
	}

	// an unrelated answer keeps only whatever keyword credit it earns
	res = EvaluateAnswer(q, "I would ask the index team for help")
	if res.Score >= 100 || res.Score <= 0 {
		t.Errorf("partial answer score = %v, want strictly between 0 and 100", res.Score)
	}
}

func TestEvaluateAnswerEmptyResponse(t *testing.T) {
	q := model.ScreeningQuestion{ExpectedKeywords: []string{"python"}}
	res := EvaluateAnswer(q, "   ")

	if res.Score != 0 {
		t.Errorf("score = %v, want 0", res.Score)
	}
	if res.Sentiment != "neutral" {
		t.Errorf("sentiment = %q, want neutral", res.Sentiment)
	}
}

func TestEvaluateAnswerDeterministic(t *testing.T) {
	q := model.ScreeningQuestion{
		ExpectedKeywords: []string{"latency", "cache"},
		IdealAnswer:      strPtr("introduce a cache layer to cut latency"),
	}
	first := EvaluateAnswer(q, "we added a cache which reduced latency a lot")
	for i := 0; i < 50; i++ {
		if got := EvaluateAnswer(q, "we added a cache which reduced latency a lot"); got.Score != first.Score {
			t.Fatalf("run %d: score %v differs from first %v", i, got.Score, first.Score)
		}
	}
}

func TestPolarity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive", "I love this work and my great team", "positive"},
		{"negative", "it was a bad failure and very frustrating", "negative"},
		{"neutral", "I configured the deployment pipeline", "neutral"},
		{"empty", "", "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Polarity(tt.text)
			if p < -1 || p > 1 {
				t.Fatalf("polarity %v outside [-1, 1]", p)
			}
			if got := SentimentLabel(p); got != tt.want {
				t.Errorf("label = %q (polarity %v), want %q", got, p, tt.want)
			}
		})
	}
}
