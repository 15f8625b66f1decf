package assessment

import (
	"strings"
	"testing"

	"github.com/brianmahove/recruiting-ai/pkg/model"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestGradeMultipleChoice(t *testing.T) {
	q := model.AssessmentQuestion{
		QuestionType:  model.AssessmentMultipleChoice,
		CorrectAnswer: strPtr("Paris"),
		Points:        5,
	}

	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{"exact match", "Paris", 5},
		{"case differs", "pArIs", 5},
		{"surrounding whitespace", "  paris ", 5},
		{"wrong answer", "London", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := Grade(q, tt.response)
			if score == nil {
				t.Fatal("score = nil, want a value")
			}
			if *score != tt.want {
				t.Errorf("score = %v, want %v", *score, tt.want)
			}
		})
	}
}

func TestGradeTrueFalse(t *testing.T) {
	q := model.AssessmentQuestion{
		QuestionType:  model.AssessmentTrueFalse,
		CorrectAnswer: strPtr("True"),
		Points:        2,
	}
	score, _ := Grade(q, "true")
	if score == nil || *score != 2 {
		t.Errorf("score = %v, want 2", score)
	}
}

func TestGradeOpenText(t *testing.T) {
	q := model.AssessmentQuestion{
		QuestionType:  model.AssessmentOpenText,
		CorrectAnswer: strPtr("index, query plan, statistics"),
		Points:        10,
	}

	score, feedback := Grade(q, "I would check the query plan and add an index.")
	if score == nil {
		t.Fatal("score = nil, want a value")
	}
	// 2 of 3 keywords hit
	if *score != 6.67 {
		t.Errorf("score = %v, want 6.67", *score)
	}
	if !strings.Contains(feedback, "index") {
		t.Errorf("feedback %q does not name the matched terms", feedback)
	}

	score, _ = Grade(q, "no relevant content here")
	if score == nil || *score != 0 {
		t.Errorf("miss score = %v, want 0", score)
	}
}

func TestGradeOpenTextNoAnswerKey(t *testing.T) {
	q := model.AssessmentQuestion{
		QuestionType: model.AssessmentOpenText,
		Points:       10,
	}
	score, _ := Grade(q, "anything")
	if score != nil {
		t.Errorf("score = %v, want nil pending manual grade", *score)
	}
}

func TestGradeCodeSnippetPending(t *testing.T) {
	q := model.AssessmentQuestion{
		QuestionType:  model.AssessmentCodeSnippet,
		CorrectAnswer: strPtr("func main() {}"),
		Points:        20,
	}
	score, feedback := Grade(q, "func main() {}")
	if score != nil {
		t.Errorf("score = %v, want nil pending manual grade", *score)
	}
	if !strings.Contains(feedback, "manual") {
		t.Errorf("feedback %q does not mention manual review", feedback)
	}
}

func TestTotalScoreExcludesPending(t *testing.T) {
	responses := []model.QuestionResponse{
		{Score: floatPtr(5)},
		{Score: nil},
		{Score: floatPtr(6.67)},
		{Score: floatPtr(0)},
	}
	if got := TotalScore(responses); got != 11.67 {
		t.Errorf("TotalScore = %v, want 11.67", got)
	}
	if AllGraded(responses) {
		t.Error("AllGraded = true with a pending response")
	}

	responses[1].Score = floatPtr(3)
	if !AllGraded(responses) {
		t.Error("AllGraded = false with every response scored")
	}
}
