// Package assessment grades structured skill-test responses against each
// question's answer key.
package assessment

import (
	"fmt"
	"strings"

	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
)

// Grade scores a response for one question. A nil score means the response
// needs manual review and must not count toward the total.
func Grade(q model.AssessmentQuestion, responseText string) (score *float64, feedback string) {
	switch q.QuestionType {
	case model.AssessmentMultipleChoice, model.AssessmentTrueFalse:
		return gradeExact(q, responseText)
	case model.AssessmentOpenText:
		return gradeOpenText(q, responseText)
	case model.AssessmentCodeSnippet:
		return nil, "Pending manual review."
	}
	return nil, fmt.Sprintf("Unknown question type %q, pending manual review.", q.QuestionType)
}

// gradeExact awards full points on a case-insensitive exact match, zero
// otherwise.
func gradeExact(q model.AssessmentQuestion, responseText string) (*float64, string) {
	if q.CorrectAnswer == nil {
		return nil, "No answer key configured, pending manual review."
	}
	if strings.EqualFold(strings.TrimSpace(responseText), strings.TrimSpace(*q.CorrectAnswer)) {
		s := q.Points
		return &s, "Correct."
	}
	zero := 0.0
	return &zero, "Incorrect."
}

// gradeOpenText treats the answer key as a keyword list and awards points in
// proportion to the keywords present in the response.
func gradeOpenText(q model.AssessmentQuestion, responseText string) (*float64, string) {
	if q.CorrectAnswer == nil || strings.TrimSpace(*q.CorrectAnswer) == "" {
		return nil, "No answer key configured, pending manual review."
	}

	keywords := splitKeywords(*q.CorrectAnswer)
	if len(keywords) == 0 {
		return nil, "No answer key configured, pending manual review."
	}

	responseLower := strings.ToLower(responseText)
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(responseLower, kw) {
			hits = append(hits, kw)
		}
	}

	s := pkg.Round2(q.Points * float64(len(hits)) / float64(len(keywords)))
	if len(hits) == 0 {
		return &s, "Did not identify expected key terms."
	}
	return &s, fmt.Sprintf("Recognized key terms: %s.", strings.Join(hits, ", "))
}

// TotalScore sums the populated response scores. Pending (nil) scores are
// excluded rather than counted as zero.
func TotalScore(responses []model.QuestionResponse) float64 {
	var total float64
	for _, r := range responses {
		if r.Score != nil {
			total += *r.Score
		}
	}
	return pkg.Round2(total)
}

// AllGraded reports whether every response carries a score, which is what
// moves a completed result to Graded.
func AllGraded(responses []model.QuestionResponse) bool {
	for _, r := range responses {
		if r.Score == nil {
			return false
		}
	}
	return true
}

func splitKeywords(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
