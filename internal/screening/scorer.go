// Package screening scores candidate answers for the automated screening
// interview and drives the session state machine.
package screening

import (
	"math"
	"strings"

	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
)

// answer score weighting when an ideal answer is configured
const (
	keywordWeight    = 0.4
	similarityWeight = 0.6
)

// Result is the evaluation of a single screening answer.
type Result struct {
	Score           float64
	SentimentScore  float64
	Sentiment       string
	MatchedKeywords []string
}

// EvaluateAnswer scores a response against a question deterministically. With
// only expected keywords configured the score is the keyword hit percentage.
// With an ideal answer configured the score blends keyword hits with
// similarity to the ideal answer.
func EvaluateAnswer(q model.ScreeningQuestion, response string) Result {
	if strings.TrimSpace(response) == "" {
		return Result{Sentiment: "neutral", MatchedKeywords: []string{}}
	}

	keywordScore, matched := KeywordScore(q.ExpectedKeywords, response)

	score := keywordScore
	if q.IdealAnswer != nil && strings.TrimSpace(*q.IdealAnswer) != "" {
		sim := Similarity(*q.IdealAnswer, response)
		score = keywordWeight*keywordScore + similarityWeight*sim
	}

	polarity := Polarity(response)

	return Result{
		Score:           pkg.Round2(score),
		SentimentScore:  pkg.Round2(polarity),
		Sentiment:       SentimentLabel(polarity),
		MatchedKeywords: matched,
	}
}

// KeywordScore returns the percentage of expected keywords present in the
// response, with the keywords that hit. Matching is case-insensitive
// substring containment.
func KeywordScore(keywords []string, response string) (float64, []string) {
	matched := []string{}
	if len(keywords) == 0 {
		return 0, matched
	}

	responseLower := strings.ToLower(response)
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(responseLower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return float64(len(matched)) / float64(len(keywords)) * 100, matched
}

// Similarity is the cosine similarity of the two texts' term-frequency
// vectors, scaled to 0-100.
func Similarity(a, b string) float64 {
	va := termFreq(a)
	vb := termFreq(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, fa := range va {
		normA += fa * fa
		if fb, ok := vb[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range vb {
		normB += fb * fb
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)) * 100
}

func termFreq(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range tokenize(text) {
		freq[tok]++
	}
	return freq
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		alnum := r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		return !alnum
	})
}
