package handler

import (
	"testing"

	"github.com/brianmahove/recruiting-ai/pkg/model"
)

func TestAnalyzeVideoDeterministic(t *testing.T) {
	cand := model.Candidate{Skills: []string{"python", "sql", "docker", "aws", "git", "linux", "react"}}

	a := analyzeVideo("20260101120000_interview.mp4", cand)
	b := analyzeVideo("20260101120000_interview.mp4", cand)

	if a.SentimentScore != b.SentimentScore {
		t.Errorf("sentiment differs between runs: %v vs %v", a.SentimentScore, b.SentimentScore)
	}
	if a.BehaviorSummary != b.BehaviorSummary {
		t.Errorf("summary differs between runs")
	}
	if a.SentimentScore < 0.30 || a.SentimentScore >= 0.90 {
		t.Errorf("sentiment %v outside [0.30, 0.90)", a.SentimentScore)
	}
	if len(a.Keywords) != 5 {
		t.Errorf("keywords = %v, want capped at 5", a.Keywords)
	}
	if a.BehaviorSummary == "" || a.RawFeedback == "" {
		t.Error("summary and raw feedback must be populated")
	}
}

func TestAnalyzeVideoFewSkills(t *testing.T) {
	a := analyzeVideo("other.webm", model.Candidate{Skills: []string{"go"}})
	if len(a.Keywords) != 1 {
		t.Errorf("keywords = %v, want the single skill", a.Keywords)
	}
}
