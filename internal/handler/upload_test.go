package handler

import (
	"testing"

	"github.com/brianmahove/recruiting-ai/pkg/model"
)

func TestCandidateFromResumeWithJob(t *testing.T) {
	parsed := model.ParsedResume{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "+1 555 0100",
		Skills: []string{"python", "sql", "docker"},
	}
	jd := &model.JobDescription{
		JobDescriptionID: 4,
		SkillsIdentified: []string{"python", "sql", "kubernetes"},
	}

	cand := candidateFromResume(parsed, "20260101120000_resume.pdf", jd, nil)

	if cand.Status != model.StageNewCandidate {
		t.Errorf("Status = %q, want %q", cand.Status, model.StageNewCandidate)
	}
	if cand.Email == nil || *cand.Email != "jane@example.com" {
		t.Errorf("Email = %v, want jane@example.com", cand.Email)
	}
	if cand.JobDescriptionID == nil || *cand.JobDescriptionID != 4 {
		t.Errorf("JobDescriptionID = %v, want 4", cand.JobDescriptionID)
	}
	if cand.MatchScore == nil || *cand.MatchScore != 67 {
		t.Errorf("MatchScore = %v, want 67", cand.MatchScore)
	}
	if len(cand.MatchedSkills) != 2 {
		t.Errorf("MatchedSkills = %v, want 2 entries", cand.MatchedSkills)
	}
}

func TestCandidateFromResumeWithoutJob(t *testing.T) {
	source := "LinkedIn"
	cand := candidateFromResume(model.ParsedResume{Name: "Bob"}, "stored.pdf", nil, &source)

	if cand.MatchScore != nil {
		t.Errorf("MatchScore = %v, want nil without a job description", cand.MatchScore)
	}
	if cand.JobDescriptionID != nil {
		t.Errorf("JobDescriptionID = %v, want nil", cand.JobDescriptionID)
	}
	if cand.Email != nil {
		t.Errorf("Email = %v, want nil for a blank email", cand.Email)
	}
	if cand.Source == nil || *cand.Source != "LinkedIn" {
		t.Errorf("Source = %v, want LinkedIn", cand.Source)
	}
}
