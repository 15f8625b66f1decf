package handler

import (
	"strings"
	"testing"

	"github.com/brianmahove/recruiting-ai/pkg/model"
)

func TestTemplateQuestionsFromSkills(t *testing.T) {
	jd := model.JobDescription{
		JobDescriptionID: 2,
		Title:            "Data Engineer",
		SkillsIdentified: []string{"python", "sql", "spark"},
	}

	drafts := templateQuestions(jd, 5)

	if len(drafts) != 5 {
		t.Fatalf("got %d drafts, want 5", len(drafts))
	}
	for i, skill := range jd.SkillsIdentified {
		if !strings.Contains(drafts[i].QuestionText, skill) {
			t.Errorf("draft %d = %q, want it to mention %q", i, drafts[i].QuestionText, skill)
		}
		if len(drafts[i].ExpectedKeywords) != 1 || drafts[i].ExpectedKeywords[0] != skill {
			t.Errorf("draft %d keywords = %v, want [%q]", i, drafts[i].ExpectedKeywords, skill)
		}
	}
	for _, d := range drafts {
		if d.JobDescriptionID != 2 {
			t.Errorf("JobDescriptionID = %d, want 2", d.JobDescriptionID)
		}
		if d.QuestionType != model.QuestionTypeText {
			t.Errorf("QuestionType = %q, want text", d.QuestionType)
		}
	}
}

func TestTemplateQuestionsCapped(t *testing.T) {
	jd := model.JobDescription{
		Title:            "SRE",
		SkillsIdentified: []string{"aws", "docker", "kubernetes", "linux", "terraform", "ansible"},
	}
	drafts := templateQuestions(jd, 3)
	if len(drafts) != 3 {
		t.Errorf("got %d drafts, want 3", len(drafts))
	}
}

func TestTemplateQuestionsNoSkills(t *testing.T) {
	drafts := templateQuestions(model.JobDescription{Title: "Office Manager"}, 4)
	if len(drafts) != 4 {
		t.Fatalf("got %d drafts, want 4 generic questions", len(drafts))
	}
	for _, d := range drafts {
		if d.QuestionText == "" {
			t.Error("generic draft with empty text")
		}
	}
}
