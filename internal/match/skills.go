// Package match extracts skills from job-description text and scores a
// candidate's skill set against them. Everything here is a pure function:
// identical inputs always produce identical outputs.
package match

import (
	"math"
	"sort"
	"strings"
)

// Vocabulary is the canonical skill list both resume parsing and JD analysis
// scan against. Matching is case-insensitive substring containment; multi-word
// entries match as phrases.
var Vocabulary = []string{
	"python", "java", "javascript", "react", "angular", "vue.js", "node.js", "sql", "nosql",
	"aws", "azure", "gcp", "docker", "kubernetes", "git", "linux", "html", "css",
	"devops", "machine learning", "data science", "natural language processing", "nlp",
	"tensorflow", "pytorch", "scikit-learn", "excel", "agile", "scrum", "project management",
	"rest api", "api design", "cloud computing", "big data", "data analysis", "algorithms",
	"data structures", "communication", "teamwork", "problem-solving",
	"express.js", "mongodb", "postgresql", "mysql", "c++", "c#", "php",
	"ruby", "rails", "swift", "kotlin", "android", "ios", "tableau", "power bi",
	"spark", "hadoop", "kafka", "azure devops", "jenkins", "ansible", "terraform",
	"microservices", "spring boot", "django", "flask", "salesforce", "sap", "oracle",
}

// ExtractSkills scans free text for vocabulary entries and returns the hits,
// lower-cased and sorted for stable output.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, skill := range Vocabulary {
		if strings.Contains(lower, skill) {
			found[skill] = struct{}{}
		}
	}
	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Normalize lower-cases and trims a skill for set comparison.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Score computes the percentage of job-description skills the candidate
// covers: round(|candidate ∩ jd| / |jd| * 100). An empty JD skill set scores 0
// with no matches. The returned matched slice is normalized, sorted, and a
// subset of both inputs.
func Score(candidateSkills, jdSkills []string) (int, []string) {
	if len(jdSkills) == 0 {
		return 0, nil
	}

	jdSet := make(map[string]struct{}, len(jdSkills))
	for _, s := range jdSkills {
		if n := Normalize(s); n != "" {
			jdSet[n] = struct{}{}
		}
	}
	if len(jdSet) == 0 {
		return 0, nil
	}

	matchedSet := make(map[string]struct{})
	for _, s := range candidateSkills {
		n := Normalize(s)
		if _, ok := jdSet[n]; ok {
			matchedSet[n] = struct{}{}
		}
	}

	matched := make([]string, 0, len(matchedSet))
	for s := range matchedSet {
		matched = append(matched, s)
	}
	sort.Strings(matched)

	score := int(math.Round(float64(len(matched)) / float64(len(jdSet)) * 100))
	return score, matched
}
