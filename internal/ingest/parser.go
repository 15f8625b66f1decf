package ingest

import (
	"regexp"
	"strings"

	"github.com/brianmahove/recruiting-ai/internal/match"
	"github.com/brianmahove/recruiting-ai/pkg/model"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?(?:\(\d{2,4}\)[\s.\-]?)?\d{3}[\s.\-]?\d{3,4}[\s.\-]?\d{0,4}`)

	sectionRe    = regexp.MustCompile(`(?im)^\s*(work experience|professional experience|employment history|experience|projects)\s*:?\s*$`)
	nextHeaderRe = regexp.MustCompile(`(?im)^\s*(education|skills|certifications|references|summary)\s*:?\s*$`)
	educationRe  = regexp.MustCompile(`(?i)\b(bachelor|master|ph\.?d|b\.?sc|m\.?sc|b\.?tech|m\.?tech|mba|diploma|degree|university|college|institute)\b`)
	dateRangeRe  = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*[-\x{2013}]\s*(?:(?:19|20)\d{2}|present|current)\b`)
	jobWordRe    = regexp.MustCompile(`(?i)\b(engineer|developer|manager|analyst|consultant|intern|lead|architect|specialist|coordinator|administrator)\b`)

	nonNameRe = regexp.MustCompile(`(?i)(resume|curriculum vitae|@|http|www\.|street|road|avenue|\d{3})`)
)

const summaryLimit = 500

// ParseResume applies heuristic field extraction to raw resume text. It never
// fails: fields it cannot locate are left empty.
func ParseResume(text string) model.ParsedResume {
	parsed := model.ParsedResume{
		Name:       extractName(text),
		Email:      firstMatch(emailRe, text),
		Phone:      extractPhone(text),
		Skills:     displaySkills(match.ExtractSkills(text)),
		Experience: extractExperience(text),
		Education:  extractEducation(text),
		Summary:    buildSummary(text),
	}
	return parsed
}

// extractName takes the first short title-cased line that does not look like a
// header, address, or contact detail.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || nonNameRe.MatchString(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		titled := true
		for _, w := range words {
			r := []rune(w)
			if r[0] < 'A' || r[0] > 'Z' {
				titled = false
				break
			}
		}
		if titled {
			return line
		}
	}
	return ""
}

func extractPhone(text string) string {
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, m)
		if len(digits) >= 9 && len(digits) <= 15 {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// extractExperience prefers an explicit experience section, splitting it into
// entries on date ranges. Without one it falls back to scanning for lines that
// read like job history.
func extractExperience(text string) []string {
	if section := sectionBody(text); section != "" {
		if entries := splitEntries(section); len(entries) > 0 {
			return entries
		}
	}

	var entries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 30 {
			continue
		}
		if dateRangeRe.MatchString(line) || jobWordRe.MatchString(line) {
			entries = append(entries, line)
		}
		if len(entries) == 10 {
			break
		}
	}
	return entries
}

// sectionBody returns the text between the first experience header and the
// next section header (or end of document).
func sectionBody(text string) string {
	loc := sectionRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if next := nextHeaderRe.FindStringIndex(body); next != nil {
		body = body[:next[0]]
	}
	return strings.TrimSpace(body)
}

func splitEntries(section string) []string {
	idxs := dateRangeRe.FindAllStringIndex(section, -1)
	if len(idxs) == 0 {
		if len(section) > 50 {
			return []string{collapseWhitespace(section)}
		}
		return nil
	}

	var entries []string
	for i, idx := range idxs {
		start := idx[0]
		// Include the line the date range sits on
		if nl := strings.LastIndex(section[:start], "\n"); nl >= 0 {
			start = nl + 1
		} else {
			start = 0
		}
		end := len(section)
		if i+1 < len(idxs) {
			end = idxs[i+1][0]
			if nl := strings.LastIndex(section[:end], "\n"); nl > start {
				end = nl
			}
		}
		entry := collapseWhitespace(section[start:end])
		if len(entry) > 50 {
			entries = append(entries, entry)
		}
	}
	return entries
}

func extractEducation(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 20 || len(strings.Fields(line)) < 4 {
			continue
		}
		if !educationRe.MatchString(line) {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
		if len(out) == 5 {
			break
		}
	}
	return out
}

func buildSummary(text string) string {
	clean := collapseWhitespace(text)
	runes := []rune(clean)
	if len(runes) <= summaryLimit {
		return clean
	}
	return string(runes[:summaryLimit]) + "..."
}

// displaySkills title-cases the canonical lowercase skill names for storage.
// Acronyms of three letters or fewer go uppercase.
func displaySkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, titleSkill(s))
	}
	return out
}

func titleSkill(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		if len(p) <= 3 && !strings.ContainsAny(p, "aeiou") {
			parts[i] = strings.ToUpper(p)
			continue
		}
		r := []rune(p)
		parts[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(parts, " ")
}

func firstMatch(re *regexp.Regexp, text string) string {
	return re.FindString(text)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
