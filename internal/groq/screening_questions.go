package groq

import (
	"context"
	"encoding/json"
	"fmt"
)

type GeneratedQuestion struct {
	Question         string   `json:"question"`
	ExpectedKeywords []string `json:"expected_keywords"`
	IdealAnswer      string   `json:"ideal_answer"`
}

// ScreeningQuestions asks the model for screening questions tailored to a job
// description, each with the keywords and ideal answer the scorer needs.
func (c *Client) ScreeningQuestions(ctx context.Context, jobTitle, jobDescription string, count int) ([]GeneratedQuestion, error) {
	systemMsg := `You are a recruiting assistant. Read the provided job description and output ONLY a valid JSON array of screening interview questions, with no additional text, markdown, or explanation.

Each item must be an object with:
- "question": a screening question probing a skill or responsibility from the job description
- "expected_keywords": 3-6 lowercase terms a strong answer would contain
- "ideal_answer": one or two sentences a strong candidate would give

Rules:
- Base every question on the job description. NEVER invent requirements.
- Keep questions answerable in free text within two minutes.
- Output must be valid JSON. No prefix, suffix, or backticks.
`

	userPrompt := fmt.Sprintf("Generate %d questions.\nJob title: %s\nJob description:\n%s", count, jobTitle, jobDescription)
	if len(userPrompt) > 10000 {
		userPrompt = userPrompt[:10000]
	}

	chatReq := ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemMsg},
			{"role": "user", "content": userPrompt},
		},
		MaxTokens:   2000,
		Temperature: 0.0,
	}

	respStr, err := c.Chat(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	var generated []GeneratedQuestion
	if err := json.Unmarshal([]byte(respStr), &generated); err != nil {
		return nil, fmt.Errorf("failed to parse AI response as JSON array of questions: %w; raw response: %q", err, respStr)
	}

	return generated, nil
}
