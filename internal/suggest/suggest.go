// Package suggest turns classification gaps into candidate rule patterns.
// Revenue rows that fall through the rule table are collected per run;
// this package asks Gemini to propose patterns a human can review before
// adding them to the static tables. Suggestions are advisory only — the
// rule tables are never modified at runtime.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for pattern suggestions.
const DefaultModelName = "gemini-2.5-flash"

// Suggestion is one proposed rule for an unclassified description family.
type Suggestion struct {
	Pattern     string `json:"pattern"`
	Match       string `json:"match"` // "contains", "prefix", or "exact"
	RevenueType string `json:"revenue_type"`
	Rationale   string `json:"rationale"`
}

// Model is the generative backend; the Gemini client satisfies it and
// tests supply a canned implementation.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiModel calls Gemini via the genai SDK.
type GeminiModel struct {
	ModelName string
}

func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	name := m.ModelName
	if name == "" {
		name = DefaultModelName
	}
	resp, err := client.Models.GenerateContent(ctx, name, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// Patterns asks the model for candidate rules covering the given
// unclassified descriptions.
func Patterns(ctx context.Context, model Model, descriptions []string) ([]Suggestion, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}

	raw, err := model.GenerateText(ctx, buildPrompt(descriptions))
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	clean := cleanModelJSON(raw)
	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(clean), &suggestions); err != nil {
		return nil, fmt.Errorf("suggest: unmarshal JSON: %w\nraw response: %s", err, raw)
	}
	return suggestions, nil
}

func buildPrompt(descriptions []string) string {
	var b strings.Builder
	b.WriteString("You are auditing rule coverage for a small-business revenue classifier.\n\n")
	b.WriteString("The classifier assigns bank-feed deposits a revenue type (Hospitality, Events, or Retail)\n")
	b.WriteString("by matching description patterns. The following deposit descriptions matched NO rule:\n\n")
	for _, d := range descriptions {
		b.WriteString("- " + d + "\n")
	}
	b.WriteString("\nPropose candidate patterns that would cover them.\n")
	b.WriteString("Output STRICT JSON only (no comments, no trailing commas, no extra text).\n")
	b.WriteString("Output a JSON array of objects with these fields:\n")
	b.WriteString("- \"pattern\": string, the upper-cased text to match\n")
	b.WriteString("- \"match\": string, one of \"contains\", \"prefix\", \"exact\"\n")
	b.WriteString("- \"revenue_type\": string, one of \"Hospitality\", \"Events\", \"Retail\"\n")
	b.WriteString("- \"rationale\": string, one sentence\n\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"[\" and end with \"]\".\n")
	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the strict-JSON instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
