package secscan

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/codegate-sec/codegate/pkg/types"
)

const systemPrompt = `You are a senior application security engineer reviewing Python code.
Identify concrete, exploitable security vulnerabilities. Respond with a single JSON object and nothing else, using this shape:
{
  "summary": "one paragraph overview of the security posture",
  "vulnerabilities": [
    {
      "vulnerability_type": "sql_injection",
      "severity": "critical|high|medium|low",
      "line_number": 1,
      "code_snippet": "the offending line",
      "description": "what is wrong",
      "impact": "what an attacker gains",
      "remediation": "how to fix it",
      "cwe_id": "CWE-89"
    }
  ],
  "dependencies_analysis": {
    "detected_imports": ["os", "subprocess"],
    "security_notes": ["subprocess usage should avoid shell=True"]
  }
}
Report only real vulnerabilities. An empty "vulnerabilities" array is a valid answer.`

// OpenAIScanner reviews code through an OpenAI-compatible chat endpoint.
type OpenAIScanner struct {
	client *openai.Client
	model  string
}

// NewOpenAIScanner builds a scanner against the given endpoint. baseURL
// may be empty to use the public OpenAI API.
func NewOpenAIScanner(apiKey, model, baseURL string) (*OpenAIScanner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIScanner{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (s *OpenAIScanner) Review(ctx context.Context, code string) (*Result, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Review this Python code:\n\n```python\n" + code + "\n```"},
		},
		Temperature: 0.1,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("security review request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("security review returned no choices")
	}

	return parseReview(resp.Choices[0].Message.Content)
}

// flexLine tolerates models that emit line numbers as strings.
type flexLine int

func (f *flexLine) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexLine(n)
	return nil
}

type reviewPayload struct {
	Summary         string `json:"summary"`
	Vulnerabilities []struct {
		Type        string   `json:"vulnerability_type"`
		Severity    string   `json:"severity"`
		Line        flexLine `json:"line_number"`
		Snippet     string   `json:"code_snippet"`
		Description string   `json:"description"`
		Impact      string   `json:"impact"`
		Remediation string   `json:"remediation"`
		CWEID       string   `json:"cwe_id"`
	} `json:"vulnerabilities"`
	Dependencies struct {
		DetectedImports []string `json:"detected_imports"`
		SecurityNotes   []string `json:"security_notes"`
	} `json:"dependencies_analysis"`
}

// parseReview extracts the JSON body from a model response, stripping
// markdown code fences when present.
func parseReview(raw string) (*Result, error) {
	body := strings.TrimSpace(raw)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		if idx := strings.LastIndex(body, "```"); idx >= 0 {
			body = body[:idx]
		}
		body = strings.TrimSpace(body)
	}

	var payload reviewPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("security review response is not valid JSON: %w", err)
	}

	result := &Result{
		Summary:         payload.Summary,
		DetectedImports: payload.Dependencies.DetectedImports,
		SecurityNotes:   payload.Dependencies.SecurityNotes,
	}
	for _, v := range payload.Vulnerabilities {
		result.Findings = append(result.Findings, types.ExternalFinding{
			Type:        v.Type,
			Severity:    strings.ToLower(strings.TrimSpace(v.Severity)),
			Line:        int(v.Line),
			Snippet:     v.Snippet,
			Description: v.Description,
			Impact:      v.Impact,
			Remediation: v.Remediation,
			CWEID:       v.CWEID,
		})
	}
	return result, nil
}
