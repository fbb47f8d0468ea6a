// Package recommend provides the optional AI recommendation collaborator.
// Recommendations are advisory text only; they never feed back into scores
// or issues.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/seolens/seolens/internal/model"
)

const (
	defaultEndpoint   = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout    = 30 * time.Second
	maxIssuesInPrompt = 5
)

var (
	errNoAPIKey       = errors.New("recommend: missing API key")
	errEmptyResponse  = errors.New("recommend: model returned no candidates")
	errUpstreamStatus = errors.New("recommend: upstream returned error status")
)

// GeminiClient generates SEO recommendations via the Gemini generateContent
// API.
type GeminiClient struct {
	apiKey   string
	modelID  string
	endpoint string
	client   *http.Client
}

// NewGeminiClient returns a client for the given API key and model id
// (e.g. "gemini-1.5-flash").
func NewGeminiClient(apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errNoAPIKey
	}
	return &GeminiClient{
		apiKey:   apiKey,
		modelID:  modelID,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Recommend builds a prompt from the scan's scores and most urgent issues and
// returns the model's free-form advice text.
func (c *GeminiClient) Recommend(ctx context.Context, result *model.ScanResult) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(result)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("recommend: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("recommend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("recommend: call model: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", errUpstreamStatus, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("recommend: decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyResponse
	}

	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}

// buildPrompt summarizes the scan for the model: scores plus the critical and
// high issues, capped so huge pages don't blow up the prompt.
func buildPrompt(result *model.ScanResult) string {
	var b strings.Builder
	b.WriteString("You are an expert SEO consultant. Analyze this website audit and provide actionable recommendations.\n\n")
	fmt.Fprintf(&b, "WEBSITE: %s\n", result.URL)
	fmt.Fprintf(&b, "OVERALL SCORE: %d/100\n", result.Scores.Overall)
	fmt.Fprintf(&b, "TECHNICAL: %d/100\n", result.Scores.Technical)
	fmt.Fprintf(&b, "CONTENT: %d/100\n", result.Scores.Content)
	fmt.Fprintf(&b, "PERFORMANCE: %d/100\n\n", result.Scores.Performance)

	b.WriteString("CRITICAL ISSUES:\n")
	writeIssues(&b, result.Issues[model.SeverityCritical])
	b.WriteString("\nHIGH PRIORITY:\n")
	writeIssues(&b, result.Issues[model.SeverityHigh])

	b.WriteString("\nProvide:\n")
	b.WriteString("1. Executive Summary (2-3 sentences)\n")
	b.WriteString("2. Top 3 Priority Actions\n")
	b.WriteString("3. Quick Wins (easy improvements)\n\n")
	b.WriteString("Keep it concise and actionable.\n")
	return b.String()
}

func writeIssues(b *strings.Builder, issues []model.Issue) {
	if len(issues) == 0 {
		b.WriteString("None detected\n")
		return
	}
	for i, issue := range issues {
		if i == maxIssuesInPrompt {
			break
		}
		fmt.Fprintf(b, "- %s\n", issue.Message)
	}
}
