package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"procedurecheck-backend/models"

	"github.com/google/generative-ai-go/genai"
)

var (
	ErrBriefGenerationFailed = errors.New("failed to generate advisory brief")
	ErrGeminiNotConfigured   = errors.New("gemini client not configured")
)

const generationAPI = "https://generativelanguage.googleapis.com/v1beta/models/gemini-3-pro-preview:generateContent"

// BriefService renders an insights report into a practitioner-readable
// advisory brief. Brief generation is best-effort: its failure never affects
// the insights endpoints themselves.
type BriefService struct {
	insightService *InsightService
	geminiClient   *genai.Client
}

// BriefServiceOption is a functional option for BriefService
type BriefServiceOption func(*BriefService)

// BriefWithInsightService sets the insight service
func BriefWithInsightService(svc *InsightService) BriefServiceOption {
	return func(s *BriefService) {
		s.insightService = svc
	}
}

// BriefWithGeminiClient sets the Gemini client
func BriefWithGeminiClient(client *genai.Client) BriefServiceOption {
	return func(s *BriefService) {
		s.geminiClient = client
	}
}

// NewBriefService creates a new brief service
func NewBriefService(opts ...BriefServiceOption) *BriefService {
	s := &BriefService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateBriefResult represents a generated advisory brief
type GenerateBriefResult struct {
	Brief string `json:"brief"`
}

// GenerateBrief builds the current insights report and renders it as a
// narrative advisory brief.
func (s *BriefService) GenerateBrief(ctx context.Context) (*GenerateBriefResult, error) {
	if s.insightService == nil {
		return nil, errors.New("insight service not set")
	}
	if s.geminiClient == nil {
		return nil, ErrGeminiNotConfigured
	}

	report, err := s.insightService.BuildInsights(ctx)
	if err != nil {
		return nil, err
	}

	brief, err := s.callGenerationAPI(ctx, s.buildPrompt(report), 0.3)
	if err != nil {
		log.Printf("Brief generation failed: %v", err)
		return nil, ErrBriefGenerationFailed
	}

	return &GenerateBriefResult{Brief: brief}, nil
}

// buildPrompt renders the structured report as prompt text
func (s *BriefService) buildPrompt(report *models.InsightsReport) string {
	var b strings.Builder

	b.WriteString("You are assisting a Victorian criminal defence practitioner. ")
	b.WriteString("Write a short practice advisory brief (under 400 words) summarising the compliance intelligence below. ")
	b.WriteString("Plain prose, no headings, no legal advice disclaimer.\n\n")

	b.WriteString(fmt.Sprintf("Documents analysed: %d, total issues: %d, compliance rate: %.1f%%.\n",
		report.ComplianceMetrics.TotalDocuments,
		report.ComplianceMetrics.TotalIssues,
		report.ComplianceMetrics.ComplianceRate))

	if report.Trends.Status != models.TrendInsufficientData {
		b.WriteString(fmt.Sprintf("Trend: %s. %s\n", report.Trends.Status, report.Trends.Message))
	}

	for _, r := range report.Recurring {
		b.WriteString(fmt.Sprintf("Recurring defect: %q (%s), %d occurrences.\n", r.Type, r.Statute, r.Count))
	}
	for _, n := range report.NovelIssues {
		b.WriteString(fmt.Sprintf("Novel issue in latest analysis: %q (%s).\n", n.Type, n.Statute))
	}
	for _, rec := range report.Recommendations {
		b.WriteString(fmt.Sprintf("Priority %d recommendation for %q: %s\n", rec.Priority, rec.Type, rec.Advice))
	}

	return b.String()
}

// callGenerationAPI sends a prompt to the Gemini generation endpoint and
// extracts the response text, tolerating the API's partial-failure shapes.
func (s *BriefService) callGenerationAPI(ctx context.Context, prompt string, temperature float64) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", generationAPI, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("Gemini API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason,omitempty"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason,omitempty"`
		} `json:"promptFeedback,omitempty"`
	}

	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("API blocked prompt: %s", apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("API returned no candidates")
	}

	var text strings.Builder
	for i, candidate := range apiResp.Candidates {
		if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
			log.Printf("Warning: Candidate %d finished with reason: %s", i, candidate.FinishReason)
		}
		for _, part := range candidate.Content.Parts {
			text.WriteString(part.Text)
		}
	}

	result := text.String()
	if result == "" {
		return "", fmt.Errorf("API returned empty content")
	}

	return result, nil
}
