package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"mailgenie-backend/config"
	"mailgenie-backend/models"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 1000

	systemPrompt = "You are an expert email writer. Generate professional, well-structured emails " +
		"based on the user's prompt. Return only the email content without any additional " +
		"formatting or explanations. Include a clear subject line at the beginning marked " +
		"with 'Subject:' followed by the email body. Make sure the email is professional, " +
		"engaging, and appropriate for business communication."

	// Subject used when the model output carries no Subject: line
	defaultSubject = "Generated Email"
)

// GroqService defines the interface for upstream generation API operations
type GroqService interface {
	GenerateEmail(ctx context.Context, prompt, apiKey string) (*models.GeneratedEmail, error)
	ListModels(ctx context.Context, apiKey string) (json.RawMessage, error)
}

// groqService implements GroqService
type groqService struct {
	httpClient *http.Client
	apiURL     string
	modelsURL  string
	model      string
}

// NewGroqService creates a generation service backed by the shared HTTP client
func NewGroqService(httpClient *http.Client, cfg config.GroqConfig) GroqService {
	return &groqService{
		httpClient: httpClient,
		apiURL:     cfg.APIURL,
		modelsURL:  cfg.ModelsURL,
		model:      cfg.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateEmail asks the upstream model for an email and splits the result
// into subject and body
func (gs *groqService) GenerateEmail(ctx context.Context, prompt, apiKey string) (*models.GeneratedEmail, error) {
	payload := chatCompletionRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Generate an email based on this prompt: " + prompt},
		},
		Model:       gs.model,
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	log.Printf("Generating email for prompt: %.50s...", prompt)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gs.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Groq API error: %d - %s", resp.StatusCode, respBody)
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("generation response contained no choices")
	}

	subject, content := splitSubjectContent(completion.Choices[0].Message.Content)

	log.Println("Email generated successfully")
	return &models.GeneratedEmail{Subject: subject, Content: content}, nil
}

// ListModels proxies the upstream model-list endpoint and returns its JSON
// body verbatim
func (gs *groqService) ListModels(ctx context.Context, apiKey string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gs.modelsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create models request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Groq models API error: %d - %s", resp.StatusCode, body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	return json.RawMessage(body), nil
}

// splitSubjectContent splits model output on a leading "Subject:" line.
// Output without one keeps the full text as the body under a default subject.
func splitSubjectContent(text string) (string, string) {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.ToLower(lines[0]), "subject:") {
		subject := strings.TrimSpace(lines[0][len("subject:"):])
		content := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		return subject, content
	}
	return defaultSubject, strings.TrimSpace(text)
}
