package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/chartmann1590/NutriCoach-AI/config"
)

// ErrVisionUnavailable is returned when both vision transports failed.
var ErrVisionUnavailable = errors.New("vision model unavailable")

type OllamaService struct {
	baseURL string
	client  *http.Client
}

// NewOllamaService initializes the OllamaService from the environment.
func NewOllamaService() *OllamaService {
	return NewOllamaServiceWithURL(config.OllamaURL(), config.VisionTimeout())
}

// NewOllamaServiceWithURL points the service at an explicit endpoint,
// e.g. a per-user override or a test server.
func NewOllamaServiceWithURL(baseURL string, timeout time.Duration) *OllamaService {
	return &OllamaService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// TestConnection reports whether the Ollama endpoint answers at all.
func (s *OllamaService) TestConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type OllamaModel struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

type tagsResponse struct {
	Models []OllamaModel `json:"models"`
}

// ListModels returns the models available on the endpoint.
func (s *OllamaService) ListModels(ctx context.Context) ([]OllamaModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tags request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Ollama tags API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags API error %d: %s", resp.StatusCode, string(body))
	}

	var tr tagsResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse tags JSON: %w", err)
	}
	return tr.Models, nil
}

// chatRequest is the structured multimodal chat call.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Format   string        `json:"format,omitempty"`
	Stream   bool          `json:"stream"`
	Options  *modelOptions `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type modelOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// generateRequest is the legacy single-shot call kept for older servers.
type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Format string   `json:"format,omitempty"`
	Stream bool     `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// AnalyzeImage sends the image plus prompt to the vision model and
// returns the raw response text. The image is encoded once; the chat
// transport is tried first and the generate transport on any chat
// failure. Only when both transports fail does this return an error —
// unparseable text is the parser's problem, not the gateway's.
func (s *OllamaService) AnalyzeImage(ctx context.Context, imagePath, prompt, model string) (string, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	text, chatErr := s.chatVision(ctx, encoded, prompt, model)
	if chatErr == nil {
		return text, nil
	}

	text, genErr := s.generateVision(ctx, encoded, prompt, model)
	if genErr == nil {
		return text, nil
	}

	return "", fmt.Errorf("%w: chat: %v; generate: %v", ErrVisionUnavailable, chatErr, genErr)
}

func (s *OllamaService) chatVision(ctx context.Context, imageB64, prompt, model string) (string, error) {
	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt, Images: []string{imageB64}},
		},
		Format: "json",
		Stream: false,
		// Low temperature keeps the item list stable across retries of
		// the same photo.
		Options: &modelOptions{Temperature: 0.1},
	}

	body, err := s.postJSON(ctx, "/api/chat", payload)
	if err != nil {
		return "", err
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("failed to parse chat JSON: %w", err)
	}
	return cr.Message.Content, nil
}

func (s *OllamaService) generateVision(ctx context.Context, imageB64, prompt, model string) (string, error) {
	payload := generateRequest{
		Model:  model,
		Prompt: prompt,
		Images: []string{imageB64},
		Format: "json",
		Stream: false,
	}

	body, err := s.postJSON(ctx, "/api/generate", payload)
	if err != nil {
		return "", err
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse generate JSON: %w", err)
	}
	return gr.Response, nil
}

func (s *OllamaService) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Ollama %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama %s error %d: %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}
