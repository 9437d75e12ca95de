// Package llm is a small client for the OpenAI Responses API restricted to
// strict JSON-schema output.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY")

// UpstreamError is any failure on the model side: transport, non-2xx status,
// missing output text or output that is not valid JSON.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("model api (status %d): %s", e.Status, e.Message)
	}
	return "model api: " + e.Message
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	// Name labels the response schema.
	Name            string
	Schema          map[string]any
	Messages        []Message
	Temperature     float64
	MaxOutputTokens int
}

// JSONResponder is what the plan generator and the coach depend on; Client
// implements it.
type JSONResponder interface {
	RespondJSON(ctx context.Context, req Request, out any) error
}

type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(opts Options) *Client {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 90 * time.Second
	}
	return &Client{
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

type textFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type responsesRequest struct {
	Model string    `json:"model"`
	Input []Message `json:"input"`
	Text  struct {
		Format textFormat `json:"format"`
	} `json:"text"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"`
}

type responsesBody struct {
	OutputText *string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Type string  `json:"type"`
			Text *string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// Respond sends req and returns the model's output text.
func (c *Client) Respond(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := responsesRequest{
		Model:           c.model,
		Input:           req.Messages,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	}
	payload.Text.Format = textFormat{
		Type:   "json_schema",
		Name:   req.Name,
		Strict: true,
		Schema: req.Schema,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &UpstreamError{Message: "failed to reach the model API: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Message: "failed to read model response"}
	}

	var parsed responsesBody
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("model API error (status %d)", resp.StatusCode)
		if decodeErr == nil {
			if parsed.Error != nil && parsed.Error.Message != "" {
				msg = parsed.Error.Message
			} else if parsed.Message != "" {
				msg = parsed.Message
			}
		}
		return "", &UpstreamError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Message: "model response is not valid JSON"}
	}

	text, ok := extractOutputText(parsed)
	if !ok {
		return "", &UpstreamError{Status: resp.StatusCode, Message: "no text output received from the model"}
	}
	return text, nil
}

// RespondJSON calls Respond and decodes the output text into out.
func (c *Client) RespondJSON(ctx context.Context, req Request, out any) error {
	text, err := c.Respond(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &UpstreamError{Message: "model returned invalid JSON"}
	}
	return nil
}

// extractOutputText prefers the top-level output_text and otherwise takes the
// first non-blank output_text content part.
func extractOutputText(body responsesBody) (string, bool) {
	if body.OutputText != nil && strings.TrimSpace(*body.OutputText) != "" {
		return *body.OutputText, true
	}
	for _, item := range body.Output {
		for _, part := range item.Content {
			if part.Type != "output_text" || part.Text == nil {
				continue
			}
			if strings.TrimSpace(*part.Text) != "" {
				return *part.Text, true
			}
		}
	}
	return "", false
}
