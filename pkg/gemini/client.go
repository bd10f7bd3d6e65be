package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiChatParts struct {
	Text string `json:"text"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role"`
}

type GenerationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	Temperature      *float64        `json:"temperature,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
}

type GeminiChatRequest struct {
	Contents         []*GeminiChatContent `json:"contents"`
	GenerationConfig *GenerationConfig    `json:"generationConfig,omitempty"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

const ChatMessageRoleUser = "user"

// Client is a thin wrapper around the generateContent endpoint. The model is
// a probabilistic collaborator: schema-constrained responses are still
// cleaned and parsed defensively, and an unusable response degrades to a nil
// result rather than an error.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker '%s' state changed from %v to %v", name, from, to)
		},
	})

	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker,
	}
}

// GenerateText sends a plain prompt and returns the raw text response.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := 0.7
	raw, err := c.generate(ctx, prompt, &GenerationConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// GenerateJSON sends a prompt with a strict output schema and returns the
// parsed JSON document. Returns nil (not an error) when the model produced
// nothing parseable: the caller treats that as an empty result.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error) {
	raw, err := c.generate(ctx, prompt, &GenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}

	cleaned := cleanJSONResponse(raw)
	if strings.TrimSpace(cleaned) == "" {
		log.Printf("Warn: LLM response was empty after cleaning. Raw response: %s", raw)
		return nil, nil
	}

	if !json.Valid([]byte(cleaned)) {
		log.Printf("Warn: LLM response is not valid JSON after cleaning: %s", cleaned)
		return nil, nil
	}

	return json.RawMessage(cleaned), nil
}

func (c *Client) generate(ctx context.Context, prompt string, config *GenerationConfig) (string, error) {
	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Parts: []*GeminiChatParts{{Text: prompt}},
				Role:  ChatMessageRoleUser,
			},
		},
		GenerationConfig: config,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, payloadJson)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) doRequest(ctx context.Context, payloadJson []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("unexpected response structure: no candidate text")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

var jsonFenceRe = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")

// cleanJSONResponse strips markdown commentary around the model's JSON.
// Prefers an explicit ```json fence; otherwise falls back to the first
// balanced {...} span in the text.
func cleanJSONResponse(raw string) string {
	if match := jsonFenceRe.FindStringSubmatch(raw); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}

	firstBrace := strings.Index(raw, "{")
	lastBrace := strings.LastIndex(raw, "}")
	if firstBrace != -1 && lastBrace > firstBrace {
		return strings.TrimSpace(raw[firstBrace : lastBrace+1])
	}

	return strings.TrimSpace(raw)
}
