package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "fenced json block",
			raw:      "Here you go:\n```json\n{\"segments\": []}\n```\nHope that helps!",
			expected: `{"segments": []}`,
		},
		{
			name:     "bare json with surrounding prose",
			raw:      "The result is {\"a\": 1} as requested.",
			expected: `{"a": 1}`,
		},
		{
			name:     "nested braces keep the outermost span",
			raw:      "x {\"a\": {\"b\": 2}} y",
			expected: `{"a": {"b": 2}}`,
		},
		{
			name:     "no braces at all",
			raw:      "  sorry, nothing here  ",
			expected: "sorry, nothing here",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONResponse(tt.raw))
		})
	}
}

func candidateResponse(text string) string {
	body, _ := json.Marshal(GeminiChatResponse{
		Candidates: []*GeminiChatCandidate{
			{Content: &GeminiChatContent{Parts: []*GeminiChatParts{{Text: text}}}},
		},
	})
	return string(body)
}

func TestGenerateJSONParsesSchemaResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, "models/test-model:generateContent")

		var req GeminiChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		fmt.Fprint(w, candidateResponse("```json\n{\"segments\": [{\"text\": \"x\"}]}\n```"))
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model", server.URL, 5*time.Second)
	raw, err := client.GenerateJSON(context.Background(), "prompt", json.RawMessage(`{"type":"OBJECT"}`))
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.JSONEq(t, `{"segments": [{"text": "x"}]}`, string(raw))
}

func TestGenerateJSONUnusableResponseIsNil(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: "   "},
		{name: "not json", text: "{broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, candidateResponse(tt.text))
			}))
			defer server.Close()

			client := NewClient("k", "m", server.URL, 5*time.Second)
			raw, err := client.GenerateJSON(context.Background(), "prompt", nil)
			require.NoError(t, err)
			assert.Nil(t, raw)
		})
	}
}

func TestGenerateTextErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer server.Close()

	client := NewClient("k", "m", server.URL, 5*time.Second)
	_, err := client.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateTextNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer server.Close()

	client := NewClient("k", "m", server.URL, 5*time.Second)
	_, err := client.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidate text")
}
