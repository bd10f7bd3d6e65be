package docai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// MaxFileSize caps uploads at 16MB, matching the processing proxy's own
// multipart limit. Checked locally before any network round trip.
const MaxFileSize = 16 * 1024 * 1024

var supportedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
}

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ValidateFile rejects unsupported or oversized files without touching the
// network.
func ValidateFile(fileName, mimeType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !supportedExtensions[ext] {
		return &ValidationError{Reason: fmt.Sprintf("unsupported file extension: %s (allowed: pdf, png, jpg, jpeg)", ext)}
	}
	if !supportedMimeTypes[mimeType] {
		return &ValidationError{Reason: fmt.Sprintf("unsupported MIME type: %s", mimeType)}
	}
	if size > MaxFileSize {
		return &ValidationError{Reason: fmt.Sprintf("file too large: %d bytes (limit %d)", size, MaxFileSize)}
	}
	return nil
}

// DraftCard is a card candidate extracted by the OCR service. Positions are
// a deterministic grid computed server-side from row/column indices, so the
// initial placement never overlaps.
type DraftCard struct {
	Id         string  `json:"id"`
	Text       string  `json:"text"`
	DataType   string  `json:"data_type"` // "text" | "form_field" | "table"
	FieldName  string  `json:"field_name,omitempty"`
	TableIndex int     `json:"table_index,omitempty"`
	RowIndex   int     `json:"row_index,omitempty"`
	CellIndex  int     `json:"cell_index,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ExtractedData struct {
	Text       string          `json:"text"`
	Pages      int             `json:"pages"`
	Entities   json.RawMessage `json:"entities,omitempty"`
	FormFields []FormField     `json:"form_fields,omitempty"`
	Tables     json.RawMessage `json:"tables,omitempty"`
}

type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type ProcessResult struct {
	Success       bool          `json:"success"`
	Cards         []DraftCard   `json:"cards"`
	ExtractedData ExtractedData `json:"extracted_data"`
	FileInfo      FileInfo      `json:"file_info"`
	Error         string        `json:"error,omitempty"`
}

// Client talks to the Document AI processing proxy.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Health checks the processing proxy.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check failed with status %d", res.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// Process uploads a document and returns extracted card candidates. Non-2xx
// or success:false is a hard failure for the call.
func (c *Client) Process(ctx context.Context, fileName, mimeType string, content []byte) (*ProcessResult, error) {
	if err := ValidateFile(fileName, mimeType, int64(len(content))); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/process-document", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		var errRes struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resBody, &errRes) == nil && errRes.Error != "" {
			return nil, fmt.Errorf("document processing failed: %s", errRes.Error)
		}
		return nil, fmt.Errorf("document processing failed with status %d", res.StatusCode)
	}

	var result ProcessResult
	if err := json.Unmarshal(resBody, &result); err != nil {
		return nil, fmt.Errorf("unexpected response from document service: %w", err)
	}

	if !result.Success {
		if result.Error != "" {
			return nil, fmt.Errorf("document processing failed: %s", result.Error)
		}
		return nil, fmt.Errorf("document processing failed")
	}

	return &result, nil
}
