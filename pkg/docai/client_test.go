package docai

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

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		size     int64
		wantErr  string
	}{
		{name: "pdf ok", fileName: "sheet.pdf", mimeType: "application/pdf", size: 1024},
		{name: "png ok", fileName: "scan.PNG", mimeType: "image/png", size: 1024},
		{name: "unsupported extension", fileName: "notes.docx", mimeType: "application/pdf", size: 1024, wantErr: "unsupported file extension"},
		{name: "unsupported mime", fileName: "scan.png", mimeType: "image/gif", size: 1024, wantErr: "unsupported MIME type"},
		{name: "too large", fileName: "big.pdf", mimeType: "application/pdf", size: MaxFileSize + 1, wantErr: "file too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.fileName, tt.mimeType, tt.size)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProcessRejectsOversizedFileBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	content := make([]byte, MaxFileSize+1)
	_, err := client.Process(context.Background(), "big.pdf", "application/pdf", content)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
	assert.False(t, called, "oversized file must never reach the network")
}

func TestProcessUploadsMultipartAndParsesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process-document", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sheet.pdf", header.Filename)

		json.NewEncoder(w).Encode(ProcessResult{
			Success: true,
			Cards: []DraftCard{
				{Id: "d1", Text: "抽出テキスト", DataType: "text", X: 50, Y: 50, Width: 200, Height: 120},
				{Id: "d2", Text: "表のセル", DataType: "table", TableIndex: 0, RowIndex: 1, CellIndex: 2},
			},
			ExtractedData: ExtractedData{Text: "全文", Pages: 2},
			FileInfo:      FileInfo{Name: "sheet.pdf", Size: 3, Type: "application/pdf"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Process(context.Background(), "sheet.pdf", "application/pdf", []byte("pdf"))
	require.NoError(t, err)

	require.Len(t, result.Cards, 2)
	assert.Equal(t, "抽出テキスト", result.Cards[0].Text)
	assert.Equal(t, "table", result.Cards[1].DataType)
	assert.Equal(t, 2, result.ExtractedData.Pages)
	assert.Equal(t, "sheet.pdf", result.FileInfo.Name)
}

func TestProcessUnsuccessfulResultIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ProcessResult{Success: false, Error: "processor unavailable"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Process(context.Background(), "sheet.pdf", "application/pdf", []byte("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "processor unavailable")
}

func TestProcessErrorStatusWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "ocr backend down"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Process(context.Background(), "sheet.pdf", "application/pdf", []byte("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocr backend down")
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		fmt.Fprint(w, `{"status": "ok"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	body, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}
