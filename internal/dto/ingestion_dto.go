package dto

import (
	"kj-canvas-be/internal/entity"

	"kj-canvas-be/pkg/docai"
)

type IngestStats struct {
	TotalCards int `json:"total_cards"`
	TextCards  int `json:"text_cards"`
	FormCards  int `json:"form_cards"`
	TableCards int `json:"table_cards"`
}

type ProcessDocumentResponse struct {
	Cards         []entity.Card       `json:"cards"`
	Stats         IngestStats         `json:"stats"`
	ExtractedData docai.ExtractedData `json:"extracted_data"`
	FileInfo      docai.FileInfo      `json:"file_info"`
}
