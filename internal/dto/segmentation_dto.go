package dto

import "kj-canvas-be/internal/entity"

type SegmentTextRequest struct {
	Text       string `json:"text" validate:"required"`
	SourceType string `json:"source_type" validate:"omitempty,oneof=discussion proposal_sheet audio_transcription proposal_sheet_ai"`
}

// Segment is one LLM-extracted unit of meaning before it becomes a Card.
type Segment struct {
	Text        string `json:"text"`
	Perspective string `json:"perspective"`
	Type        string `json:"type"`
	Reasoning   string `json:"reasoning"`
}

// SegmentationResult is the schema-constrained response envelope.
type SegmentationResult struct {
	Segments []Segment `json:"segments"`
}

type SegmentTextResponse struct {
	Cards  []entity.Card  `json:"cards"`
	Groups []entity.Group `json:"groups"`
}

type GenerateMinutesRequest struct {
	Transcription string `json:"transcription" validate:"required"`
}

type MinutesKeyPoint struct {
	Point              string   `json:"point"`
	SupportingOpinions []string `json:"supportingOpinions"`
	OpposingOpinions   []string `json:"opposingOpinions"`
}

type MeetingMinutes struct {
	Summary           string            `json:"summary"`
	KeyPoints         []MinutesKeyPoint `json:"keyPoints"`
	Insights          []string          `json:"insights"`
	CleanedTranscript string            `json:"cleanedTranscript"`
}

// ProposalSheetData is the structured table input detected before any LLM
// call (the "import as cards" path).
type ProposalSheetData struct {
	Tables []ProposalSheetTable `json:"tables"`
}

type ProposalSheetTable struct {
	Data [][]string `json:"data"`
}
