package entity

import "time"

// Card source types. proposal_sheet_ai marks cards derived from an
// AI-structured proposal sheet rather than the raw table layout.
const (
	SourceTypeDiscussion         = "discussion"
	SourceTypeProposalSheet      = "proposal_sheet"
	SourceTypeAudioTranscription = "audio_transcription"
	SourceTypeProposalSheetAI    = "proposal_sheet_ai"
)

// Solution perspectives (who can act on a solution card).
const (
	PerspectivePersonal   = "自分ができること"
	PerspectiveCommunity  = "地域ができること"
	PerspectiveGovernment = "行政ができること"
)

type Card struct {
	Id                  string    `json:"id"`
	Text                string    `json:"text"`
	X                   float64   `json:"x"`
	Y                   float64   `json:"y"`
	Width               float64   `json:"width"`
	Height              float64   `json:"height"`
	GroupId             *string   `json:"groupId"`
	SourceType          string    `json:"sourceType"`
	SourceIdentifier    string    `json:"sourceIdentifier,omitempty"`
	IsChallenge         bool      `json:"isChallenge"`
	SolutionPerspective *string   `json:"solutionPerspective"`
	PerspectiveRaw      string    `json:"perspectiveRaw,omitempty"`
	TypeRaw             string    `json:"typeRaw,omitempty"`
	Reasoning           string    `json:"reasoning,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Clone returns a deep copy. Pointer fields get fresh allocations so history
// snapshots stay untouched by later in-place edits.
func (c Card) Clone() Card {
	clone := c
	if c.GroupId != nil {
		v := *c.GroupId
		clone.GroupId = &v
	}
	if c.SolutionPerspective != nil {
		v := *c.SolutionPerspective
		clone.SolutionPerspective = &v
	}
	return clone
}

func CloneCards(cards []Card) []Card {
	clones := make([]Card, len(cards))
	for i, c := range cards {
		clones[i] = c.Clone()
	}
	return clones
}
