package dto

import "kj-canvas-be/internal/entity"

type CreateCardRequest struct {
	Text        string  `json:"text" validate:"required"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	SourceType  string  `json:"source_type" validate:"omitempty,oneof=discussion proposal_sheet audio_transcription proposal_sheet_ai"`
	IsChallenge bool    `json:"is_challenge"`
}

// UpdateCardRequest carries a partial update. Absent fields stay untouched;
// the clear flags null out the nullable fields explicitly.
type UpdateCardRequest struct {
	Id                       string
	Text                     *string  `json:"text"`
	X                        *float64 `json:"x"`
	Y                        *float64 `json:"y"`
	Width                    *float64 `json:"width"`
	Height                   *float64 `json:"height"`
	GroupId                  *string  `json:"group_id"`
	ClearGroup               bool     `json:"clear_group"`
	IsChallenge              *bool    `json:"is_challenge"`
	SolutionPerspective      *string  `json:"solution_perspective"`
	ClearSolutionPerspective bool     `json:"clear_solution_perspective"`
}

func (r *UpdateCardRequest) ToPatch() entity.CardPatch {
	return entity.CardPatch{
		Text:                     r.Text,
		X:                        r.X,
		Y:                        r.Y,
		Width:                    r.Width,
		Height:                   r.Height,
		GroupId:                  r.GroupId,
		ClearGroup:               r.ClearGroup,
		IsChallenge:              r.IsChallenge,
		SolutionPerspective:      r.SolutionPerspective,
		ClearSolutionPerspective: r.ClearSolutionPerspective,
	}
}

type BoardResponse struct {
	Cards  []entity.Card  `json:"cards"`
	Groups []entity.Group `json:"groups"`
}
