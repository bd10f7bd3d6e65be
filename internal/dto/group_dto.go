package dto

type CreateGroupRequest struct {
	Title            string   `json:"title" validate:"required"`
	CardIds          []string `json:"card_ids" validate:"required,min=1"`
	Color            string   `json:"color"`
	IsChallengeGroup bool     `json:"is_challenge_group"`
	SourceType       string   `json:"source_type"`
	SourceIdentifier string   `json:"source_identifier"`
}

type UpdateGroupRequest struct {
	Id     string
	Title  *string  `json:"title"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Color  *string  `json:"color"`
}
