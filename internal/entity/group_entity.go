package entity

import "time"

type Group struct {
	Id               string    `json:"id"`
	Title            string    `json:"title"`
	X                float64   `json:"x"`
	Y                float64   `json:"y"`
	Width            float64   `json:"width"`
	Height           float64   `json:"height"`
	Color            string    `json:"color"`
	IsChallengeGroup bool      `json:"isChallengeGroup"`
	SourceType       string    `json:"sourceType,omitempty"`
	SourceIdentifier string    `json:"sourceIdentifier,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (g Group) Clone() Group {
	return g
}

func CloneGroups(groups []Group) []Group {
	clones := make([]Group, len(groups))
	copy(clones, groups)
	return clones
}
