package entity

import "time"

// Snapshot is a full deep copy of both collections at one point in history.
// Immutable once stored.
type Snapshot struct {
	Cards       []Card    `json:"cards"`
	Groups      []Group   `json:"groups"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Cards:       CloneCards(s.Cards),
		Groups:      CloneGroups(s.Groups),
		Timestamp:   s.Timestamp,
		Description: s.Description,
	}
}
