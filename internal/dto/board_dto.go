package dto

import (
	"time"

	"kj-canvas-be/internal/entity"
)

type HistoryStatusResponse struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
	Length  int  `json:"length"`
}

type ExportData struct {
	Cards      []entity.Card  `json:"cards"`
	Groups     []entity.Group `json:"groups"`
	ExportedAt time.Time      `json:"exportedAt"`
	Version    string         `json:"version"`
}

type ImportRequest struct {
	Cards  []entity.Card  `json:"cards"`
	Groups []entity.Group `json:"groups"`
}

type SessionResponse struct {
	UserId string `json:"user_id"`
}
