package contract

import (
	"kj-canvas-be/internal/entity"
)

// CardRepository owns the cards collection. Every operation reads the whole
// collection, mutates, and writes it back in one store operation.
type CardRepository interface {
	// GetAll returns the current collection in insertion order. Absent or
	// corrupt storage yields an empty slice, never an error.
	GetAll() []entity.Card
	Add(card entity.Card) (entity.Card, error)
	// AddMultiple persists the whole batch with a single store write so a
	// concurrent read never observes a partial batch.
	AddMultiple(cards []entity.Card) ([]entity.Card, error)
	// Update merges the patch and bumps UpdatedAt. Returns nil when the id is
	// unknown; the caller decides whether that is fatal.
	Update(id string, patch entity.CardPatch) (*entity.Card, error)
	Delete(id string) error
	DeleteAll() error
	// ReplaceAll swaps in a whole collection verbatim, ids and timestamps
	// included. Snapshot restore and board import go through this.
	ReplaceAll(cards []entity.Card) error
}
