package implementation

import (
	"encoding/json"
	"time"

	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/contract"
	"kj-canvas-be/internal/storage"
)

type CardRepositoryImpl struct {
	store  storage.Store
	logger logger.ILogger
}

func NewCardRepository(store storage.Store, log logger.ILogger) contract.CardRepository {
	return &CardRepositoryImpl{
		store:  store,
		logger: log,
	}
}

func (r *CardRepositoryImpl) GetAll() []entity.Card {
	data, found := r.store.Read(storage.KeyCards)
	if !found {
		return []entity.Card{}
	}

	var cards []entity.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		// Corrupt collection degrades to empty rather than failing the caller.
		r.logger.Warn("CardRepository", "Corrupt cards collection, treating as empty", map[string]interface{}{
			"error": err.Error(),
		})
		return []entity.Card{}
	}
	if cards == nil {
		return []entity.Card{}
	}
	return cards
}

func (r *CardRepositoryImpl) persist(cards []entity.Card) error {
	data, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return r.store.Write(storage.KeyCards, data)
}

func (r *CardRepositoryImpl) Add(card entity.Card) (entity.Card, error) {
	cards := r.GetAll()

	now := time.Now()
	card.Id = newRecordId()
	card.CreatedAt = now
	card.UpdatedAt = now

	cards = append(cards, card)
	if err := r.persist(cards); err != nil {
		return entity.Card{}, err
	}
	return card, nil
}

func (r *CardRepositoryImpl) AddMultiple(newCards []entity.Card) ([]entity.Card, error) {
	cards := r.GetAll()

	now := time.Now()
	stored := make([]entity.Card, len(newCards))
	for i, card := range newCards {
		card.Id = newRecordId()
		card.CreatedAt = now
		card.UpdatedAt = now
		stored[i] = card
	}

	// One write for the whole batch. A read between this call and its return
	// sees either none or all of the new cards.
	cards = append(cards, stored...)
	if err := r.persist(cards); err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *CardRepositoryImpl) Update(id string, patch entity.CardPatch) (*entity.Card, error) {
	cards := r.GetAll()

	for i := range cards {
		if cards[i].Id != id {
			continue
		}
		patch.ApplyTo(&cards[i])
		cards[i].UpdatedAt = time.Now()
		if err := r.persist(cards); err != nil {
			return nil, err
		}
		updated := cards[i].Clone()
		return &updated, nil
	}
	return nil, nil
}

func (r *CardRepositoryImpl) Delete(id string) error {
	cards := r.GetAll()

	filtered := cards[:0]
	for _, card := range cards {
		if card.Id != id {
			filtered = append(filtered, card)
		}
	}
	return r.persist(filtered)
}

func (r *CardRepositoryImpl) DeleteAll() error {
	return r.persist([]entity.Card{})
}

func (r *CardRepositoryImpl) ReplaceAll(cards []entity.Card) error {
	if cards == nil {
		cards = []entity.Card{}
	}
	return r.persist(cards)
}
