package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/history"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/contract"
	"kj-canvas-be/pkg/events"
)

const (
	defaultCardWidth  = 200
	defaultCardHeight = 120

	groupPaddingLeft   = 20
	groupPaddingTop    = 30
	groupPaddingWidth  = 40
	groupPaddingHeight = 60
)

// IBoardService is the single writer for the board. Every mutation runs
// under one mutex, snapshots the resulting state into history, and publishes
// a board event. Reads go straight to the repositories.
type IBoardService interface {
	Board() dto.BoardResponse

	CreateCard(request *dto.CreateCardRequest) (*entity.Card, error)
	UpdateCard(request *dto.UpdateCardRequest) (*entity.Card, error)
	DeleteCard(id string) error

	CreateGroup(request *dto.CreateGroupRequest) (*entity.Group, error)
	UpdateGroup(request *dto.UpdateGroupRequest) (*entity.Group, error)
	DeleteGroup(id string) error

	Undo() (*dto.BoardResponse, error)
	Redo() (*dto.BoardResponse, error)
	HistoryStatus() dto.HistoryStatusResponse

	Export() dto.ExportData
	Import(request *dto.ImportRequest) (*dto.BoardResponse, error)
	ClearAll() error

	// Mutate runs fn under the board mutex, then snapshots and publishes.
	// Multi-step flows (segmentation, ingestion, auto-organize) use this so
	// their intermediate states never leak into history.
	Mutate(description string, eventType string, fn func(cards contract.CardRepository, groups contract.GroupRepository) error) error
}

type boardService struct {
	// mu serializes every mutation so the read-modify-write repositories
	// behave as a single-writer store.
	mu           sync.Mutex
	cardRepo     contract.CardRepository
	groupRepo    contract.GroupRepository
	identityRepo contract.IdentityRepository
	history      *history.Manager
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewBoardService(
	cardRepo contract.CardRepository,
	groupRepo contract.GroupRepository,
	identityRepo contract.IdentityRepository,
	historyManager *history.Manager,
	publisher IPublisherService,
	log logger.ILogger,
) IBoardService {
	s := &boardService{
		cardRepo:     cardRepo,
		groupRepo:    groupRepo,
		identityRepo: identityRepo,
		history:      historyManager,
		publisher:    publisher,
		logger:       log,
	}

	// Seed history with the current board so the very first action can be
	// undone back to it.
	s.history.SaveState(cardRepo.GetAll(), groupRepo.GetAll(), "initial")
	return s
}

func (s *boardService) Board() dto.BoardResponse {
	return dto.BoardResponse{
		Cards:  s.cardRepo.GetAll(),
		Groups: s.groupRepo.GetAll(),
	}
}

func (s *boardService) CreateCard(request *dto.CreateCardRequest) (*entity.Card, error) {
	var created entity.Card

	err := s.Mutate("add card", events.EventCardsCreated, func(cards contract.CardRepository, _ contract.GroupRepository) error {
		card := entity.Card{
			Text:        request.Text,
			X:           request.X,
			Y:           request.Y,
			Width:       request.Width,
			Height:      request.Height,
			SourceType:  request.SourceType,
			IsChallenge: request.IsChallenge,
		}
		if card.Width <= 0 {
			card.Width = defaultCardWidth
		}
		if card.Height <= 0 {
			card.Height = defaultCardHeight
		}
		if card.SourceType == "" {
			card.SourceType = entity.SourceTypeDiscussion
		}

		var err error
		created, err = cards.Add(card)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *boardService) UpdateCard(request *dto.UpdateCardRequest) (*entity.Card, error) {
	var updated *entity.Card

	err := s.Mutate("update card", events.EventCardUpdated, func(cards contract.CardRepository, _ contract.GroupRepository) error {
		var err error
		updated, err = cards.Update(request.Id, request.ToPatch())
		if err != nil {
			return err
		}
		if updated == nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("card %s not found", request.Id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *boardService) DeleteCard(id string) error {
	return s.Mutate("delete card", events.EventCardDeleted, func(cards contract.CardRepository, _ contract.GroupRepository) error {
		return cards.Delete(id)
	})
}

func (s *boardService) CreateGroup(request *dto.CreateGroupRequest) (*entity.Group, error) {
	var created entity.Group

	err := s.Mutate("create group", events.EventGroupCreated, func(cards contract.CardRepository, groups contract.GroupRepository) error {
		all := cards.GetAll()
		members := make([]entity.Card, 0, len(request.CardIds))
		wanted := make(map[string]bool, len(request.CardIds))
		for _, id := range request.CardIds {
			wanted[id] = true
		}
		for _, card := range all {
			if wanted[card.Id] {
				members = append(members, card)
			}
		}
		if len(members) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "none of the given card ids exist")
		}

		x, y, width, height := boundingBox(members)

		color := request.Color
		if color == "" {
			color = groupColor(len(groups.GetAll()))
		}

		var err error
		created, err = groups.Add(entity.Group{
			Title:            request.Title,
			X:                x,
			Y:                y,
			Width:            width,
			Height:           height,
			Color:            color,
			IsChallengeGroup: request.IsChallengeGroup,
			SourceType:       request.SourceType,
			SourceIdentifier: request.SourceIdentifier,
		})
		if err != nil {
			return err
		}

		for _, member := range members {
			if _, err := cards.Update(member.Id, entity.CardPatch{GroupId: &created.Id}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *boardService) UpdateGroup(request *dto.UpdateGroupRequest) (*entity.Group, error) {
	var updated *entity.Group

	err := s.Mutate("update group", events.EventGroupUpdated, func(_ contract.CardRepository, groups contract.GroupRepository) error {
		var err error
		updated, err = groups.Update(request.Id, entity.GroupPatch{
			Title:  request.Title,
			X:      request.X,
			Y:      request.Y,
			Width:  request.Width,
			Height: request.Height,
			Color:  request.Color,
		})
		if err != nil {
			return err
		}
		if updated == nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("group %s not found", request.Id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteGroup ungroups the member cards before removing the group record, so
// no card is ever left pointing at a missing group.
func (s *boardService) DeleteGroup(id string) error {
	return s.Mutate("delete group", events.EventGroupDeleted, func(cards contract.CardRepository, groups contract.GroupRepository) error {
		for _, card := range cards.GetAll() {
			if card.GroupId == nil || *card.GroupId != id {
				continue
			}
			falseVal := false
			patch := entity.CardPatch{
				ClearGroup:               true,
				IsChallenge:              &falseVal,
				ClearSolutionPerspective: true,
			}
			if _, err := cards.Update(card.Id, patch); err != nil {
				return err
			}
		}
		return groups.Delete(id)
	})
}

func (s *boardService) Undo() (*dto.BoardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.history.Undo()
	if snapshot == nil {
		board := s.Board()
		return &board, nil
	}
	return s.restore(snapshot)
}

func (s *boardService) Redo() (*dto.BoardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.history.Redo()
	if snapshot == nil {
		board := s.Board()
		return &board, nil
	}
	return s.restore(snapshot)
}

func (s *boardService) restore(snapshot *entity.Snapshot) (*dto.BoardResponse, error) {
	if err := s.cardRepo.ReplaceAll(snapshot.Cards); err != nil {
		return nil, err
	}
	if err := s.groupRepo.ReplaceAll(snapshot.Groups); err != nil {
		return nil, err
	}

	s.publisher.PublishBoardEvent(events.NewBoardEvent(events.EventBoardRestored, map[string]interface{}{
		"description": snapshot.Description,
	}))

	return &dto.BoardResponse{
		Cards:  snapshot.Cards,
		Groups: snapshot.Groups,
	}, nil
}

func (s *boardService) HistoryStatus() dto.HistoryStatusResponse {
	return dto.HistoryStatusResponse{
		CanUndo: s.history.CanUndo(),
		CanRedo: s.history.CanRedo(),
		Length:  s.history.Len(),
	}
}

func (s *boardService) Export() dto.ExportData {
	return dto.ExportData{
		Cards:      s.cardRepo.GetAll(),
		Groups:     s.groupRepo.GetAll(),
		ExportedAt: time.Now(),
		Version:    "1.0",
	}
}

func (s *boardService) Import(request *dto.ImportRequest) (*dto.BoardResponse, error) {
	err := s.Mutate("import board", events.EventBoardImported, func(cards contract.CardRepository, groups contract.GroupRepository) error {
		if err := cards.ReplaceAll(request.Cards); err != nil {
			return err
		}
		return groups.ReplaceAll(request.Groups)
	})
	if err != nil {
		return nil, err
	}

	board := s.Board()
	return &board, nil
}

// ClearAll wipes all three store records, identity included. A fresh board
// is indistinguishable from a first visit.
func (s *boardService) ClearAll() error {
	return s.Mutate("clear board", events.EventBoardCleared, func(cards contract.CardRepository, groups contract.GroupRepository) error {
		if err := cards.DeleteAll(); err != nil {
			return err
		}
		if err := groups.DeleteAll(); err != nil {
			return err
		}
		return s.identityRepo.Clear()
	})
}

func (s *boardService) Mutate(description string, eventType string, fn func(cards contract.CardRepository, groups contract.GroupRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.cardRepo, s.groupRepo); err != nil {
		return err
	}

	s.history.SaveState(s.cardRepo.GetAll(), s.groupRepo.GetAll(), description)
	s.publisher.PublishBoardEvent(events.NewBoardEvent(eventType, map[string]interface{}{
		"description": description,
	}))
	return nil
}

// boundingBox returns the group frame for a set of member cards with the
// standard padding around them.
func boundingBox(members []entity.Card) (x, y, width, height float64) {
	minX, minY := members[0].X, members[0].Y
	maxX := members[0].X + members[0].Width
	maxY := members[0].Y + members[0].Height

	for _, c := range members[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.X+c.Width > maxX {
			maxX = c.X + c.Width
		}
		if c.Y+c.Height > maxY {
			maxY = c.Y + c.Height
		}
	}

	return minX - groupPaddingLeft,
		minY - groupPaddingTop,
		maxX - minX + groupPaddingWidth,
		maxY - minY + groupPaddingHeight
}

func groupColor(existing int) string {
	return fmt.Sprintf("hsl(%d, 70%%, 95%%)", (existing*60)%360)
}
