package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/contract"
	"kj-canvas-be/pkg/docai"
	"kj-canvas-be/pkg/events"
)

// IIngestionService turns an uploaded document (proposal sheet scan, meeting
// handout) into cards via the OCR proxy.
type IIngestionService interface {
	ProcessDocument(ctx context.Context, fileName, mimeType string, content []byte) (*dto.ProcessDocumentResponse, error)
	Health(ctx context.Context) (map[string]interface{}, error)
}

type ingestionService struct {
	board  IBoardService
	docai  *docai.Client
	logger logger.ILogger
}

func NewIngestionService(board IBoardService, docaiClient *docai.Client, log logger.ILogger) IIngestionService {
	return &ingestionService{
		board:  board,
		docai:  docaiClient,
		logger: log,
	}
}

func (s *ingestionService) ProcessDocument(ctx context.Context, fileName, mimeType string, content []byte) (*dto.ProcessDocumentResponse, error) {
	result, err := s.docai.Process(ctx, fileName, mimeType, content)
	if err != nil {
		var validationErr *docai.ValidationError
		if errors.As(err, &validationErr) {
			return nil, fiber.NewError(fiber.StatusBadRequest, validationErr.Reason)
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	stats := dto.IngestStats{TotalCards: len(result.Cards)}
	drafts := make([]entity.Card, 0, len(result.Cards))
	for _, draft := range result.Cards {
		switch draft.DataType {
		case "form_field":
			stats.FormCards++
		case "table":
			stats.TableCards++
		default:
			stats.TextCards++
		}

		drafts = append(drafts, entity.Card{
			Text:             draft.Text,
			X:                draft.X,
			Y:                draft.Y,
			Width:            draft.Width,
			Height:           draft.Height,
			SourceType:       entity.SourceTypeProposalSheet,
			SourceIdentifier: fileName,
		})
	}

	var created []entity.Card
	err = s.board.Mutate(fmt.Sprintf("ingest document %s", fileName), events.EventCardsCreated, func(cards contract.CardRepository, _ contract.GroupRepository) error {
		var addErr error
		created, addErr = cards.AddMultiple(drafts)
		return addErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("IngestionService", "Document ingested", map[string]interface{}{
		"file_name":   fileName,
		"total_cards": stats.TotalCards,
	})

	return &dto.ProcessDocumentResponse{
		Cards:         created,
		Stats:         stats,
		ExtractedData: result.ExtractedData,
		FileInfo:      result.FileInfo,
	}, nil
}

func (s *ingestionService) Health(ctx context.Context) (map[string]interface{}, error) {
	body, err := s.docai.Health(ctx)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return body, nil
}
