package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kj-canvas-be/internal/constant"
	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/contract"
	"kj-canvas-be/pkg/events"
	"kj-canvas-be/pkg/gemini"
)

// Canvas layout for generated cards. The canvas has no fixed width on the
// client side, so card rows wrap at a conventional width instead.
const (
	canvasWidth = 1200

	segmentCardWidth   = 180
	segmentCardHeight  = 100
	segmentCardSpacing = 20
	segmentStartX      = 50
	segmentStartY      = 50

	sheetCardWidth   = 200
	sheetCardHeight  = 120
	sheetCardSpacing = 30
)

// ISegmentationService turns free text into cards. Plain text goes through
// the LLM segmenter; text that parses as a proposal-sheet table document is
// imported structurally without any LLM call.
type ISegmentationService interface {
	SegmentText(ctx context.Context, request *dto.SegmentTextRequest) (*dto.SegmentTextResponse, error)
	GenerateMinutes(ctx context.Context, request *dto.GenerateMinutesRequest) (*dto.MeetingMinutes, error)
}

type segmentationService struct {
	board  IBoardService
	gemini *gemini.Client
	logger logger.ILogger
}

func NewSegmentationService(board IBoardService, geminiClient *gemini.Client, log logger.ILogger) ISegmentationService {
	return &segmentationService{
		board:  board,
		gemini: geminiClient,
		logger: log,
	}
}

func (s *segmentationService) SegmentText(ctx context.Context, request *dto.SegmentTextRequest) (*dto.SegmentTextResponse, error) {
	if sheet := parseProposalSheet(request.Text); sheet != nil {
		return s.importProposalSheet(sheet)
	}

	sourceType := request.SourceType
	if sourceType == "" {
		sourceType = entity.SourceTypeDiscussion
	}

	prompt := fmt.Sprintf(constant.SegmentationPromptTemplate, request.Text)
	raw, err := s.gemini.GenerateJSON(ctx, prompt, json.RawMessage(constant.SegmentationSchema))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("segmentation failed: %v", err))
	}

	var result dto.SegmentationResult
	if raw != nil {
		if err := json.Unmarshal(raw, &result); err != nil {
			s.logger.Warn("SegmentationService", "Unparseable segmentation result, treating as empty", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if len(result.Segments) == 0 {
		s.logger.Info("SegmentationService", "No segments extracted", map[string]interface{}{
			"text_length": len(request.Text),
		})
		return &dto.SegmentTextResponse{Cards: []entity.Card{}, Groups: []entity.Group{}}, nil
	}

	// One identifier per input, so all cards of one segmentation run can be
	// traced back to it.
	inputId := fmt.Sprintf("input_%d", time.Now().UnixMilli())

	newCards := make([]entity.Card, 0, len(result.Segments))
	x, y := float64(segmentStartX), float64(segmentStartY)
	for i, segment := range result.Segments {
		if strings.TrimSpace(segment.Text) == "" {
			continue
		}
		if x+segmentCardWidth > canvasWidth {
			x = segmentStartX
			y += segmentCardHeight + segmentCardSpacing
		}

		newCards = append(newCards, entity.Card{
			Text:                segment.Text,
			X:                   x,
			Y:                   y,
			Width:               segmentCardWidth,
			Height:              segmentCardHeight,
			SourceType:          sourceType,
			SourceIdentifier:    fmt.Sprintf("%s_seg%d", inputId, i),
			IsChallenge:         segment.Type == constant.SegmentTypeChallenge,
			SolutionPerspective: perspectiveFromSpeaker(segment.Perspective),
			PerspectiveRaw:      segment.Perspective,
			TypeRaw:             segment.Type,
			Reasoning:           segment.Reasoning,
		})
		x += segmentCardWidth + segmentCardSpacing
	}

	var created []entity.Card
	err = s.board.Mutate("segment text into cards", events.EventCardsCreated, func(cards contract.CardRepository, _ contract.GroupRepository) error {
		var addErr error
		created, addErr = cards.AddMultiple(newCards)
		return addErr
	})
	if err != nil {
		return nil, err
	}

	return &dto.SegmentTextResponse{Cards: created, Groups: []entity.Group{}}, nil
}

func (s *segmentationService) GenerateMinutes(ctx context.Context, request *dto.GenerateMinutesRequest) (*dto.MeetingMinutes, error) {
	prompt := fmt.Sprintf(constant.MeetingMinutesPromptTemplate, request.Transcription)
	raw, err := s.gemini.GenerateJSON(ctx, prompt, json.RawMessage(constant.MeetingMinutesSchema))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("minutes generation failed: %v", err))
	}
	if raw == nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "minutes generation returned no usable result")
	}

	var minutes dto.MeetingMinutes
	if err := json.Unmarshal(raw, &minutes); err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "minutes generation returned no usable result")
	}
	return &minutes, nil
}

// importProposalSheet lays each table out as a card grid and wraps it in a
// challenge group. Challenge rows are marked by a first cell containing 課題,
// solution rows by a second cell containing できること; the payload text sits in
// the third cell either way.
func (s *segmentationService) importProposalSheet(sheet *dto.ProposalSheetData) (*dto.SegmentTextResponse, error) {
	var (
		allCards  []entity.Card
		allGroups []entity.Group
	)

	err := s.board.Mutate("import proposal sheet", events.EventCardsCreated, func(cards contract.CardRepository, groups contract.GroupRepository) error {
		y := float64(segmentStartY)

		for tableIndex, table := range sheet.Tables {
			var (
				drafts         []entity.Card
				firstChallenge string
			)

			x := float64(segmentStartX)
			rowBottom := y
			for _, row := range table.Data {
				text, isChallenge, perspective := classifySheetRow(row)
				if text == "" {
					continue
				}
				if isChallenge && firstChallenge == "" {
					firstChallenge = text
				}

				if x+sheetCardWidth > canvasWidth {
					x = segmentStartX
					y += sheetCardHeight + sheetCardSpacing
				}

				drafts = append(drafts, entity.Card{
					Text:                text,
					X:                   x,
					Y:                   y,
					Width:               sheetCardWidth,
					Height:              sheetCardHeight,
					SourceType:          entity.SourceTypeProposalSheet,
					SourceIdentifier:    fmt.Sprintf("table_%d", tableIndex+1),
					IsChallenge:         isChallenge,
					SolutionPerspective: perspective,
				})
				x += sheetCardWidth + sheetCardSpacing
				if y+sheetCardHeight > rowBottom {
					rowBottom = y + sheetCardHeight
				}
			}

			if len(drafts) == 0 {
				continue
			}

			created, err := cards.AddMultiple(drafts)
			if err != nil {
				return err
			}

			gx, gy, gw, gh := boundingBox(created)
			group, err := groups.Add(entity.Group{
				Title:            sheetGroupTitle(tableIndex+1, firstChallenge),
				X:                gx,
				Y:                gy,
				Width:            gw,
				Height:           gh,
				Color:            groupColor(tableIndex),
				IsChallengeGroup: true,
				SourceType:       entity.SourceTypeProposalSheet,
				SourceIdentifier: fmt.Sprintf("table_%d", tableIndex+1),
			})
			if err != nil {
				return err
			}

			for i := range created {
				updated, err := cards.Update(created[i].Id, entity.CardPatch{GroupId: &group.Id})
				if err != nil {
					return err
				}
				if updated != nil {
					created[i] = *updated
				}
			}

			allCards = append(allCards, created...)
			allGroups = append(allGroups, group)

			// Next table starts below this group's frame.
			y = rowBottom + groupPaddingHeight + sheetCardSpacing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if allCards == nil {
		allCards = []entity.Card{}
	}
	if allGroups == nil {
		allGroups = []entity.Group{}
	}
	return &dto.SegmentTextResponse{Cards: allCards, Groups: allGroups}, nil
}

// parseProposalSheet returns the structured document when the input text is a
// proposal-sheet JSON export, nil otherwise.
func parseProposalSheet(text string) *dto.ProposalSheetData {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}

	var sheet dto.ProposalSheetData
	if err := json.Unmarshal([]byte(trimmed), &sheet); err != nil {
		return nil
	}
	if len(sheet.Tables) == 0 {
		return nil
	}
	return &sheet
}

func classifySheetRow(row []string) (text string, isChallenge bool, perspective *string) {
	if len(row) < 3 || strings.TrimSpace(row[2]) == "" {
		return "", false, nil
	}
	text = strings.TrimSpace(row[2])

	if strings.Contains(row[0], constant.SegmentTypeChallenge) {
		return text, true, nil
	}
	if strings.Contains(row[1], "できること") {
		return text, false, matchPerspective(row[1])
	}
	return "", false, nil
}

// matchPerspective maps a free-form label onto one of the canonical solution
// perspectives, nil when none matches.
func matchPerspective(label string) *string {
	for _, p := range []string{entity.PerspectivePersonal, entity.PerspectiveCommunity, entity.PerspectiveGovernment} {
		if strings.Contains(label, p) {
			v := p
			return &v
		}
	}
	return nil
}

// perspectiveFromSpeaker maps the speaker's standpoint onto the solution
// perspective their idea belongs to. Experts and unknown speakers map to
// none.
func perspectiveFromSpeaker(speaker string) *string {
	var p string
	switch speaker {
	case constant.PerspectiveResident:
		p = entity.PerspectivePersonal
	case constant.PerspectiveGovern:
		p = entity.PerspectiveGovernment
	case constant.PerspectiveCommunity:
		p = entity.PerspectiveCommunity
	default:
		return nil
	}
	return &p
}

func sheetGroupTitle(tableNumber int, firstChallenge string) string {
	title := firstChallenge
	runes := []rune(title)
	if len(runes) > 20 {
		title = string(runes[:20]) + "..."
	}
	if title == "" {
		title = "提案シート"
	}
	return fmt.Sprintf("課題%d: %s", tableNumber, title)
}
