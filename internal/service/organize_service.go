package service

import (
	"context"
	"encoding/json"
	"fmt"
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

// Layout constants for the organized board. Each group's interior is a row
// grid: challenges on the first row, then one row per solution perspective.
const (
	organizeCanvasPadding = 50
	organizeGroupMargin   = 50
	organizeCardMargin    = 15
	organizeCardWidth     = 160
	organizeCardHeight    = 100
	groupHeaderHeight     = 40
	groupInnerPadding     = 20
)

// otherGroupTitle collects cards the model left unclustered.
const otherGroupTitle = "その他"

// IOrganizeService rebuilds the whole board through a two-step LLM pass:
// semantic clustering first, then per-cluster challenge analysis. Existing
// groups are discarded; the previous arrangement stays reachable via undo.
type IOrganizeService interface {
	Organize(ctx context.Context) (*dto.OrganizeResponse, error)
}

type organizeService struct {
	board  IBoardService
	gemini *gemini.Client
	logger logger.ILogger
}

func NewOrganizeService(board IBoardService, geminiClient *gemini.Client, log logger.ILogger) IOrganizeService {
	return &organizeService{
		board:  board,
		gemini: geminiClient,
		logger: log,
	}
}

// memberPlan is one card's place in the organized layout.
type memberPlan struct {
	card        entity.Card
	isChallenge bool
	perspective *string
}

// groupPlan is a fully analyzed cluster before layout and persistence.
type groupPlan struct {
	title            string
	members          []memberPlan
	isChallengeGroup bool

	x, y, width, height float64
}

func (s *organizeService) Organize(ctx context.Context) (*dto.OrganizeResponse, error) {
	board := s.board.Board()
	if len(board.Cards) < 2 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "at least 2 cards are required to organize")
	}

	grouping, err := s.cluster(ctx, board.Cards)
	if err != nil {
		return nil, err
	}

	byId := make(map[string]entity.Card, len(board.Cards))
	for _, card := range board.Cards {
		byId[card.Id] = card
	}

	plans := s.analyzeClusters(ctx, grouping, byId)

	// Everything the model did not place lands in a catch-all group. That
	// covers ungroupedIds, singleton clusters, and any id the model dropped.
	claimed := make(map[string]bool)
	for _, plan := range plans {
		for _, m := range plan.members {
			claimed[m.card.Id] = true
		}
	}
	var other groupPlan
	other.title = otherGroupTitle
	for _, card := range board.Cards {
		if !claimed[card.Id] {
			other.members = append(other.members, memberPlan{card: card})
		}
	}
	if len(other.members) > 0 {
		plans = append(plans, other)
	}

	layoutGroups(plans)

	var (
		resultCards  []entity.Card
		resultGroups []entity.Group
	)
	err = s.board.Mutate("auto-organize board", events.EventBoardOrganized, func(cards contract.CardRepository, groups contract.GroupRepository) error {
		if err := groups.DeleteAll(); err != nil {
			return err
		}

		now := time.Now()
		updated := make(map[string]entity.Card)

		for i, plan := range plans {
			group, err := groups.Add(entity.Group{
				Title:            plan.title,
				X:                plan.x,
				Y:                plan.y,
				Width:            plan.width,
				Height:           plan.height,
				Color:            groupColor(i),
				IsChallengeGroup: plan.isChallengeGroup,
				SourceType:       entity.SourceTypeDiscussion,
			})
			if err != nil {
				return err
			}
			resultGroups = append(resultGroups, group)

			for _, m := range placeMembers(plan, group.Id) {
				m.UpdatedAt = now
				updated[m.Id] = m
			}
		}

		newCards := make([]entity.Card, 0, len(board.Cards))
		for _, card := range cards.GetAll() {
			if placed, ok := updated[card.Id]; ok {
				newCards = append(newCards, placed)
			} else {
				newCards = append(newCards, card)
			}
		}
		if err := cards.ReplaceAll(newCards); err != nil {
			return err
		}
		resultCards = newCards
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.OrganizeResponse{Cards: resultCards, Groups: resultGroups}, nil
}

func (s *organizeService) cluster(ctx context.Context, cards []entity.Card) (*dto.GroupingResult, error) {
	prompt := fmt.Sprintf(constant.GroupingPromptTemplate, serializeCardList(cards))
	raw, err := s.gemini.GenerateJSON(ctx, prompt, json.RawMessage(constant.GroupingSchema))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("clustering failed: %v", err))
	}
	if raw == nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "clustering returned no usable result")
	}

	var grouping dto.GroupingResult
	if err := json.Unmarshal(raw, &grouping); err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "clustering returned no usable result")
	}
	return &grouping, nil
}

// analyzeClusters runs the per-cluster analysis step. A failed analysis keeps
// the provisional theme name and leaves the member cards untagged rather
// than failing the whole organize. Singleton clusters are dropped here and
// picked up by the catch-all group.
func (s *organizeService) analyzeClusters(ctx context.Context, grouping *dto.GroupingResult, byId map[string]entity.Card) []groupPlan {
	var plans []groupPlan

	for _, cluster := range grouping.Groups {
		members := make([]entity.Card, 0, len(cluster.CardIds))
		for _, id := range cluster.CardIds {
			if card, ok := byId[id]; ok {
				members = append(members, card)
			}
		}
		if len(members) < 2 {
			continue
		}

		plan := groupPlan{
			title:            cluster.GroupName,
			isChallengeGroup: true,
		}

		analysis := s.analyzeOne(ctx, cluster.GroupName, members)
		details := make(map[string]dto.MemberCardDetail)
		if analysis != nil {
			if analysis.GroupName != "" {
				plan.title = analysis.GroupName
			}
			for _, d := range analysis.MemberCardDetails {
				details[d.CardId] = d
			}
		}

		for _, card := range members {
			m := memberPlan{card: card}
			if d, ok := details[card.Id]; ok {
				m.isChallenge = d.IsChallenge
				if !d.IsChallenge {
					m.perspective = d.SolutionPerspective
				}
			}
			plan.members = append(plan.members, m)
		}
		plans = append(plans, plan)
	}

	return plans
}

func (s *organizeService) analyzeOne(ctx context.Context, theme string, members []entity.Card) *dto.GroupAnalysisResult {
	prompt := fmt.Sprintf(constant.GroupAnalysisPromptTemplate, theme, serializeCardList(members))
	raw, err := s.gemini.GenerateJSON(ctx, prompt, json.RawMessage(constant.GroupAnalysisSchema))
	if err != nil || raw == nil {
		s.logger.Warn("OrganizeService", "Cluster analysis failed, keeping provisional theme", map[string]interface{}{
			"theme": theme,
		})
		return nil
	}

	var analysis dto.GroupAnalysisResult
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil
	}
	return &analysis
}

func serializeCardList(cards []entity.Card) string {
	type item struct {
		Id   string `json:"id"`
		Text string `json:"text"`
	}
	items := make([]item, len(cards))
	for i, c := range cards {
		items[i] = item{Id: c.Id, Text: c.Text}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// memberRows partitions a group's members into layout rows: challenges
// first, then one row per solution perspective, with untagged solutions
// last.
func memberRows(plan groupPlan) [][]memberPlan {
	var challenges, personal, community, government, untagged []memberPlan
	for _, m := range plan.members {
		switch {
		case m.isChallenge:
			challenges = append(challenges, m)
		case m.perspective != nil && *m.perspective == entity.PerspectivePersonal:
			personal = append(personal, m)
		case m.perspective != nil && *m.perspective == entity.PerspectiveCommunity:
			community = append(community, m)
		case m.perspective != nil && *m.perspective == entity.PerspectiveGovernment:
			government = append(government, m)
		default:
			untagged = append(untagged, m)
		}
	}

	var rows [][]memberPlan
	for _, row := range [][]memberPlan{challenges, personal, community, government, untagged} {
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// layoutGroups sizes each group from its rows and flows the groups across
// the canvas, wrapping into a new band when a group would overflow.
func layoutGroups(plans []groupPlan) {
	x := float64(organizeCanvasPadding)
	y := float64(organizeCanvasPadding)
	bandHeight := 0.0

	for i := range plans {
		rows := memberRows(plans[i])

		maxCols := 0
		for _, row := range rows {
			if len(row) > maxCols {
				maxCols = len(row)
			}
		}
		if maxCols == 0 {
			maxCols = 1
		}

		width := float64(maxCols)*(organizeCardWidth+organizeCardMargin) - organizeCardMargin + 2*groupInnerPadding
		height := groupHeaderHeight + float64(len(rows))*(organizeCardHeight+organizeCardMargin) - organizeCardMargin + 2*groupInnerPadding

		if x+width > canvasWidth && x > organizeCanvasPadding {
			x = organizeCanvasPadding
			y += bandHeight + organizeGroupMargin
			bandHeight = 0
		}

		plans[i].x = x
		plans[i].y = y
		plans[i].width = width
		plans[i].height = height

		x += width + organizeGroupMargin
		if height > bandHeight {
			bandHeight = height
		}
	}
}

// placeMembers positions a group's cards inside its frame and stamps the
// grouping fields onto them.
func placeMembers(plan groupPlan, groupId string) []entity.Card {
	var placed []entity.Card

	for rowIndex, row := range memberRows(plan) {
		for colIndex, m := range row {
			card := m.card.Clone()
			card.GroupId = &groupId
			card.IsChallenge = m.isChallenge
			if m.perspective != nil {
				v := *m.perspective
				card.SolutionPerspective = &v
			} else {
				card.SolutionPerspective = nil
			}
			card.X = plan.x + groupInnerPadding + float64(colIndex)*(organizeCardWidth+organizeCardMargin)
			card.Y = plan.y + groupHeaderHeight + groupInnerPadding + float64(rowIndex)*(organizeCardHeight+organizeCardMargin)
			card.Width = organizeCardWidth
			card.Height = organizeCardHeight
			placed = append(placed, card)
		}
	}
	return placed
}
