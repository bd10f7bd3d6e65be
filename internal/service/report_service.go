package service

import (
	"fmt"
	"strings"
	"time"

	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/pkg/logger"
)

// IReportService summarizes the board into a structured report: challenges
// per group with their solutions bucketed by who can act on them.
type IReportService interface {
	Generate() *dto.Report
	GenerateMarkdown() string
}

type reportService struct {
	board  IBoardService
	logger logger.ILogger
}

func NewReportService(board IBoardService, log logger.ILogger) IReportService {
	return &reportService{
		board:  board,
		logger: log,
	}
}

func (s *reportService) Generate() *dto.Report {
	board := s.board.Board()

	byGroup := make(map[string][]entity.Card)
	var ungrouped []entity.Card
	for _, card := range board.Cards {
		if card.GroupId == nil {
			ungrouped = append(ungrouped, card)
			continue
		}
		byGroup[*card.GroupId] = append(byGroup[*card.GroupId], card)
	}

	report := &dto.Report{
		GeneratedAt:    time.Now(),
		Groups:         make([]dto.ReportGroup, 0, len(board.Groups)),
		UngroupedCards: make([]dto.ReportUngroupedCard, 0, len(ungrouped)),
	}

	challengeGroups := 0
	for _, group := range board.Groups {
		members := byGroup[group.Id]

		entry := dto.ReportGroup{
			Id:         group.Id,
			Title:      group.Title,
			Type:       "other",
			CardCount:  len(members),
			Challenges: []dto.ReportCard{},
			Solutions: dto.ReportSolutions{
				Personal:   []dto.ReportCard{},
				Community:  []dto.ReportCard{},
				Government: []dto.ReportCard{},
				Other:      []dto.ReportCard{},
			},
		}
		if group.IsChallengeGroup {
			entry.Type = "challenge"
			challengeGroups++
		}

		for _, card := range members {
			item := dto.ReportCard{Id: card.Id, Text: card.Text, SourceType: card.SourceType}
			switch {
			case card.IsChallenge:
				entry.Challenges = append(entry.Challenges, item)
			case card.SolutionPerspective != nil && *card.SolutionPerspective == entity.PerspectivePersonal:
				entry.Solutions.Personal = append(entry.Solutions.Personal, item)
			case card.SolutionPerspective != nil && *card.SolutionPerspective == entity.PerspectiveCommunity:
				entry.Solutions.Community = append(entry.Solutions.Community, item)
			case card.SolutionPerspective != nil && *card.SolutionPerspective == entity.PerspectiveGovernment:
				entry.Solutions.Government = append(entry.Solutions.Government, item)
			default:
				entry.Solutions.Other = append(entry.Solutions.Other, item)
			}
		}

		report.Groups = append(report.Groups, entry)
	}

	for _, card := range ungrouped {
		report.UngroupedCards = append(report.UngroupedCards, dto.ReportUngroupedCard{
			Id:                  card.Id,
			Text:                card.Text,
			SourceType:          card.SourceType,
			IsChallenge:         card.IsChallenge,
			SolutionPerspective: card.SolutionPerspective,
		})
	}

	report.Summary = dto.ReportSummary{
		TotalCards:      len(board.Cards),
		TotalGroups:     len(board.Groups),
		ChallengeGroups: challengeGroups,
		UngroupedCards:  len(ungrouped),
	}
	return report
}

// GenerateMarkdown renders the report as a shareable document.
func (s *reportService) GenerateMarkdown() string {
	report := s.Generate()

	var b strings.Builder
	b.WriteString("# 自分ごと化会議 まとめレポート\n\n")
	b.WriteString(fmt.Sprintf("作成日時: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04")))
	b.WriteString("## サマリー\n\n")
	b.WriteString(fmt.Sprintf("- カード数: %d\n", report.Summary.TotalCards))
	b.WriteString(fmt.Sprintf("- グループ数: %d\n", report.Summary.TotalGroups))
	b.WriteString(fmt.Sprintf("- 課題グループ数: %d\n", report.Summary.ChallengeGroups))
	b.WriteString(fmt.Sprintf("- 未分類カード数: %d\n\n", report.Summary.UngroupedCards))

	for _, group := range report.Groups {
		b.WriteString(fmt.Sprintf("## %s\n\n", group.Title))

		if len(group.Challenges) > 0 {
			b.WriteString("### 課題\n\n")
			for _, card := range group.Challenges {
				b.WriteString(fmt.Sprintf("- %s\n", card.Text))
			}
			b.WriteString("\n")
		}

		writeSolutionSection(&b, entity.PerspectivePersonal, group.Solutions.Personal)
		writeSolutionSection(&b, entity.PerspectiveCommunity, group.Solutions.Community)
		writeSolutionSection(&b, entity.PerspectiveGovernment, group.Solutions.Government)
		writeSolutionSection(&b, "その他", group.Solutions.Other)
	}

	if len(report.UngroupedCards) > 0 {
		b.WriteString("## 未分類のカード\n\n")
		for _, card := range report.UngroupedCards {
			b.WriteString(fmt.Sprintf("- %s\n", card.Text))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeSolutionSection(b *strings.Builder, heading string, cards []dto.ReportCard) {
	if len(cards) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("### %s\n\n", heading))
	for _, card := range cards {
		b.WriteString(fmt.Sprintf("- %s\n", card.Text))
	}
	b.WriteString("\n")
}
