package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/entity"
)

func TestGenerateReportBucketsSolutions(t *testing.T) {
	board := newTestBoard(t)

	challenge, err := board.CreateCard(&dto.CreateCardRequest{Text: "空き店舗が多い", IsChallenge: true})
	require.NoError(t, err)
	personal, err := board.CreateCard(&dto.CreateCardRequest{Text: "フリマを開く"})
	require.NoError(t, err)
	government, err := board.CreateCard(&dto.CreateCardRequest{Text: "補助金を周知"})
	require.NoError(t, err)
	untagged, err := board.CreateCard(&dto.CreateCardRequest{Text: "立場不明の提案"})
	require.NoError(t, err)
	loose, err := board.CreateCard(&dto.CreateCardRequest{Text: "未分類の気づき"})
	require.NoError(t, err)

	p := entity.PerspectivePersonal
	_, err = board.UpdateCard(&dto.UpdateCardRequest{Id: personal.Id, SolutionPerspective: &p})
	require.NoError(t, err)
	g := entity.PerspectiveGovernment
	_, err = board.UpdateCard(&dto.UpdateCardRequest{Id: government.Id, SolutionPerspective: &g})
	require.NoError(t, err)

	group, err := board.CreateGroup(&dto.CreateGroupRequest{
		Title:            "課題1: 空き店舗",
		CardIds:          []string{challenge.Id, personal.Id, government.Id, untagged.Id},
		IsChallengeGroup: true,
	})
	require.NoError(t, err)

	svc := NewReportService(board, nopLogger{})
	report := svc.Generate()

	assert.Equal(t, 5, report.Summary.TotalCards)
	assert.Equal(t, 1, report.Summary.TotalGroups)
	assert.Equal(t, 1, report.Summary.ChallengeGroups)
	assert.Equal(t, 1, report.Summary.UngroupedCards)
	assert.False(t, report.GeneratedAt.IsZero())

	require.Len(t, report.Groups, 1)
	entry := report.Groups[0]
	assert.Equal(t, group.Id, entry.Id)
	assert.Equal(t, "challenge", entry.Type)
	assert.Equal(t, 4, entry.CardCount)

	require.Len(t, entry.Challenges, 1)
	assert.Equal(t, "空き店舗が多い", entry.Challenges[0].Text)

	require.Len(t, entry.Solutions.Personal, 1)
	assert.Equal(t, "フリマを開く", entry.Solutions.Personal[0].Text)
	require.Len(t, entry.Solutions.Government, 1)
	assert.Empty(t, entry.Solutions.Community)
	require.Len(t, entry.Solutions.Other, 1)
	assert.Equal(t, "立場不明の提案", entry.Solutions.Other[0].Text)

	require.Len(t, report.UngroupedCards, 1)
	assert.Equal(t, loose.Id, report.UngroupedCards[0].Id)
}

func TestGenerateReportEmptyBoard(t *testing.T) {
	board := newTestBoard(t)
	svc := NewReportService(board, nopLogger{})

	report := svc.Generate()
	assert.Equal(t, 0, report.Summary.TotalCards)
	assert.Empty(t, report.Groups)
	assert.Empty(t, report.UngroupedCards)
}

func TestGenerateMarkdownSections(t *testing.T) {
	board := newTestBoard(t)

	challenge, err := board.CreateCard(&dto.CreateCardRequest{Text: "夜道が暗い", IsChallenge: true})
	require.NoError(t, err)
	_, err = board.CreateGroup(&dto.CreateGroupRequest{
		Title:            "課題1: 夜道の安全",
		CardIds:          []string{challenge.Id},
		IsChallengeGroup: true,
	})
	require.NoError(t, err)

	svc := NewReportService(board, nopLogger{})
	markdown := svc.GenerateMarkdown()

	assert.True(t, strings.HasPrefix(markdown, "# "))
	assert.Contains(t, markdown, "## 課題1: 夜道の安全")
	assert.Contains(t, markdown, "### 課題")
	assert.Contains(t, markdown, "- 夜道が暗い")
	assert.Contains(t, markdown, "- カード数: 1")
}
