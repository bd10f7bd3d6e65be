package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/entity"
	"kj-canvas-be/pkg/gemini"
)

func TestOrganizeRequiresTwoCards(t *testing.T) {
	server := geminiNeverCalled(t)
	board := newTestBoard(t)
	svc := NewOrganizeService(board, gemini.NewClient("k", "m", server.URL, 5*time.Second), nopLogger{})

	_, err := svc.Organize(context.Background())
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestOrganizeRebuildsBoard(t *testing.T) {
	board := newTestBoard(t)

	a, err := board.CreateCard(&dto.CreateCardRequest{Text: "夜道が暗い"})
	require.NoError(t, err)
	b, err := board.CreateCard(&dto.CreateCardRequest{Text: "街灯を増やす"})
	require.NoError(t, err)
	c, err := board.CreateCard(&dto.CreateCardRequest{Text: "全く関係ない話"})
	require.NoError(t, err)

	// The organize pass must discard pre-existing groups.
	stale, err := board.CreateGroup(&dto.CreateGroupRequest{Title: "stale", CardIds: []string{c.Id}})
	require.NoError(t, err)

	grouping := fmt.Sprintf(`{
		"groups": [{"groupName": "夜道の安全", "cardIds": ["%s", "%s"]}],
		"ungroupedIds": ["%s"]
	}`, a.Id, b.Id, c.Id)
	analysis := fmt.Sprintf(`{
		"groupName": "夜道が暗く危険",
		"memberCardDetails": [
			{"cardId": "%s", "isChallenge": true},
			{"cardId": "%s", "isChallenge": false, "solutionPerspective": "行政ができること"}
		]
	}`, a.Id, b.Id)

	server := geminiResponding(t, grouping, analysis)
	svc := NewOrganizeService(board, gemini.NewClient("k", "m", server.URL, 5*time.Second), nopLogger{})

	res, err := svc.Organize(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Groups, 2)
	analyzed := res.Groups[0]
	assert.Equal(t, "夜道が暗く危険", analyzed.Title)
	assert.True(t, analyzed.IsChallengeGroup)
	assert.NotEqual(t, stale.Id, analyzed.Id)

	catchAll := res.Groups[1]
	assert.Equal(t, otherGroupTitle, catchAll.Title)
	assert.False(t, catchAll.IsChallengeGroup)

	byId := make(map[string]entity.Card)
	for _, card := range res.Cards {
		byId[card.Id] = card
	}

	challenge := byId[a.Id]
	require.NotNil(t, challenge.GroupId)
	assert.Equal(t, analyzed.Id, *challenge.GroupId)
	assert.True(t, challenge.IsChallenge)
	assert.Equal(t, float64(organizeCardWidth), challenge.Width)
	assert.Equal(t, float64(organizeCardHeight), challenge.Height)

	solution := byId[b.Id]
	require.NotNil(t, solution.SolutionPerspective)
	assert.Equal(t, entity.PerspectiveGovernment, *solution.SolutionPerspective)
	// Challenge row sits above the solution row.
	assert.Less(t, challenge.Y, solution.Y)

	loose := byId[c.Id]
	require.NotNil(t, loose.GroupId)
	assert.Equal(t, catchAll.Id, *loose.GroupId)

	state := board.Board()
	assert.Len(t, state.Groups, 2)

	// The pre-organize arrangement is one undo away.
	restored, err := board.Undo()
	require.NoError(t, err)
	require.Len(t, restored.Groups, 1)
	assert.Equal(t, "stale", restored.Groups[0].Title)
}
