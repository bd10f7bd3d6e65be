package service

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/history"
	"kj-canvas-be/internal/repository/implementation"
	"kj-canvas-be/internal/storage"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestBoard(t *testing.T) IBoardService {
	t.Helper()
	store := storage.NewMemoryStore()
	cardRepo := implementation.NewCardRepository(store, nopLogger{})
	groupRepo := implementation.NewGroupRepository(store, nopLogger{})
	identityRepo := implementation.NewIdentityRepository(store)
	publisher := NewPublisherService("BOARD_CHANGED_TEST", nopLogger{})
	t.Cleanup(func() { publisher.Close() })

	return NewBoardService(cardRepo, groupRepo, identityRepo, history.NewManager(), publisher, nopLogger{})
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	return fiberErr.Code
}

func TestCreateCardDefaults(t *testing.T) {
	board := newTestBoard(t)

	card, err := board.CreateCard(&dto.CreateCardRequest{Text: "空き店舗が多い", X: 10, Y: 20})
	require.NoError(t, err)

	assert.NotEmpty(t, card.Id)
	assert.Equal(t, float64(defaultCardWidth), card.Width)
	assert.Equal(t, float64(defaultCardHeight), card.Height)
	assert.Equal(t, entity.SourceTypeDiscussion, card.SourceType)

	assert.Len(t, board.Board().Cards, 1)
}

func TestUpdateCardUnknownIdIs404(t *testing.T) {
	board := newTestBoard(t)

	text := "x"
	_, err := board.UpdateCard(&dto.UpdateCardRequest{Id: "missing", Text: &text})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestCreateGroupFramesMembers(t *testing.T) {
	board := newTestBoard(t)

	a, err := board.CreateCard(&dto.CreateCardRequest{Text: "a", X: 100, Y: 100})
	require.NoError(t, err)
	b, err := board.CreateCard(&dto.CreateCardRequest{Text: "b", X: 400, Y: 300})
	require.NoError(t, err)

	group, err := board.CreateGroup(&dto.CreateGroupRequest{
		Title:   "課題1",
		CardIds: []string{a.Id, b.Id},
	})
	require.NoError(t, err)

	// Frame is the member bounding box plus padding.
	assert.Equal(t, float64(100-groupPaddingLeft), group.X)
	assert.Equal(t, float64(100-groupPaddingTop), group.Y)
	assert.Equal(t, float64(400+defaultCardWidth-100+groupPaddingWidth), group.Width)
	assert.Equal(t, float64(300+defaultCardHeight-100+groupPaddingHeight), group.Height)
	assert.NotEmpty(t, group.Color)

	for _, card := range board.Board().Cards {
		require.NotNil(t, card.GroupId)
		assert.Equal(t, group.Id, *card.GroupId)
	}
}

func TestCreateGroupWithoutExistingCardsIs400(t *testing.T) {
	board := newTestBoard(t)

	_, err := board.CreateGroup(&dto.CreateGroupRequest{Title: "g", CardIds: []string{"nope"}})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestDeleteGroupUngroupsMembersFirst(t *testing.T) {
	board := newTestBoard(t)

	a, err := board.CreateCard(&dto.CreateCardRequest{Text: "a", X: 0, Y: 0})
	require.NoError(t, err)
	group, err := board.CreateGroup(&dto.CreateGroupRequest{Title: "g", CardIds: []string{a.Id}})
	require.NoError(t, err)

	perspective := entity.PerspectivePersonal
	isChallenge := true
	_, err = board.UpdateCard(&dto.UpdateCardRequest{
		Id:                  a.Id,
		IsChallenge:         &isChallenge,
		SolutionPerspective: &perspective,
	})
	require.NoError(t, err)

	require.NoError(t, board.DeleteGroup(group.Id))

	state := board.Board()
	assert.Empty(t, state.Groups)
	require.Len(t, state.Cards, 1)
	assert.Nil(t, state.Cards[0].GroupId)
	assert.False(t, state.Cards[0].IsChallenge)
	assert.Nil(t, state.Cards[0].SolutionPerspective)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	board := newTestBoard(t)

	_, err := board.CreateCard(&dto.CreateCardRequest{Text: "only card"})
	require.NoError(t, err)

	status := board.HistoryStatus()
	assert.True(t, status.CanUndo)
	assert.False(t, status.CanRedo)

	state, err := board.Undo()
	require.NoError(t, err)
	assert.Empty(t, state.Cards)
	assert.Empty(t, board.Board().Cards)

	state, err = board.Redo()
	require.NoError(t, err)
	require.Len(t, state.Cards, 1)
	assert.Equal(t, "only card", state.Cards[0].Text)
	assert.Len(t, board.Board().Cards, 1)
}

func TestUndoAtBottomIsANoop(t *testing.T) {
	board := newTestBoard(t)

	state, err := board.Undo()
	require.NoError(t, err)
	assert.Empty(t, state.Cards)
	assert.False(t, board.HistoryStatus().CanUndo)
}

func TestUndoRestoresRecordIds(t *testing.T) {
	board := newTestBoard(t)

	card, err := board.CreateCard(&dto.CreateCardRequest{Text: "keep my id"})
	require.NoError(t, err)

	text := "edited"
	_, err = board.UpdateCard(&dto.UpdateCardRequest{Id: card.Id, Text: &text})
	require.NoError(t, err)

	state, err := board.Undo()
	require.NoError(t, err)
	require.Len(t, state.Cards, 1)
	assert.Equal(t, card.Id, state.Cards[0].Id)
	assert.Equal(t, "keep my id", state.Cards[0].Text)
}

func TestExportImportClear(t *testing.T) {
	board := newTestBoard(t)

	_, err := board.CreateCard(&dto.CreateCardRequest{Text: "a"})
	require.NoError(t, err)

	exported := board.Export()
	assert.Equal(t, "1.0", exported.Version)
	require.Len(t, exported.Cards, 1)

	require.NoError(t, board.ClearAll())
	assert.Empty(t, board.Board().Cards)

	state, err := board.Import(&dto.ImportRequest{Cards: exported.Cards, Groups: exported.Groups})
	require.NoError(t, err)
	require.Len(t, state.Cards, 1)
	assert.Equal(t, exported.Cards[0].Id, state.Cards[0].Id)
}
