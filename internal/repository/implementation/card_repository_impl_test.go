package implementation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/repository/contract"
	"kj-canvas-be/internal/storage"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// countingStore counts writes so batch atomicity can be asserted.
type countingStore struct {
	storage.Store
	writes int
}

func (s *countingStore) Write(key string, data []byte) error {
	s.writes++
	return s.Store.Write(key, data)
}

func newCardRepo() contract.CardRepository {
	return NewCardRepository(storage.NewMemoryStore(), nopLogger{})
}

func TestCardAddAssignsIdentityAndTimestamps(t *testing.T) {
	repo := newCardRepo()

	created, err := repo.Add(entity.Card{Text: "空き店舗が多い", X: 10, Y: 20})
	require.NoError(t, err)

	assert.NotEmpty(t, created.Id)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	all := repo.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, created.Id, all[0].Id)
	assert.Equal(t, "空き店舗が多い", all[0].Text)
}

func TestCardAddMultipleIsOneWrite(t *testing.T) {
	store := &countingStore{Store: storage.NewMemoryStore()}
	repo := NewCardRepository(store, nopLogger{})

	created, err := repo.AddMultiple([]entity.Card{
		{Text: "one"},
		{Text: "two"},
		{Text: "three"},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, 1, store.writes)

	seen := map[string]bool{}
	for _, card := range created {
		assert.NotEmpty(t, card.Id)
		assert.False(t, seen[card.Id], "duplicate id %s", card.Id)
		seen[card.Id] = true
	}
}

func TestCardUpdateMergesPatch(t *testing.T) {
	repo := newCardRepo()
	groupId := "g1"
	created, err := repo.Add(entity.Card{Text: "before", X: 1, GroupId: &groupId})
	require.NoError(t, err)

	text := "after"
	updated, err := repo.Update(created.Id, entity.CardPatch{Text: &text})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "after", updated.Text)
	assert.Equal(t, float64(1), updated.X)
	require.NotNil(t, updated.GroupId)
	assert.Equal(t, "g1", *updated.GroupId)

	// Explicit clear, as opposed to an absent field.
	updated, err = repo.Update(created.Id, entity.CardPatch{ClearGroup: true})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Nil(t, updated.GroupId)
}

func TestCardUpdateUnknownIdReturnsNil(t *testing.T) {
	repo := newCardRepo()

	updated, err := repo.Update("missing", entity.CardPatch{})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestCardDeleteAndDeleteAll(t *testing.T) {
	repo := newCardRepo()
	a, err := repo.Add(entity.Card{Text: "a"})
	require.NoError(t, err)
	_, err = repo.Add(entity.Card{Text: "b"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(a.Id))
	all := repo.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].Text)

	require.NoError(t, repo.DeleteAll())
	assert.Empty(t, repo.GetAll())
}

func TestCardGetAllDegradesCorruptCollection(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Write(storage.KeyCards, []byte("not json")))

	repo := NewCardRepository(store, nopLogger{})
	assert.Empty(t, repo.GetAll())
}

func TestCardReplaceAllKeepsRecordsVerbatim(t *testing.T) {
	repo := newCardRepo()
	_, err := repo.Add(entity.Card{Text: "old"})
	require.NoError(t, err)

	snapshot := []entity.Card{{Id: "fixed-id", Text: "restored"}}
	require.NoError(t, repo.ReplaceAll(snapshot))

	all := repo.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "fixed-id", all[0].Id)
	assert.Equal(t, "restored", all[0].Text)
}

func TestGroupRepositoryCrud(t *testing.T) {
	repo := NewGroupRepository(storage.NewMemoryStore(), nopLogger{})

	created, err := repo.Add(entity.Group{Title: "課題1", IsChallengeGroup: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)

	title := "課題1: 空き店舗"
	updated, err := repo.Update(created.Id, entity.GroupPatch{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, title, updated.Title)
	assert.True(t, updated.IsChallengeGroup)

	missing, err := repo.Update("missing", entity.GroupPatch{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(created.Id))
	assert.Empty(t, repo.GetAll())
}

func TestGroupDeleteLeavesMemberReferencesDangling(t *testing.T) {
	store := storage.NewMemoryStore()
	cards := NewCardRepository(store, nopLogger{})
	groups := NewGroupRepository(store, nopLogger{})

	group, err := groups.Add(entity.Group{Title: "課題1"})
	require.NoError(t, err)
	member, err := cards.Add(entity.Card{Text: "member", GroupId: &group.Id})
	require.NoError(t, err)

	require.NoError(t, groups.Delete(group.Id))

	// No cascade: the card keeps its stale reference. Ungrouping members is
	// the board service's job, not the repository's.
	all := cards.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, member.Id, all[0].Id)
	require.NotNil(t, all[0].GroupId)
	assert.Equal(t, group.Id, *all[0].GroupId)
}

func TestIdentityRepositoryIsStable(t *testing.T) {
	repo := NewIdentityRepository(storage.NewMemoryStore())

	first, err := repo.GetOrCreateUserId()
	require.NoError(t, err)
	assert.Contains(t, first, "user_")

	second, err := repo.GetOrCreateUserId()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, repo.Clear())
	third, err := repo.GetOrCreateUserId()
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestRecordIdsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := newRecordId()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
