package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-catalog/pkg/types"
)

func TestUnknownSessionIsIdentity(t *testing.T) {
	h := NewHolder(NewMemoryStore())
	state, err := h.Current(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, state.IsIdentity())
}

func TestHolderPersistsActions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	h := NewHolder(store)

	_, err := h.Update(ctx, "a", SetQuery("mil"))
	require.NoError(t, err)
	_, err = h.Update(ctx, "a", ToggleCategory(2))
	require.NoError(t, err)
	_, err = h.Update(ctx, "a", SelectUser("Roma"))
	require.NoError(t, err)
	state, err := h.Update(ctx, "a", ToggleSort(types.SortByName))
	require.NoError(t, err)

	current, err := h.Current(ctx, "a")
	require.NoError(t, err)
	assert.True(t, state.Equal(current))
	assert.Equal(t, "mil", current.Query())
	assert.Equal(t, []types.CategoryId{2}, current.SelectedCategories())
	assert.Equal(t, types.SortAscending(types.SortByName), current.Sort())

	current, err = h.Update(ctx, "a", SelectUser(""))
	require.NoError(t, err)
	_, ok := current.UserName()
	assert.False(t, ok)

	current, err = h.Update(ctx, "a", ClearCategories())
	require.NoError(t, err)
	assert.False(t, current.HasCategoryFilter())

	current, err = h.Update(ctx, "a", Reset())
	require.NoError(t, err)
	assert.True(t, current.IsIdentity())
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	h := NewHolder(store)

	_, err := h.Update(ctx, "a", SetQuery("tea"))
	require.NoError(t, err)

	other, err := h.Current(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "", other.Query())
	_, found, err := store.Load(ctx, "b")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConcurrentTogglesAreSerialized(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(NewMemoryStore())

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id types.CategoryId) {
			defer wg.Done()
			_, err := h.Update(ctx, "s", ToggleCategory(id))
			assert.NoError(t, err)
		}(types.CategoryId(i))
	}
	wg.Wait()

	state, err := h.Current(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, state.SelectedCategories(), 50)
}

type failingStore struct {
	*MemoryStore
}

func (f *failingStore) Save(context.Context, string, types.FilterState) error {
	return errors.New("store down")
}

func TestFailedSaveKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore()}
	h := NewHolder(store)

	state, err := h.Update(ctx, "a", SetQuery("x"))
	assert.Error(t, err)
	assert.Equal(t, "", state.Query())
}

func TestEmptyQueryClearsSearch(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(NewMemoryStore())

	state, err := h.Update(ctx, "a", SetQuery("egg"))
	require.NoError(t, err)
	assert.Equal(t, "egg", state.Query())

	state, err = h.Update(ctx, "a", SetQuery(""))
	require.NoError(t, err)
	assert.True(t, state.IsIdentity())
}
