package session

import (
	"context"
	"sync"

	"github.com/matst80/slask-catalog/pkg/types"
)

// Action turns the current snapshot into the next one.
type Action func(types.FilterState) types.FilterState

// Holder serializes state changes so each user action replaces the session
// snapshot in one step.
type Holder struct {
	mu    sync.Mutex
	store Store
}

func NewHolder(store Store) *Holder {
	return &Holder{store: store}
}

// Current returns the session state, a fresh state for unknown sessions.
func (h *Holder) Current(ctx context.Context, id string) (types.FilterState, error) {
	state, _, err := h.store.Load(ctx, id)
	return state, err
}

func (h *Holder) Update(ctx context.Context, id string, action Action) (types.FilterState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	current, _, err := h.store.Load(ctx, id)
	if err != nil {
		return current, err
	}
	next := action(current)
	if err := h.store.Save(ctx, id, next); err != nil {
		return current, err
	}
	return next, nil
}

// SetQuery replaces the search text, an empty query clears it.
func SetQuery(query string) Action {
	return func(s types.FilterState) types.FilterState {
		if query == "" {
			return s.ClearQuery()
		}
		return s.WithQuery(query)
	}
}

func ToggleCategory(id types.CategoryId) Action {
	return func(s types.FilterState) types.FilterState {
		return s.ToggleCategory(id)
	}
}

func ClearCategories() Action {
	return types.FilterState.ClearCategories
}

// SelectUser sets the owner filter, an empty name clears it.
func SelectUser(name string) Action {
	return func(s types.FilterState) types.FilterState {
		if name == "" {
			return s.ClearUser()
		}
		return s.WithUser(name)
	}
}

func ToggleSort(field types.SortField) Action {
	return func(s types.FilterState) types.FilterState {
		return s.ToggleSort(field)
	}
}

func Reset() Action {
	return types.FilterState.Reset
}
