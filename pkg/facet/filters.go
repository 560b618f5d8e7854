package facet

import (
	"github.com/matst80/slask-catalog/pkg/types"
)

// Filter decides whether a view stays in the result.
type Filter interface {
	Match(v *types.ProductView) bool
}

// CategoryFilter keeps views whose category is one of Ids.
type CategoryFilter struct {
	Ids map[types.CategoryId]struct{}
}

func NewCategoryFilter(ids []types.CategoryId) *CategoryFilter {
	m := make(map[types.CategoryId]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &CategoryFilter{Ids: m}
}

func (f *CategoryFilter) Match(v *types.ProductView) bool {
	_, ok := f.Ids[v.CategoryId]
	return ok
}

// UserFilter keeps views owned by exactly Name.
type UserFilter struct {
	Name string
}

func (f *UserFilter) Match(v *types.ProductView) bool {
	return v.UserName == f.Name
}

// FromState returns the facet filters that are active in state. An empty
// category selection or an unset user adds no filter.
func FromState(state types.FilterState) []Filter {
	filters := make([]Filter, 0, 2)
	if state.HasCategoryFilter() {
		filters = append(filters, NewCategoryFilter(state.SelectedCategories()))
	}
	if name, ok := state.UserName(); ok {
		filters = append(filters, &UserFilter{Name: name})
	}
	return filters
}

// MatchAll reports whether v passes every filter.
func MatchAll(filters []Filter, v *types.ProductView) bool {
	for _, f := range filters {
		if !f.Match(v) {
			return false
		}
	}
	return true
}
