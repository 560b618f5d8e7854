package types

import (
	"slices"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
)

// FilterState is an immutable snapshot of what the user has selected. Every
// change returns a new snapshot; the receiver is never modified.
type FilterState struct {
	query      string
	categories []CategoryId
	userName   *string
	sort       SortState
}

func NewFilterState() FilterState {
	return FilterState{}
}

func (f FilterState) Query() string {
	return f.query
}

// SelectedCategories returns a copy of the selected category ids in ascending order.
func (f FilterState) SelectedCategories() []CategoryId {
	return slices.Clone(f.categories)
}

func (f FilterState) HasCategoryFilter() bool {
	return len(f.categories) > 0
}

func (f FilterState) HasCategory(id CategoryId) bool {
	_, found := slices.BinarySearch(f.categories, id)
	return found
}

// UserName returns the owner name filter, ok is false when no user is selected.
func (f FilterState) UserName() (string, bool) {
	if f.userName == nil {
		return "", false
	}
	return *f.userName, true
}

func (f FilterState) Sort() SortState {
	return f.sort
}

// IsIdentity reports whether the state lets every view through unsorted.
func (f FilterState) IsIdentity() bool {
	return f.query == "" && len(f.categories) == 0 && f.userName == nil && !f.sort.IsSorted()
}

func (f FilterState) WithQuery(query string) FilterState {
	f.query = query
	return f
}

func (f FilterState) ClearQuery() FilterState {
	return f.WithQuery("")
}

func (f FilterState) WithCategories(ids ...CategoryId) FilterState {
	next := make([]CategoryId, 0, len(ids))
	for _, id := range ids {
		if idx, found := slices.BinarySearch(next, id); !found {
			next = slices.Insert(next, idx, id)
		}
	}
	if len(next) == 0 {
		next = nil
	}
	f.categories = next
	return f
}

// ToggleCategory selects id when it is not selected and deselects it otherwise.
func (f FilterState) ToggleCategory(id CategoryId) FilterState {
	idx, found := slices.BinarySearch(f.categories, id)
	if found {
		next := slices.Delete(slices.Clone(f.categories), idx, idx+1)
		if len(next) == 0 {
			next = nil
		}
		f.categories = next
		return f
	}
	f.categories = slices.Insert(slices.Clone(f.categories), idx, id)
	return f
}

func (f FilterState) ClearCategories() FilterState {
	f.categories = nil
	return f
}

func (f FilterState) WithUser(name string) FilterState {
	f.userName = &name
	return f
}

func (f FilterState) ClearUser() FilterState {
	f.userName = nil
	return f
}

func (f FilterState) WithSort(sort SortState) FilterState {
	f.sort = sort
	return f
}

// ToggleSort applies a header click on field.
func (f FilterState) ToggleSort(field SortField) FilterState {
	f.sort = f.sort.Toggle(field)
	return f
}

// Reset clears query, categories, user and sort.
func (f FilterState) Reset() FilterState {
	return FilterState{}
}

func (f FilterState) Equal(other FilterState) bool {
	if f.query != other.query || f.sort != other.sort || !slices.Equal(f.categories, other.categories) {
		return false
	}
	a, aok := f.UserName()
	b, bok := other.UserName()
	return aok == bok && a == b
}

type jsonFilterState struct {
	Query      string       `json:"query"`
	Categories []CategoryId `json:"categories"`
	UserName   *string      `json:"userName"`
	Sort       SortState    `json:"sort"`
}

func (f FilterState) MarshalJSON() ([]byte, error) {
	categories := f.categories
	if categories == nil {
		categories = []CategoryId{}
	}
	return jsoncompat.Marshal(jsonFilterState{
		Query:      f.query,
		Categories: categories,
		UserName:   f.userName,
		Sort:       f.sort,
	})
}

func (f *FilterState) UnmarshalJSON(data []byte) error {
	var raw jsonFilterState
	if err := jsoncompat.Unmarshal(data, &raw); err != nil {
		return err
	}
	next := NewFilterState().WithQuery(raw.Query).WithCategories(raw.Categories...).WithSort(raw.Sort)
	if raw.UserName != nil {
		next = next.WithUser(*raw.UserName)
	}
	*f = next
	return nil
}
