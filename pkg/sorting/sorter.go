package sorting

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matst80/slask-catalog/pkg/types"
)

// Locale is the collation language used for text columns.
var Locale = language.English

type Sorter interface {
	Name() types.SortField
	Compare(col *collate.Collator, a, b *types.ProductView) int
}

type IdSorter struct{}

func (IdSorter) Name() types.SortField {
	return types.SortById
}

func (IdSorter) Compare(_ *collate.Collator, a, b *types.ProductView) int {
	return cmp.Compare(a.Id, b.Id)
}

// FieldSorter compares the value fn extracts from each view, text with the
// collator and numbers by difference.
type FieldSorter struct {
	name types.SortField
	fn   func(v *types.ProductView) any
}

func NewFieldSorter(name types.SortField, fn func(v *types.ProductView) any) Sorter {
	return &FieldSorter{name: name, fn: fn}
}

func (s *FieldSorter) Name() types.SortField {
	return s.name
}

func (s *FieldSorter) Compare(col *collate.Collator, a, b *types.ProductView) int {
	return compareValues(col, s.fn(a), s.fn(b))
}

func compareValues(col *collate.Collator, a, b any) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return col.CompareString(as, bs)
		}
	}
	return sign(toNumber(a) - toNumber(b))
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case types.ProductId:
		return float64(n)
	case types.CategoryId:
		return float64(n)
	case types.UserId:
		return float64(n)
	}
	return 0
}

func sign(d float64) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

var sorters = map[types.SortField]Sorter{
	types.SortById: IdSorter{},
	types.SortByName: NewFieldSorter(types.SortByName, func(v *types.ProductView) any {
		return v.Name
	}),
	types.SortByCategoryTitle: NewFieldSorter(types.SortByCategoryTitle, func(v *types.ProductView) any {
		return v.CategoryTitle
	}),
	types.SortByUserName: NewFieldSorter(types.SortByUserName, func(v *types.ProductView) any {
		return v.UserName
	}),
}

func GetSorter(field types.SortField) (Sorter, bool) {
	s, ok := sorters[field]
	return s, ok
}

// Sort orders views in place. Views are stable sorted ascending and, for a
// descending state, the whole list is then reversed, so equal keys come out in
// reverse input order. Unsorted states and unknown fields leave views as they are.
func Sort(views []types.ProductView, state types.SortState) {
	field, ok := state.Field()
	if !ok {
		return
	}
	sorter, ok := GetSorter(field)
	if !ok {
		return
	}
	col := collate.New(Locale)
	slices.SortStableFunc(views, func(a, b types.ProductView) int {
		return sorter.Compare(col, &a, &b)
	})
	if state.Order() == types.Descending {
		slices.Reverse(views)
	}
}
