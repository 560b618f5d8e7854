package index

import (
	"github.com/matst80/slask-catalog/pkg/facet"
	"github.com/matst80/slask-catalog/pkg/search"
	"github.com/matst80/slask-catalog/pkg/sorting"
	"github.com/matst80/slask-catalog/pkg/types"
)

// Apply returns the views that pass the state's filters, in input order, sorted
// when the state has a sort column. The input slice is never modified and the
// result is a new slice, empty when nothing matches.
func Apply(views []types.ProductView, state types.FilterState) []types.ProductView {
	query := search.NewQueryMatcher(state.Query())
	filters := facet.FromState(state)

	result := make([]types.ProductView, 0, len(views))
	if query.IsEmpty() && len(filters) == 0 {
		result = append(result, views...)
		sorting.Sort(result, state.Sort())
		return result
	}
	for i := range views {
		v := &views[i]
		if !query.Matches(v.Name) {
			continue
		}
		if !facet.MatchAll(filters, v) {
			continue
		}
		result = append(result, *v)
	}

	sorting.Sort(result, state.Sort())
	return result
}
