package server

import "github.com/matst80/slask-catalog/pkg/types"

type Column struct {
	Field types.SortField `json:"field"`
	Label string          `json:"label"`
	Icon  string          `json:"icon"`
}

type CatalogResponse struct {
	State     types.FilterState   `json:"state"`
	Items     []types.ProductView `json:"items"`
	TotalHits int                 `json:"totalHits"`
	Columns   []Column            `json:"columns"`
	Message   string              `json:"message,omitempty"`
}

func columns(sort types.SortState) []Column {
	ret := make([]Column, 0, len(types.SortFields))
	for _, f := range types.SortFields {
		ret = append(ret, Column{
			Field: f,
			Label: f.Label(),
			Icon:  sort.Icon(f),
		})
	}
	return ret
}

func newCatalogResponse(state types.FilterState, items []types.ProductView) CatalogResponse {
	res := CatalogResponse{
		State:     state,
		Items:     items,
		TotalHits: len(items),
		Columns:   columns(state.Sort()),
	}
	if len(items) == 0 {
		res.Message = types.NoMatchMessage
	}
	return res
}
