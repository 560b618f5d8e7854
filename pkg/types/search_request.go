package types

import (
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

// CatalogRequest is the stateless form of a FilterState as sent in a query string:
//
//	/api/products?q=mi&c=1&c=3&user=Anna&sort=name&order=desc
type CatalogRequest struct {
	Query      string       `json:"q" schema:"q"`
	Categories []CategoryId `json:"c" schema:"c"`
	User       string       `json:"user" schema:"user"`
	Sort       string       `json:"sort" schema:"sort"`
	Order      string       `json:"order" schema:"order,default:asc"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// ToFilterState validates the request and builds the snapshot it describes.
func (c *CatalogRequest) ToFilterState() (FilterState, error) {
	state := NewFilterState().WithQuery(c.Query).WithCategories(c.Categories...)
	if c.User != "" {
		state = state.WithUser(c.User)
	}
	if c.Sort == "" {
		return state, nil
	}
	field, err := ParseSortField(c.Sort)
	if err != nil {
		return state, err
	}
	order, err := ParseSortOrder(c.Order)
	if err != nil {
		return state, err
	}
	if order == Descending {
		return state.WithSort(SortDescending(field)), nil
	}
	return state.WithSort(SortAscending(field)), nil
}

func DecodeCatalogRequest(query url.Values) (*CatalogRequest, error) {
	cr := &CatalogRequest{
		Categories: []CategoryId{},
		Order:      "asc",
	}
	if err := decoder.Decode(cr, query); err != nil {
		return nil, err
	}
	return cr, nil
}

func GetFilterStateFromRequest(r *http.Request) (FilterState, error) {
	cr, err := DecodeCatalogRequest(r.URL.Query())
	if err != nil {
		return NewFilterState(), err
	}
	return cr.ToFilterState()
}

// DecodeForm decodes url values into any schema tagged struct.
func DecodeForm(dst any, values url.Values) error {
	return decoder.Decode(dst, values)
}
