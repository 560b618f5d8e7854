package types

import (
	"fmt"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
)

type SortField string

const (
	SortById            SortField = "id"
	SortByName          SortField = "name"
	SortByCategoryTitle SortField = "categoryTitle"
	SortByUserName      SortField = "userName"
)

// SortFields lists the sortable columns in table order.
var SortFields = []SortField{SortById, SortByName, SortByCategoryTitle, SortByUserName}

func (f SortField) IsValid() bool {
	switch f {
	case SortById, SortByName, SortByCategoryTitle, SortByUserName:
		return true
	}
	return false
}

// Label is the column header shown for the field.
func (f SortField) Label() string {
	switch f {
	case SortById:
		return "ID"
	case SortByName:
		return "Product"
	case SortByCategoryTitle:
		return "Category"
	case SortByUserName:
		return "User"
	}
	return string(f)
}

func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

type SortOrder uint8

const (
	Unsorted SortOrder = iota
	Ascending
	Descending
)

func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return ""
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return Unsorted, fmt.Errorf("unknown sort order %q", s)
}

// SortState is either unsorted or a direction bound to a column. The zero
// value is unsorted; a field only exists together with a direction.
type SortState struct {
	order SortOrder
	field SortField
}

func NoSort() SortState {
	return SortState{}
}

func SortAscending(field SortField) SortState {
	return SortState{order: Ascending, field: field}
}

func SortDescending(field SortField) SortState {
	return SortState{order: Descending, field: field}
}

func (s SortState) Order() SortOrder {
	return s.order
}

// Field returns the sorted column, ok is false when unsorted.
func (s SortState) Field() (SortField, bool) {
	if s.order == Unsorted {
		return "", false
	}
	return s.field, true
}

func (s SortState) IsSorted() bool {
	return s.order != Unsorted
}

// Toggle is a header click on field:
// unsorted -> asc, asc -> desc, desc -> unsorted, other column -> asc.
func (s SortState) Toggle(field SortField) SortState {
	if s.order == Unsorted || s.field != field {
		return SortAscending(field)
	}
	if s.order == Ascending {
		return SortDescending(field)
	}
	return NoSort()
}

// Icon is the header icon state for the column.
func (s SortState) Icon(field SortField) string {
	if s.order == Unsorted || s.field != field {
		return "sort"
	}
	if s.order == Descending {
		return "sort-down"
	}
	return "sort-up"
}

func (s SortState) String() string {
	if s.order == Unsorted {
		return "none"
	}
	return fmt.Sprintf("%s %s", s.field, s.order)
}

type jsonSort struct {
	Field SortField `json:"field"`
	Order string    `json:"order"`
}

func (s SortState) MarshalJSON() ([]byte, error) {
	if s.order == Unsorted {
		return []byte("null"), nil
	}
	return jsoncompat.Marshal(jsonSort{Field: s.field, Order: s.order.String()})
}

func (s *SortState) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NoSort()
		return nil
	}
	var raw jsonSort
	if err := jsoncompat.Unmarshal(data, &raw); err != nil {
		return err
	}
	field, err := ParseSortField(string(raw.Field))
	if err != nil {
		return err
	}
	order, err := ParseSortOrder(raw.Order)
	if err != nil {
		return err
	}
	*s = SortState{order: order, field: field}
	return nil
}
