package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/matst80/slask-catalog/pkg/types"
)

var icons = map[string]string{
	"sort":      "↕",
	"sort-up":   "↑",
	"sort-down": "↓",
}

func header(sort types.SortState) string {
	cols := make([]string, 0, len(types.SortFields)+1)
	for _, f := range types.SortFields {
		cols = append(cols, fmt.Sprintf("%s %s", f.Label(), icons[sort.Icon(f)]))
	}
	cols = append(cols, "Price")
	return strings.Join(cols, "\t")
}

func ownerMarker(v *types.ProductView) string {
	if v.IsFemaleOwner() {
		return "♀"
	}
	return "♂"
}

// FormatPrice renders minor currency units with two decimals and thousand
// separators.
func FormatPrice(price int) string {
	return humanize.FormatFloat("#,###.##", float64(price)/100)
}

// Table writes the product table, or the no match message when views is empty.
func Table(w io.Writer, views []types.ProductView, sort types.SortState) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, types.NoMatchMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header(sort))
	for i := range views {
		v := &views[i]
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s %s\t%s\n",
			v.Id,
			v.CategoryIcon, v.Name,
			v.CategoryTitle,
			v.UserName, ownerMarker(v),
			FormatPrice(v.Price),
		)
	}
	return tw.Flush()
}

// Summary writes the active filters on one line.
func Summary(w io.Writer, state types.FilterState, total int) error {
	parts := []string{fmt.Sprintf("%d products", total)}
	if q := state.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("query %q", q))
	}
	if state.HasCategoryFilter() {
		ids := state.SelectedCategories()
		s := make([]string, len(ids))
		for i, id := range ids {
			s[i] = fmt.Sprint(id)
		}
		parts = append(parts, "categories "+strings.Join(s, ","))
	}
	if name, ok := state.UserName(); ok {
		parts = append(parts, "user "+name)
	}
	if state.Sort().IsSorted() {
		parts = append(parts, "sorted by "+state.Sort().String())
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, ", "))
	return err
}
