package catalog

import (
	"errors"
	"fmt"

	"github.com/matst80/slask-catalog/pkg/types"
)

var (
	ErrUnresolvedCategory = errors.New("product references unknown category")
	ErrUnresolvedOwner    = errors.New("category references unknown owner")
)

// Join resolves every product's category and the category's owner into a
// ProductView, keeping product order. Lookups use the first record with a
// given id. A reference that does not resolve is returned as an error and no
// views are produced.
func Join(ds Dataset) ([]types.ProductView, error) {
	categories := ds.categoryLookup()
	users := ds.userLookup()

	views := make([]types.ProductView, 0, len(ds.Products))
	for _, p := range ds.Products {
		category, ok := categories[p.CategoryId]
		if !ok {
			return nil, fmt.Errorf("%w: product %d, category %d", ErrUnresolvedCategory, p.Id, p.CategoryId)
		}
		owner, ok := users[category.OwnerId]
		if !ok {
			return nil, fmt.Errorf("%w: category %d, user %d", ErrUnresolvedOwner, category.Id, category.OwnerId)
		}
		views = append(views, types.ProductView{
			Product:       p,
			CategoryTitle: category.Title,
			CategoryIcon:  category.Icon,
			UserName:      owner.Name,
			UserSex:       owner.Sex,
		})
	}
	return views, nil
}

// MustJoin is Join for data known to be consistent, it panics on a broken reference.
func MustJoin(ds Dataset) []types.ProductView {
	views, err := Join(ds)
	if err != nil {
		panic(err)
	}
	return views
}
