package catalog

import "github.com/matst80/slask-catalog/pkg/types"

// Dataset is the raw catalog as it is loaded from storage.
type Dataset struct {
	Users      []types.User     `json:"users"`
	Categories []types.Category `json:"categories"`
	Products   []types.Product  `json:"products"`
}

func (d *Dataset) userLookup() map[types.UserId]types.User {
	m := make(map[types.UserId]types.User, len(d.Users))
	for _, u := range d.Users {
		if _, exists := m[u.Id]; !exists {
			m[u.Id] = u
		}
	}
	return m
}

func (d *Dataset) categoryLookup() map[types.CategoryId]types.Category {
	m := make(map[types.CategoryId]types.Category, len(d.Categories))
	for _, c := range d.Categories {
		if _, exists := m[c.Id]; !exists {
			m[c.Id] = c
		}
	}
	return m
}
