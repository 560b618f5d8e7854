package storage

import (
	"embed"
	"fmt"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
)

//go:embed seed/*.json
var seed embed.FS

// EmbeddedDataset returns the demo catalog bundled with the binary.
func EmbeddedDataset() (catalog.Dataset, error) {
	ds := catalog.Dataset{}
	if err := loadEmbedded(&ds.Users, usersFile); err != nil {
		return ds, err
	}
	if err := loadEmbedded(&ds.Categories, categoriesFile); err != nil {
		return ds, err
	}
	if err := loadEmbedded(&ds.Products, productsFile); err != nil {
		return ds, err
	}
	return ds, nil
}

func loadEmbedded(data any, name string) error {
	b, err := seed.ReadFile("seed/" + name)
	if err != nil {
		return err
	}
	if err := jsoncompat.Unmarshal(b, data); err != nil {
		return fmt.Errorf("decode embedded %s: %w", name, err)
	}
	return nil
}

// LoadDataset reads the catalog from folder, or the embedded demo catalog
// when folder is empty.
func LoadDataset(folder string) (catalog.Dataset, error) {
	if folder == "" {
		return EmbeddedDataset()
	}
	return NewDiskStorage(folder).LoadDataset()
}
