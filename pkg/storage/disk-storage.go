package storage

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
)

// LoadDataset reads users, categories and products from the root folder. Each
// file may also be stored gzipped with a .gz suffix.
func (d *DiskStorage) LoadDataset() (catalog.Dataset, error) {
	ds := catalog.Dataset{}
	if err := d.loadJsonOrGzip(&ds.Users, usersFile); err != nil {
		return ds, err
	}
	if err := d.loadJsonOrGzip(&ds.Categories, categoriesFile); err != nil {
		return ds, err
	}
	if err := d.loadJsonOrGzip(&ds.Products, productsFile); err != nil {
		return ds, err
	}
	return ds, nil
}

// SaveDataset writes the catalog in the layout LoadDataset reads, with .gz
// files when gzipped is set.
func (d *DiskStorage) SaveDataset(ds catalog.Dataset, gzipped bool) error {
	if err := os.MkdirAll(d.RootFolder, 0o755); err != nil {
		return err
	}
	save := d.SaveJson
	suffix := ""
	if gzipped {
		save = d.SaveGzippedJson
		suffix = ".gz"
	}
	if err := save(ds.Users, usersFile+suffix); err != nil {
		return fmt.Errorf("save %s: %w", usersFile+suffix, err)
	}
	if err := save(ds.Categories, categoriesFile+suffix); err != nil {
		return fmt.Errorf("save %s: %w", categoriesFile+suffix, err)
	}
	if err := save(ds.Products, productsFile+suffix); err != nil {
		return fmt.Errorf("save %s: %w", productsFile+suffix, err)
	}
	return nil
}

func (d *DiskStorage) loadJsonOrGzip(data any, filename string) error {
	err := d.LoadJson(data, filename)
	if errors.Is(err, os.ErrNotExist) {
		err = d.LoadGzippedJson(data, filename+".gz")
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", filename, err)
	}
	return nil
}

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := p.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	defer file.Close()

	zipWriter := gzip.NewWriter(file)
	if err = jsoncompat.NewEncoder(zipWriter).Encode(data); err != nil {
		zipWriter.Close()
		return err
	}
	if err = zipWriter.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = jsoncompat.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (p *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := p.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	err = jsoncompat.NewEncoder(file).Encode(data)
	file.Close()
	if err != nil {
		return err
	}

	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	err = jsoncompat.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
