// Package catalog stores products and their price sources in a YAML file
// for the sync command.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/pricesync"
)

// ErrProductNotFound is returned when an id is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

type document struct {
	Products []pricesync.Product `yaml:"products"`
}

// Catalog is an in-memory copy of a catalog file.
type Catalog struct {
	path     string
	Products []pricesync.Product
}

// Open reads the catalog at path.
func Open(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &Catalog{path: path, Products: doc.Products}, nil
}

// Find returns the product with id.
func (c *Catalog) Find(id string) (pricesync.Product, error) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return pricesync.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

// Update replaces the external prices of product id.
func (c *Catalog) Update(id string, prices []pricesync.ExternalPrice) error {
	for i := range c.Products {
		if c.Products[i].ID == id {
			c.Products[i].ExternalPrices = prices
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

// Save writes the catalog back to its file, replacing it atomically.
func (c *Catalog) Save() error {
	data, err := yaml.Marshal(document{Products: c.Products})
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".catalog-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return os.Rename(tmp.Name(), c.path)
}
