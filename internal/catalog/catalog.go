// Package catalog loads the static region catalog and the fallback
// estimation profile. Both are embedded YAML documents that can be replaced
// by files on disk; they are read once at startup and never mutated.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/green-check-collector/internal/domain"
)

//go:embed regions.yaml
var embeddedRegions []byte

// Catalog is the immutable list of regions plus the province grid table.
type Catalog struct {
	regions []domain.Region
	grid    map[string]domain.GridPoint
}

type catalogFile struct {
	Grid    map[string]domain.GridPoint `yaml:"grid"`
	Regions []domain.Region             `yaml:"regions"`
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedRegions)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := New(f.Regions, f.Grid)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// New builds a catalog from in-memory data. The inputs are copied.
func New(regions []domain.Region, grid map[string]domain.GridPoint) *Catalog {
	c := &Catalog{
		regions: append([]domain.Region(nil), regions...),
		grid:    make(map[string]domain.GridPoint, len(grid)),
	}
	for k, v := range grid {
		c.grid[k] = v
	}
	return c
}

// Validate rejects empty catalogs, incomplete regions and duplicate codes.
func (c *Catalog) Validate() error {
	if len(c.regions) == 0 {
		return errors.New("catalog has no regions")
	}
	seen := make(map[string]struct{}, len(c.regions))
	for i, r := range c.regions {
		if r.Code == "" || r.Name == "" || r.Province == "" {
			return fmt.Errorf("catalog region %d: code, name and province are required", i)
		}
		if _, dup := seen[r.Code]; dup {
			return fmt.Errorf("catalog region %d: duplicate code %q", i, r.Code)
		}
		seen[r.Code] = struct{}{}
	}
	return nil
}

// Regions returns a copy of the region list in catalog order.
func (c *Catalog) Regions() []domain.Region {
	return append([]domain.Region(nil), c.regions...)
}

// Len returns the number of regions.
func (c *Catalog) Len() int { return len(c.regions) }

// GridPoint returns the forecast grid cell for a province.
func (c *Catalog) GridPoint(province string) (domain.GridPoint, bool) {
	p, ok := c.grid[province]
	return p, ok
}
