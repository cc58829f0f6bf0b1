package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/green-check-collector/internal/domain"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 69, c.Len())
	regions := c.Regions()
	assert.Equal(t, domain.Region{Code: "11010", Name: "종로구", Province: "서울특별시"}, regions[0])

	// Every province in the catalog has a forecast grid cell.
	for _, r := range regions {
		_, ok := c.GridPoint(r.Province)
		assert.True(t, ok, "missing grid point for %s", r.Province)
	}

	p, ok := c.GridPoint("제주특별자치도")
	require.True(t, ok)
	assert.Equal(t, domain.GridPoint{NX: 52, NY: 38}, p)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	doc := `
grid:
  서울특별시: {nx: 60, ny: 127}
regions:
  - {code: "11010", name: 종로구, province: 서울특별시}
  - {code: "11020", name: 중구, province: 서울특별시}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", `regions: []`, "no regions"},
		{"duplicate code", `regions:
  - {code: "1", name: a, province: p}
  - {code: "1", name: b, province: p}`, "duplicate code"},
		{"missing province", `regions:
  - {code: "1", name: a}`, "required"},
		{"bad yaml", `regions: [`, "parse catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegions_ReturnsCopy(t *testing.T) {
	c := New([]domain.Region{{Code: "1", Name: "a", Province: "p"}}, nil)
	regions := c.Regions()
	regions[0].Name = "mutated"
	assert.Equal(t, "a", c.Regions()[0].Name)
}
