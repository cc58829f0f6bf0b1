package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/green-check-collector/internal/domain"
)

//go:embed profile.yaml
var embeddedProfile []byte

// Range is a closed interval for uniform draws.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("range min %.1f exceeds max %.1f", r.Min, r.Max)
	}
	if r.Min < domain.MinScore || r.Max > domain.MaxScore {
		return fmt.Errorf("range [%.1f, %.1f] outside [0, 100]", r.Min, r.Max)
	}
	return nil
}

// AdjustmentKind selects how a bias draw combines with the running value.
type AdjustmentKind string

const (
	// KindRaise adds the draw, capped at Limit.
	KindRaise AdjustmentKind = "raise"
	// KindLower subtracts the draw, floored at Limit.
	KindLower AdjustmentKind = "lower"
	// KindCeiling keeps the smaller of the value and the draw.
	KindCeiling AdjustmentKind = "ceiling"
	// KindFloor keeps the larger of the value and the draw.
	KindFloor AdjustmentKind = "floor"
)

// Adjustment is a province-scoped bias rule.
type Adjustment struct {
	Name      string         `yaml:"name"`
	Kind      AdjustmentKind `yaml:"kind"`
	Range     Range          `yaml:"range"`
	Limit     *float64       `yaml:"limit"`
	Provinces []string       `yaml:"provinces"`
}

// Applies reports whether the rule covers province.
func (a Adjustment) Applies(province string) bool {
	return slices.Contains(a.Provinces, province)
}

// Apply combines value with a draw from the rule's range.
func (a Adjustment) Apply(value, draw float64) float64 {
	switch a.Kind {
	case KindRaise:
		return min(*a.Limit, value+draw)
	case KindLower:
		return max(*a.Limit, value-draw)
	case KindCeiling:
		return min(value, draw)
	case KindFloor:
		return max(value, draw)
	default:
		return value
	}
}

func (a Adjustment) validate() error {
	if err := a.Range.validate(); err != nil {
		return fmt.Errorf("adjustment %q: %w", a.Name, err)
	}
	if len(a.Provinces) == 0 {
		return fmt.Errorf("adjustment %q: no provinces", a.Name)
	}
	switch a.Kind {
	case KindRaise, KindLower:
		if a.Limit == nil {
			return fmt.Errorf("adjustment %q: %s requires a limit", a.Name, a.Kind)
		}
		if *a.Limit < domain.MinScore || *a.Limit > domain.MaxScore {
			return fmt.Errorf("adjustment %q: limit %.1f outside [0, 100]", a.Name, *a.Limit)
		}
	case KindCeiling, KindFloor:
	default:
		return fmt.Errorf("adjustment %q: unknown kind %q", a.Name, a.Kind)
	}
	return nil
}

// IndicatorProfile is the base range and bias rules for one indicator.
type IndicatorProfile struct {
	Base        Range        `yaml:"base"`
	Adjustments []Adjustment `yaml:"adjustments"`
}

// Profile holds the fallback rules of all four indicators.
type Profile struct {
	Solar   IndicatorProfile `yaml:"solar"`
	Grid    IndicatorProfile `yaml:"grid"`
	Density IndicatorProfile `yaml:"density"`
	Subsidy IndicatorProfile `yaml:"subsidy"`
}

// For returns the rules of one indicator.
func (p *Profile) For(ind domain.Indicator) IndicatorProfile {
	switch ind {
	case domain.IndicatorSolar:
		return p.Solar
	case domain.IndicatorGrid:
		return p.Grid
	case domain.IndicatorDensity:
		return p.Density
	default:
		return p.Subsidy
	}
}

// Validate checks every range, limit and adjustment kind.
func (p *Profile) Validate() error {
	for _, ind := range domain.Indicators() {
		ip := p.For(ind)
		if err := ip.Base.validate(); err != nil {
			return fmt.Errorf("profile %s base: %w", ind, err)
		}
		for _, adj := range ip.Adjustments {
			if err := adj.validate(); err != nil {
				return fmt.Errorf("profile %s: %w", ind, err)
			}
		}
	}
	return nil
}

// LoadProfile reads the profile at path, or the embedded one when path is empty.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return ParseProfile(embeddedProfile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes and validates a profile document.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
