package domain

// Indicator names one of the four sub-scores feeding the composite.
type Indicator string

const (
	IndicatorSolar   Indicator = "solar"
	IndicatorGrid    Indicator = "grid"
	IndicatorDensity Indicator = "density"
	IndicatorSubsidy Indicator = "subsidy"
)

// Indicators lists every indicator in report order.
func Indicators() []Indicator {
	return []Indicator{IndicatorSolar, IndicatorGrid, IndicatorDensity, IndicatorSubsidy}
}

// Provenance records where an indicator score came from.
type Provenance string

const (
	ProvenanceReal      Provenance = "real"
	ProvenanceEstimated Provenance = "estimated"
)

// Estimate is an indicator score together with its provenance.
type Estimate struct {
	Indicator  Indicator
	Value      float64
	Provenance Provenance
}

// Real wraps a score derived from an upstream data source.
func Real(ind Indicator, v float64) Estimate {
	return Estimate{Indicator: ind, Value: Round1(Clamp(v)), Provenance: ProvenanceReal}
}

// Estimated wraps a score produced by the fallback estimator.
func Estimated(ind Indicator, v float64) Estimate {
	return Estimate{Indicator: ind, Value: Round1(Clamp(v)), Provenance: ProvenanceEstimated}
}

// IsReal reports whether the estimate came from real data.
func (e Estimate) IsReal() bool { return e.Provenance == ProvenanceReal }

// Scores holds the four indicator values of one region.
type Scores struct {
	Solar   float64
	Grid    float64
	Density float64
	Subsidy float64
}

// Assessment holds the four estimates of one region.
type Assessment struct {
	Solar   Estimate
	Grid    Estimate
	Density Estimate
	Subsidy Estimate
}

// Scores drops provenance.
func (a Assessment) Scores() Scores {
	return Scores{
		Solar:   a.Solar.Value,
		Grid:    a.Grid.Value,
		Density: a.Density.Value,
		Subsidy: a.Subsidy.Value,
	}
}

// Sources maps each indicator to its provenance.
func (a Assessment) Sources() map[Indicator]Provenance {
	return map[Indicator]Provenance{
		IndicatorSolar:   a.Solar.Provenance,
		IndicatorGrid:    a.Grid.Provenance,
		IndicatorDensity: a.Density.Provenance,
		IndicatorSubsidy: a.Subsidy.Provenance,
	}
}
