package domain

import "time"

// RegionReport is the persisted unit of a run.
type RegionReport struct {
	Code         string    `json:"-"`
	Name         string    `json:"name"`
	Province     string    `json:"province"`
	SolarScore   float64   `json:"solar_score"`
	GridScore    float64   `json:"grid_score"`
	DensityScore float64   `json:"density_score"`
	SubsidyScore float64   `json:"subsidy_score"`
	TotalScore   float64   `json:"total_score"`
	Grade        Grade     `json:"grade"`
	Summary      string    `json:"ai_summary"`
	LastUpdated  time.Time `json:"last_updated"`

	Sources map[Indicator]Provenance `json:"-"`
}

// NewRegionReport scores an assessment and stamps it with the package clock.
func NewRegionReport(r Region, a Assessment) RegionReport {
	s := a.Scores()
	total := CompositeScore(s)
	return RegionReport{
		Code:         r.Code,
		Name:         r.Name,
		Province:     r.Province,
		SolarScore:   s.Solar,
		GridScore:    s.Grid,
		DensityScore: s.Density,
		SubsidyScore: s.Subsidy,
		TotalScore:   total,
		Grade:        GradeFor(total),
		Summary:      Summarize(r.Name, s),
		LastUpdated:  Now(),
		Sources:      a.Sources(),
	}
}

// Scores returns the four indicator values of the report.
func (r RegionReport) Scores() Scores {
	return Scores{
		Solar:   r.SolarScore,
		Grid:    r.GridScore,
		Density: r.DensityScore,
		Subsidy: r.SubsidyScore,
	}
}

// ReportSet is the output artifact: reports keyed by region code.
type ReportSet map[string]RegionReport

// GradeCounts tallies reports per grade.
func (rs ReportSet) GradeCounts() map[Grade]int {
	counts := make(map[Grade]int, len(Grades()))
	for _, r := range rs {
		counts[r.Grade]++
	}
	return counts
}
