// Package domain models the Green Check regional investment indicators and
// the scoring rules that turn them into a graded report.
//
// # Indicators
//
// Every region receives four independent scores in [0, 100]:
//
//	solar    estimated solar potential (irradiance proxy)
//	grid     distribution-line headroom for new interconnections
//	density  installation density, inverted: higher means fewer existing
//	         installations and therefore less competition for new entrants
//	subsidy  generosity of local subsidy programmes
//
// Each score carries its provenance: [ProvenanceReal] when it was derived
// from an upstream data source, [ProvenanceEstimated] when it came from the
// bias-adjusted randomized fallback.
//
// # Composite Score
//
// The composite is a fixed weighted sum rounded to one decimal place:
//
//	total = round(0.35*solar + 0.30*grid + 0.20*density + 0.15*subsidy, 1)
//
// Rounding applies to the exact binary value of the sum with ties to even,
// so a sum of exactly 72.25 rounds to 72.2. See [Round1].
//
// # Grades
//
//	S  total >= 90
//	A  total >= 80
//	B  total >= 70
//	C  total >= 60
//	D  total <  60
//
// # Summary
//
// The narrative summary picks exactly one Korean sentence per indicator
// from a tiered template bank (three tiers for solar, grid and density, two
// for subsidy) and joins them with ". ", ending with a period. The lowest
// tier of every bank is unbounded below, so the tiers partition the whole
// score range. See [Summarize].
//
// # Output
//
// A run produces one [RegionReport] per catalog region, keyed by region
// code. Field names follow the front-end contract (solar_score, grid_score,
// density_score, subsidy_score, total_score, grade, ai_summary,
// last_updated).
package domain
