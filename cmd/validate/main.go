// Command validate checks a location-master.json artifact against the
// region catalog and the scoring rules: indicator ranges, the composite
// formula, the grade function, and summary consistency.
//
// Usage:
//
//	go run ./cmd/validate -reports public/data/location-master.json
//	go run ./cmd/validate -reports out.json -catalog regions.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/couchcryptid/green-check-collector/internal/adapter/jsonfile"
	"github.com/couchcryptid/green-check-collector/internal/catalog"
	"github.com/couchcryptid/green-check-collector/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	reportsPath := flag.String("reports", "public/data/location-master.json", "path to the location-master.json artifact")
	catalogPath := flag.String("catalog", "", "region catalog YAML (default: embedded catalog)")
	skipCoverage := flag.Bool("skip-coverage", false, "do not require every catalog region to be present")
	flag.Parse()

	os.Exit(run(os.Stdout, *reportsPath, *catalogPath, !*skipCoverage))
}

func run(w io.Writer, reportsPath, catalogPath string, coverage bool) int {
	fmt.Fprintln(w, "=== Green Check Artifact Validation ===")
	fmt.Fprintln(w)

	reports, err := jsonfile.ReadReports(reportsPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	codes := sortedCodes(reports)
	phases := []*phase{
		validateSchema(reports, codes),
		validateRanges(reports, codes),
		validateComposite(reports, codes),
		validateGrades(reports, codes),
		validateSummaries(reports, codes),
	}
	if coverage {
		phases = append([]*phase{validateCoverage(reports, cat)}, phases...)
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-34s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Regions: %d in artifact, %d in catalog\n", len(reports), cat.Len())
	counts := reports.GradeCounts()
	for _, g := range domain.Grades() {
		fmt.Fprintf(w, "  %s: %d\n", g, counts[g])
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateCoverage(reports domain.ReportSet, cat *catalog.Catalog) *phase {
	p := &phase{name: "Catalog coverage"}
	known := make(map[string]bool, cat.Len())
	for _, r := range cat.Regions() {
		known[r.Code] = true
		got, ok := reports[r.Code]
		if !ok {
			p.errorf("%s (%s): missing from artifact", r.Code, r.Name)
			continue
		}
		if got.Name != r.Name || got.Province != r.Province {
			p.errorf("%s: name/province %q/%q, catalog has %q/%q", r.Code, got.Name, got.Province, r.Name, r.Province)
		}
	}
	for _, code := range sortedCodes(reports) {
		if !known[code] {
			p.errorf("%s: not in catalog", code)
		}
	}
	return p
}

func validateSchema(reports domain.ReportSet, codes []string) *phase {
	p := &phase{name: "Required fields"}
	for _, code := range codes {
		r := reports[code]
		if r.Name == "" {
			p.errorf("%s: name is empty", code)
		}
		if r.Province == "" {
			p.errorf("%s: province is empty", code)
		}
		if r.Summary == "" {
			p.errorf("%s: ai_summary is empty", code)
		}
		if r.LastUpdated.IsZero() {
			p.errorf("%s: last_updated is zero", code)
		}
	}
	return p
}

func validateRanges(reports domain.ReportSet, codes []string) *phase {
	p := &phase{name: "Score ranges [0, 100]"}
	for _, code := range codes {
		r := reports[code]
		fields := []struct {
			name string
			v    float64
		}{
			{"solar_score", r.SolarScore},
			{"grid_score", r.GridScore},
			{"density_score", r.DensityScore},
			{"subsidy_score", r.SubsidyScore},
			{"total_score", r.TotalScore},
		}
		for _, f := range fields {
			if !domain.InRange(f.v) {
				p.errorf("%s: %s %.1f out of range", code, f.name, f.v)
			}
			if domain.Round1(f.v) != f.v {
				p.errorf("%s: %s %v has more than one decimal", code, f.name, f.v)
			}
		}
	}
	return p
}

func validateComposite(reports domain.ReportSet, codes []string) *phase {
	p := &phase{name: "Composite formula"}
	for _, code := range codes {
		r := reports[code]
		if want := domain.CompositeScore(r.Scores()); r.TotalScore != want {
			p.errorf("%s: total_score %.1f, weighted sum gives %.1f", code, r.TotalScore, want)
		}
	}
	return p
}

func validateGrades(reports domain.ReportSet, codes []string) *phase {
	p := &phase{name: "Grade thresholds"}
	for _, code := range codes {
		r := reports[code]
		if want := domain.GradeFor(r.TotalScore); r.Grade != want {
			p.errorf("%s: grade %s for total %.1f, expected %s", code, r.Grade, r.TotalScore, want)
		}
	}
	return p
}

func validateSummaries(reports domain.ReportSet, codes []string) *phase {
	p := &phase{name: "Summary consistency"}
	for _, code := range codes {
		r := reports[code]
		if want := domain.Summarize(r.Name, r.Scores()); r.Summary != want {
			p.errorf("%s: ai_summary does not match scores\n      got:  %s\n      want: %s", code, r.Summary, want)
		}
	}
	return p
}

func sortedCodes(reports domain.ReportSet) []string {
	codes := make([]string, 0, len(reports))
	for code := range reports {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
