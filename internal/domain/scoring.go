package domain

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Weights defines the contribution of each indicator to the composite.
type Weights struct {
	Solar   float64
	Grid    float64
	Density float64
	Subsidy float64
}

// DefaultWeights are the fixed composite weights.
var DefaultWeights = Weights{
	Solar:   0.35,
	Grid:    0.30,
	Density: 0.20,
	Subsidy: 0.15,
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Solar + w.Grid + w.Density + w.Subsidy
}

// Validate checks that weights are non-negative and sum to 1.0 (±0.001).
func (w Weights) Validate() error {
	for _, v := range []float64{w.Solar, w.Grid, w.Density, w.Subsidy} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// CompositeScore returns the weighted total of s, rounded to one decimal
// place and kept within [0, 100].
func CompositeScore(s Scores) float64 {
	w := DefaultWeights
	// The conversions force each product to round; no fused multiply-add.
	total := float64(s.Solar*w.Solar) + float64(s.Grid*w.Grid) + float64(s.Density*w.Density) + float64(s.Subsidy*w.Subsidy)
	return Round1(Clamp(total))
}

// Grade is the ordinal label derived from a composite score.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Grades lists every grade from best to worst.
func Grades() []Grade {
	return []Grade{GradeS, GradeA, GradeB, GradeC, GradeD}
}

// GradeFor maps a composite score to its grade.
func GradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeS
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 60:
		return GradeC
	default:
		return GradeD
	}
}

// Clamp bounds v to [MinScore, MaxScore]. NaN becomes MinScore.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Round1 rounds v to one decimal place. The exact binary value of v is
// rounded, with ties to even, so 72.25 becomes 72.2 and 72.35 (stored just
// below the tie) becomes 72.3.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return exactDecimal(v).RoundBank(1).InexactFloat64()
}

// exactDecimal returns the exact decimal value of a finite float64.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// m * 2^-k == m * 5^k * 10^-k
	pow5 := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(pow5.Mul(pow5, mant), int32(exp))
}

// InRange reports whether v is a valid score.
func InRange(v float64) bool {
	return v >= MinScore && v <= MaxScore
}
