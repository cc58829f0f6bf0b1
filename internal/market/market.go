// Package market synthesizes the energy-market and power-supply artifacts
// shown on the dashboard.
package market

import (
	"fmt"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/random"
)

const (
	historyDays = 7
	chartHours  = 24

	updatedAtLayout = "2006-01-02 15:04:05"
)

// DefaultShares is the national generation mix, in percent.
var DefaultShares = []domain.EnergyShare{
	{Name: "태양광", Value: 15},
	{Name: "풍력", Value: 8},
	{Name: "원자력", Value: 30},
	{Name: "화력", Value: 40},
	{Name: "기타", Value: 7},
}

// Generator draws market readings around fixed reference levels.
type Generator struct {
	rng    random.Source
	shares []domain.EnergyShare
}

// NewGenerator creates a generator using DefaultShares.
func NewGenerator(rng random.Source) *Generator {
	return &Generator{rng: rng, shares: DefaultShares}
}

// Snapshot builds seven days of SMP, REC, and carbon prices ending on now's
// date, oldest first, with the last day repeated as the current reading.
func (g *Generator) Snapshot(now time.Time) domain.MarketSnapshot {
	history := make([]domain.MarketPoint, historyDays)
	for i := range history {
		day := now.AddDate(0, 0, i-(historyDays-1))
		history[i] = domain.MarketPoint{
			Date:   day.Format(time.DateOnly),
			SMP:    domain.Round1(140 + g.rng.Uniform(-10, 10)),
			REC:    70000 + g.rng.IntBetween(-5000, 5000),
			Carbon: 12000 + g.rng.IntBetween(-1000, 1000),
		}
	}
	last := history[len(history)-1]

	return domain.MarketSnapshot{
		Current: domain.MarketCurrent{
			SMP:          last.SMP,
			REC:          last.REC,
			Carbon:       last.Carbon,
			ReserveRatio: domain.Round1(15.2 + g.rng.Uniform(-1, 1)),
			UpdatedAt:    now.Format(updatedAtLayout),
		},
		History: history,
		Shares:  append([]domain.EnergyShare(nil), g.shares...),
	}
}

// EnergyStatus builds 24 hourly supply and demand samples. The current
// status is the sample for now's hour.
func (g *Generator) EnergyStatus(now time.Time) domain.EnergyStatus {
	chart := make([]domain.PowerReading, chartHours)
	for h := range chart {
		chart[h] = domain.PowerReading{
			Time:      fmt.Sprintf("%d:00", h),
			Supply:    domain.Round1(75 + g.rng.Uniform(0, 10)),
			Demand:    domain.Round1(65 + g.rng.Uniform(0, 10)),
			Renewable: domain.Round1(10 + g.rng.Uniform(0, 5)),
		}
	}

	cur := chart[now.Hour()]
	reserve := cur.Supply - cur.Demand
	return domain.EnergyStatus{
		Current: domain.PowerStatus{
			Supply:         cur.Supply,
			Demand:         cur.Demand,
			ReservePower:   domain.Round1(reserve),
			ReserveRatio:   domain.Round1(reserve / cur.Demand * 100),
			RenewableShare: domain.Round1(cur.Renewable / cur.Supply * 100),
			UpdatedAt:      now.Format(time.RFC3339),
		},
		ChartData: chart,
	}
}
