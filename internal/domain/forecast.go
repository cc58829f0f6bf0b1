package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSkyData is returned when a forecast carries no usable sky-state items.
var ErrNoSkyData = errors.New("forecast has no sky state items")

// Forecast categories used for the solar score.
const (
	CategorySky           = "SKY" // 1 clear, 3 mostly cloudy, 4 overcast
	CategoryPrecipitation = "PTY" // 0 none, anything else some precipitation
)

// skyScores maps KMA sky codes to a clear-sky fraction on the score scale.
var skyScores = map[string]float64{
	"1": 100,
	"3": 60,
	"4": 30,
}

// precipitationPenalty is subtracted in proportion to precipitating slots.
const precipitationPenalty = 30.0

// ForecastItem is one category/value pair of a village forecast.
type ForecastItem struct {
	Category string
	Date     string // YYYYMMDD
	Time     string // HHMM
	Value    string
}

// ForecastBucket identifies a forecast issuance.
type ForecastBucket struct {
	BaseDate string // YYYYMMDD
	BaseTime string // HHMM
}

func (b ForecastBucket) String() string { return b.BaseDate + b.BaseTime }

// issueHours are the KMA village forecast issuance hours (KST).
var issueHours = []int{2, 5, 8, 11, 14, 17, 20, 23}

// issueLag is how long after issuance a forecast becomes available.
const issueLag = 10 * time.Minute

// ForecastBucketAt returns the latest forecast issuance available at t.
func ForecastBucketAt(t time.Time) ForecastBucket {
	t = t.In(KST).Add(-issueLag)
	for i := len(issueHours) - 1; i >= 0; i-- {
		if t.Hour() >= issueHours[i] {
			return ForecastBucket{BaseDate: t.Format("20060102"), BaseTime: fmt.Sprintf("%02d00", issueHours[i])}
		}
	}
	prev := t.AddDate(0, 0, -1)
	return ForecastBucket{BaseDate: prev.Format("20060102"), BaseTime: "2300"}
}

// SolarScoreFromForecast derives a solar score from sky-state and
// precipitation items: the mean sky score minus a penalty proportional to
// the share of precipitating slots. Unknown codes are ignored.
func SolarScoreFromForecast(items []ForecastItem) (float64, error) {
	var skySum float64
	var skyN, ptyN, wet int
	for _, it := range items {
		switch it.Category {
		case CategorySky:
			if v, ok := skyScores[it.Value]; ok {
				skySum += v
				skyN++
			}
		case CategoryPrecipitation:
			ptyN++
			if it.Value != "0" {
				wet++
			}
		}
	}
	if skyN == 0 {
		return 0, ErrNoSkyData
	}
	score := skySum / float64(skyN)
	if ptyN > 0 {
		score -= precipitationPenalty * float64(wet) / float64(ptyN)
	}
	return Round1(Clamp(score)), nil
}
