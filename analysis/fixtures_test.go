package analysis

import (
	"testing"
	"time"

	"github.com/stockdash/stockdash/models"
)

// fixtureCloses is the 10-day validation dataset used across the test suite.
var fixtureCloses = []float64{100, 102, 101, 103, 105, 104, 106, 108, 107, 109}

func barsFromCloses(closes []float64) []models.Bar {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c - 1,
			High:   c + 1,
			Low:    c - 2,
			Close:  c,
			Volume: int64(1000 + 10*i),
		}
	}
	return bars
}

func seriesFromCloses(t *testing.T, closes []float64) *TimeSeries {
	t.Helper()
	ts, err := NewTimeSeries(barsFromCloses(closes))
	if err != nil {
		t.Fatalf("Failed to build time series: %v", err)
	}
	return ts
}

func floatPtr(v float64) *float64 { return &v }
