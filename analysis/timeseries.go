package analysis

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/stockdash/stockdash/models"
)

var (
	// ErrEmptySeries is returned when a time series is built from no bars.
	ErrEmptySeries = errors.New("series contains no bars")
	// ErrDuplicateDate is returned when two bars share the same calendar date.
	ErrDuplicateDate = errors.New("duplicate date in series")
)

// TimeSeries is a chronologically ordered, duplicate-free sequence of daily
// bars. It is immutable once constructed: every accessor returns a copy, and
// all analyses are pure reads over it.
type TimeSeries struct {
	bars []models.Bar
}

// NewTimeSeries validates and sorts the given bars into a time series.
// The input slice is not retained.
func NewTimeSeries(bars []models.Bar) (*TimeSeries, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}
	sorted := make([]models.Bar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date.Equal(sorted[i-1].Date) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, sorted[i].Date.Format("2006-01-02"))
		}
	}
	return &TimeSeries{bars: sorted}, nil
}

// Len returns the number of days in the series.
func (ts *TimeSeries) Len() int { return len(ts.bars) }

// Bar returns the bar at position i.
func (ts *TimeSeries) Bar(i int) models.Bar { return ts.bars[i] }

// Bars returns a copy of all bars in chronological order.
func (ts *TimeSeries) Bars() []models.Bar {
	out := make([]models.Bar, len(ts.bars))
	copy(out, ts.bars)
	return out
}

// Closes extracts the closing prices in chronological order.
func (ts *TimeSeries) Closes() []float64 {
	closes := make([]float64, len(ts.bars))
	for i, b := range ts.bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates extracts the bar dates in chronological order.
func (ts *TimeSeries) Dates() []time.Time {
	dates := make([]time.Time, len(ts.bars))
	for i, b := range ts.bars {
		dates[i] = b.Date
	}
	return dates
}
