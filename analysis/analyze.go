package analysis

import (
	"math"
)

// SeriesSection pairs a derived series with the dates its values are
// defined for.
type SeriesSection struct {
	Values []*float64 `json:"values"`
	Dates  []string   `json:"dates"`
}

// PriceRange is the min/max of closing prices over the whole series.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary carries the dashboard's headline numbers for a series.
type Summary struct {
	TotalDays  int        `json:"total_days"`
	PriceRange PriceRange `json:"price_range"`
	AvgVolume  float64    `json:"avg_volume"`
	// Volatility is the sample standard deviation of the defined daily
	// returns; nil when fewer than two returns are defined.
	Volatility *float64 `json:"volatility"`
}

// ProfitReport is the max-profit section of an analysis result.
type ProfitReport struct {
	TotalProfit  float64       `json:"total_profit"`
	Transactions []Transaction `json:"transactions"`
}

// Result bundles everything a single analysis call produces.
type Result struct {
	SMA          SeriesSection `json:"sma"`
	DailyReturns SeriesSection `json:"daily_returns"`
	RunsAnalysis RunStats      `json:"runs_analysis"`
	MaxProfit    ProfitReport  `json:"max_profit"`
	Records      []DailyRecord `json:"records"`
	Summary      Summary       `json:"summary"`
}

// Analyze runs the full pipeline over an immutable time series: trend,
// returns, runs, profit and the per-day composite records. It is a pure
// function of its inputs; concurrent calls over distinct series are safe.
func Analyze(ts *TimeSeries, window int) (*Result, error) {
	closes := ts.Closes()

	sma, err := SMA(closes, window)
	if err != nil {
		return nil, err
	}
	returns := DailyReturns(closes)
	runs := AnalyzeRuns(returns)
	totalProfit, transactions := MaxProfit(closes)
	records := AssembleRecords(ts, sma, returns, runs.Runs)

	dates := make([]string, ts.Len())
	for i, d := range ts.Dates() {
		dates[i] = d.Format("2006-01-02")
	}

	return &Result{
		SMA:          SeriesSection{Values: sma, Dates: dates[window-1:]},
		DailyReturns: SeriesSection{Values: returns, Dates: dates[1:]},
		RunsAnalysis: runs,
		MaxProfit:    ProfitReport{TotalProfit: totalProfit, Transactions: transactions},
		Records:      records,
		Summary:      Summarize(ts, returns),
	}, nil
}

// Summarize computes the headline statistics for a series.
func Summarize(ts *TimeSeries, returns []*float64) Summary {
	closes := ts.Closes()
	min, max := closes[0], closes[0]
	var volumeSum float64
	for i, b := range ts.Bars() {
		if closes[i] < min {
			min = closes[i]
		}
		if closes[i] > max {
			max = closes[i]
		}
		volumeSum += float64(b.Volume)
	}

	s := Summary{
		TotalDays:  ts.Len(),
		PriceRange: PriceRange{Min: min, Max: max},
		AvgVolume:  volumeSum / float64(ts.Len()),
	}
	if vol, ok := sampleStdDev(returns); ok {
		s.Volatility = &vol
	}
	return s
}

// sampleStdDev returns the sample standard deviation of the defined values.
func sampleStdDev(values []*float64) (float64, bool) {
	var defined []float64
	for _, v := range values {
		if v != nil {
			defined = append(defined, *v)
		}
	}
	if len(defined) < 2 {
		return 0, false
	}
	mean := 0.0
	for _, v := range defined {
		mean += v
	}
	mean /= float64(len(defined))
	var sq float64
	for _, v := range defined {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(defined)-1)), true
}
