package analysis

import (
	"math"
)

// RunMembership places a day inside the run that contains it.
type RunMembership struct {
	Direction Direction `json:"direction"`
	Length    int       `json:"length"`
	// Position is the 1-based day number within the run.
	Position int `json:"position"`
}

// DailyRecord is the per-day composite row served to the dashboard table.
type DailyRecord struct {
	Date           string         `json:"date"`
	Open           float64        `json:"open"`
	High           float64        `json:"high"`
	Low            float64        `json:"low"`
	Close          float64        `json:"close"`
	Volume         int64          `json:"volume"`
	SMA            *float64       `json:"sma"`
	DailyReturn    *float64       `json:"daily_return"`
	PriceChange    float64        `json:"price_change"`
	PriceChangePct float64        `json:"price_change_pct"`
	Run            *RunMembership `json:"run,omitempty"`
}

// AssembleRecords joins the series with its derived values into one record
// per day. A day whose numeric fields cannot be represented (NaN or infinite)
// is skipped and the rest of the batch proceeds; callers can detect the
// omission by comparing record count against series length.
func AssembleRecords(ts *TimeSeries, sma []*float64, returns []*float64, runs []Run) []DailyRecord {
	records := make([]DailyRecord, 0, ts.Len())
	for i := 0; i < ts.Len(); i++ {
		bar := ts.Bar(i)
		if !isFinite(bar.Open) || !isFinite(bar.High) || !isFinite(bar.Low) || !isFinite(bar.Close) {
			continue
		}

		rec := DailyRecord{
			Date:   bar.Date.Format("2006-01-02"),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		}
		if i < len(sma) {
			rec.SMA = sma[i]
		}
		if i < len(returns) {
			rec.DailyReturn = returns[i]
		}

		if i > 0 {
			prev := ts.Bar(i - 1).Close
			rec.PriceChange = bar.Close - prev
			if prev != 0 {
				rec.PriceChangePct = rec.PriceChange / prev * 100
			}
		}

		if run, ok := RunAt(runs, i); ok {
			rec.Run = &RunMembership{
				Direction: run.Direction,
				Length:    run.Length,
				Position:  i - run.Start + 1,
			}
		}

		records = append(records, rec)
	}
	return records
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
