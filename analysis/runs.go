package analysis

// Direction labels the price movement of a run.
type Direction string

const (
	DirectionUp   Direction = "upward"
	DirectionDown Direction = "downward"
)

// Run is a maximal block of consecutive days whose closing price moved in
// the same non-zero direction. Start and End are 0-based positions into the
// series, both inclusive.
type Run struct {
	Start          int       `json:"start"`
	End            int       `json:"end"`
	Length         int       `json:"length"`
	Direction      Direction `json:"direction"`
	DirectionValue int       `json:"direction_value"`
}

// RunStats aggregates all detected runs of a series.
type RunStats struct {
	TotalUpwardRuns       int   `json:"total_upward_runs"`
	TotalDownwardRuns     int   `json:"total_downward_runs"`
	LongestUpwardStreak   int   `json:"longest_upward_streak"`
	LongestDownwardStreak int   `json:"longest_downward_streak"`
	TotalUpwardDays       int   `json:"total_upward_days"`
	TotalDownwardDays     int   `json:"total_downward_days"`
	Runs                  []Run `json:"runs"`
}

// AnalyzeRuns detects maximal same-direction streaks in a daily-returns
// series. Each index gets a direction of +1, -1 or 0 from the sign of its
// return (nil counts as 0). Index 0 carries no return, so its direction is
// always 0 and the earliest a run can start is index 1. A zero-direction day
// ends the run in progress without opening a one-day run of its own.
func AnalyzeRuns(returns []*float64) RunStats {
	stats := RunStats{Runs: []Run{}}
	n := len(returns)
	if n == 0 {
		return stats
	}

	dirs := make([]int, n)
	for i, r := range returns {
		if r == nil {
			continue
		}
		if *r > 0 {
			dirs[i] = 1
		} else if *r < 0 {
			dirs[i] = -1
		}
	}

	record := func(endExclusive, length, dir int) {
		run := Run{
			Start:          endExclusive - length,
			End:            endExclusive - 1,
			Length:         length,
			DirectionValue: dir,
		}
		if dir == 1 {
			run.Direction = DirectionUp
			stats.TotalUpwardRuns++
			stats.TotalUpwardDays += length
			if length > stats.LongestUpwardStreak {
				stats.LongestUpwardStreak = length
			}
		} else {
			run.Direction = DirectionDown
			stats.TotalDownwardRuns++
			stats.TotalDownwardDays += length
			if length > stats.LongestDownwardStreak {
				stats.LongestDownwardStreak = length
			}
		}
		stats.Runs = append(stats.Runs, run)
	}

	current := dirs[0]
	length := 1
	for i := 1; i < n; i++ {
		if dirs[i] == current && dirs[i] != 0 {
			length++
			continue
		}
		if current != 0 {
			record(i, length, current)
		}
		length = 1
		current = dirs[i]
	}
	if current != 0 {
		record(n, length, current)
	}

	return stats
}

// RunAt finds the run containing index i, if any. Runs are ordered and
// non-overlapping, so a forward scan suffices.
func RunAt(runs []Run, i int) (Run, bool) {
	for _, r := range runs {
		if i < r.Start {
			break
		}
		if i <= r.End {
			return r, true
		}
	}
	return Run{}, false
}
