package analysis

import (
	"testing"
)

func TestAnalyzeRunsFixture(t *testing.T) {
	stats := AnalyzeRuns(DailyReturns(fixtureCloses))

	if stats.TotalUpwardRuns != 4 {
		t.Errorf("Expected 4 upward runs, got %d", stats.TotalUpwardRuns)
	}
	if stats.TotalDownwardRuns != 3 {
		t.Errorf("Expected 3 downward runs, got %d", stats.TotalDownwardRuns)
	}
	if stats.LongestUpwardStreak != 2 {
		t.Errorf("Expected longest upward streak 2, got %d", stats.LongestUpwardStreak)
	}
	if stats.LongestDownwardStreak != 1 {
		t.Errorf("Expected longest downward streak 1, got %d", stats.LongestDownwardStreak)
	}
	if stats.TotalUpwardDays != 6 {
		t.Errorf("Expected 6 upward days, got %d", stats.TotalUpwardDays)
	}
	if stats.TotalDownwardDays != 3 {
		t.Errorf("Expected 3 downward days, got %d", stats.TotalDownwardDays)
	}
}

func TestAnalyzeRunsStrictlyDecreasing(t *testing.T) {
	stats := AnalyzeRuns(DailyReturns([]float64{50, 40, 30, 20, 10}))

	if len(stats.Runs) != 1 {
		t.Fatalf("Expected one run, got %d", len(stats.Runs))
	}
	run := stats.Runs[0]
	if run.Direction != DirectionDown {
		t.Errorf("Expected downward run, got %s", run.Direction)
	}
	if run.Start != 1 || run.End != 4 || run.Length != 4 {
		t.Errorf("Expected run [1,4] length 4, got [%d,%d] length %d", run.Start, run.End, run.Length)
	}
}

func TestAnalyzeRunsIndexZeroNeverStartsRun(t *testing.T) {
	// Index 0 has no return, so even a monotonic series starts its run at 1.
	stats := AnalyzeRuns(DailyReturns([]float64{1, 2, 3}))
	if len(stats.Runs) != 1 || stats.Runs[0].Start != 1 {
		t.Fatalf("Expected a single run starting at index 1, got %+v", stats.Runs)
	}
}

func TestAnalyzeRunsZeroReturnBreaksRun(t *testing.T) {
	// Flat day at index 2 must end the first run without forming its own.
	stats := AnalyzeRuns(DailyReturns([]float64{100, 101, 101, 102, 103}))

	if len(stats.Runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d: %+v", len(stats.Runs), stats.Runs)
	}
	first, second := stats.Runs[0], stats.Runs[1]
	if first.Start != 1 || first.End != 1 || first.Direction != DirectionUp {
		t.Errorf("Unexpected first run: %+v", first)
	}
	if second.Start != 3 || second.End != 4 || second.Length != 2 {
		t.Errorf("Unexpected second run: %+v", second)
	}
	for _, r := range stats.Runs {
		if r.Start <= 2 && 2 <= r.End {
			t.Error("Flat day must not belong to any run")
		}
	}
}

func TestAnalyzeRunsCoverage(t *testing.T) {
	// Every index after 0 is either inside exactly one run or a zero day.
	series := [][]float64{
		fixtureCloses,
		{100, 101, 101, 102, 103},
		{5, 4, 4, 3, 3, 2},
		{7},
		{1, 1, 1},
	}
	for _, closes := range series {
		returns := DailyReturns(closes)
		stats := AnalyzeRuns(returns)

		zeroDays := 0
		for i := 1; i < len(returns); i++ {
			if returns[i] == nil || *returns[i] == 0 {
				zeroDays++
			}
		}
		runDays := 0
		prevEnd := 0
		for _, r := range stats.Runs {
			if r.Start <= prevEnd && runDays > 0 {
				t.Errorf("Runs overlap or are unordered: %+v", stats.Runs)
			}
			if r.Length != r.End-r.Start+1 {
				t.Errorf("Inconsistent run length: %+v", r)
			}
			runDays += r.Length
			prevEnd = r.End
		}
		if len(closes) > 0 && runDays+zeroDays != len(closes)-1 {
			t.Errorf("closes %v: run days %d + zero days %d != %d", closes, runDays, zeroDays, len(closes)-1)
		}
	}
}

func TestAnalyzeRunsEmptyAndSingle(t *testing.T) {
	if stats := AnalyzeRuns(nil); len(stats.Runs) != 0 {
		t.Errorf("Expected no runs for empty input, got %+v", stats.Runs)
	}
	if stats := AnalyzeRuns(DailyReturns([]float64{42})); len(stats.Runs) != 0 {
		t.Errorf("Expected no runs for single element, got %+v", stats.Runs)
	}
}

func TestRunAt(t *testing.T) {
	runs := []Run{
		{Start: 1, End: 2, Length: 2, Direction: DirectionUp},
		{Start: 4, End: 6, Length: 3, Direction: DirectionDown},
	}
	tests := []struct {
		index int
		found bool
		start int
	}{
		{0, false, 0},
		{1, true, 1},
		{2, true, 1},
		{3, false, 0},
		{5, true, 4},
		{7, false, 0},
	}
	for _, tt := range tests {
		run, ok := RunAt(runs, tt.index)
		if ok != tt.found {
			t.Errorf("Index %d: expected found=%v, got %v", tt.index, tt.found, ok)
		}
		if ok && run.Start != tt.start {
			t.Errorf("Index %d: expected run starting at %d, got %d", tt.index, tt.start, run.Start)
		}
	}
}
