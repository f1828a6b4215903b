package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestSMAFixture(t *testing.T) {
	sma, err := SMA(fixtureCloses, 3)
	if err != nil {
		t.Fatalf("SMA failed: %v", err)
	}
	if len(sma) != len(fixtureCloses) {
		t.Fatalf("Expected %d entries, got %d", len(fixtureCloses), len(sma))
	}
	if sma[0] != nil || sma[1] != nil {
		t.Error("Expected first window-1 entries to be nil")
	}
	if sma[2] == nil || *sma[2] != 101.0 {
		t.Errorf("Expected SMA at index 2 to be 101.0, got %v", sma[2])
	}
	if sma[9] == nil || *sma[9] != 108.0 {
		t.Errorf("Expected SMA at index 9 to be 108.0, got %v", sma[9])
	}
}

func TestSMATrailingMean(t *testing.T) {
	prices := []float64{10, 20, 30, 40, 50, 60}
	for window := 1; window <= len(prices); window++ {
		sma, err := SMA(prices, window)
		if err != nil {
			t.Fatalf("SMA(%d) failed: %v", window, err)
		}
		for i := range prices {
			if i < window-1 {
				if sma[i] != nil {
					t.Errorf("window %d index %d: expected nil, got %v", window, i, *sma[i])
				}
				continue
			}
			sum := 0.0
			for j := i - window + 1; j <= i; j++ {
				sum += prices[j]
			}
			want := sum / float64(window)
			if sma[i] == nil || math.Abs(*sma[i]-want) > 1e-9 {
				t.Errorf("window %d index %d: expected %.4f, got %v", window, i, want, sma[i])
			}
		}
	}
}

func TestSMAInvalidWindow(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		window int
	}{
		{"zero window", []float64{1, 2, 3}, 0},
		{"negative window", []float64{1, 2, 3}, -1},
		{"window exceeds length", []float64{1, 2, 3}, 4},
		{"empty series", []float64{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SMA(tt.prices, tt.window)
			if !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("Expected ErrInvalidWindow, got %v", err)
			}
		})
	}
}

func TestDailyReturnsFixture(t *testing.T) {
	returns := DailyReturns(fixtureCloses)
	if len(returns) != len(fixtureCloses) {
		t.Fatalf("Expected %d entries, got %d", len(fixtureCloses), len(returns))
	}
	if returns[0] != nil {
		t.Error("Expected first return to be nil")
	}
	expected := []float64{
		0.02, -0.009803921568627451, 0.019801980198019802,
		0.01941747572815534, -0.009523809523809523, 0.019230769230769232,
		0.018867924528301886, -0.009259259259259259, 0.018691588785046728,
	}
	for i, want := range expected {
		got := returns[i+1]
		if got == nil || math.Abs(*got-want) > 1e-12 {
			t.Errorf("Index %d: expected %.12f, got %v", i+1, want, got)
		}
	}
}

func TestDailyReturnsZeroPriorPrice(t *testing.T) {
	returns := DailyReturns([]float64{0, 10, 20})
	if returns[1] != nil {
		t.Errorf("Expected nil return after zero price, got %v", *returns[1])
	}
	if returns[2] == nil || *returns[2] != 1.0 {
		t.Errorf("Expected return 1.0 at index 2, got %v", returns[2])
	}
}

func TestDailyReturnsSingleElement(t *testing.T) {
	returns := DailyReturns([]float64{42})
	if len(returns) != 1 || returns[0] != nil {
		t.Errorf("Expected single nil entry, got %v", returns)
	}
}
