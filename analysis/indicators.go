package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow is returned when an SMA window is non-positive or longer
// than the series it is applied to.
var ErrInvalidWindow = errors.New("invalid SMA window")

// SMA computes the simple moving average of prices over the given window.
// The result has one entry per input price; the first window-1 entries are
// nil because there is not enough history to fill the window.
func SMA(prices []float64, window int) ([]*float64, error) {
	if window < 1 || window > len(prices) {
		return nil, fmt.Errorf("%w: window %d, series length %d", ErrInvalidWindow, window, len(prices))
	}
	out := make([]*float64, len(prices))
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			v := sum / float64(window)
			out[i] = &v
		}
	}
	return out, nil
}

// DailyReturns computes the day-over-day percentage change of prices as
// decimal ratios (0.05 = 5%). The first entry is nil because there is no
// prior day; an entry whose prior price is zero is also nil.
func DailyReturns(prices []float64) []*float64 {
	out := make([]*float64, len(prices))
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1]
		if prev == 0 {
			continue
		}
		v := (prices[i] - prev) / prev
		out[i] = &v
	}
	return out
}
