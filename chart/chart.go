package chart

import (
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"
)

// ErrNotEnoughPoints is returned when the series is too short to plot.
var ErrNotEnoughPoints = errors.New("not enough data points")

// Render draws the close price and its moving average as a line chart and
// returns the encoded PNG. SMA entries that are nil (the leading window-1
// days) are plotted as null points so the average line starts where it is
// first defined.
func Render(title string, dates []string, closes []float64, sma []*float64, window int) ([]byte, error) {
	if len(closes) < 2 {
		return nil, ErrNotEnoughPoints
	}
	if len(dates) != len(closes) || len(sma) != len(closes) {
		return nil, fmt.Errorf("series length mismatch: %d dates, %d closes, %d sma", len(dates), len(closes), len(sma))
	}

	smaLine := make([]float64, len(sma))
	for i, v := range sma {
		if v == nil {
			smaLine[i] = charts.GetNullValue()
		} else {
			smaLine[i] = *v
		}
	}

	yMin, yMax := closes[0], closes[0]
	for _, v := range closes[1:] {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	split := 10
	if len(dates) < split {
		split = len(dates)
	}

	names := []string{"Close", fmt.Sprintf("SMA(%d)", window)}
	seriesList := charts.NewSeriesListDataFromValues([][]float64{closes, smaLine}, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: dates, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
