package models

import (
	"time"
)

// Bar represents one trading day of OHLCV data.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// DatasetRow is a persisted OHLCV row belonging to an uploaded dataset.
type DatasetRow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Dataset   string    `gorm:"index:idx_dataset_date;size:255" json:"dataset"`
	Date      time.Time `gorm:"index:idx_dataset_date" json:"date"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
	CreatedAt time.Time `json:"created_at"`
}

// Bar converts a persisted row back into the in-memory representation.
func (r DatasetRow) Bar() Bar {
	return Bar{
		Date:   r.Date,
		Open:   r.Open,
		High:   r.High,
		Low:    r.Low,
		Close:  r.Close,
		Volume: r.Volume,
	}
}

// NewDatasetRow builds a persistable row from a bar.
func NewDatasetRow(dataset string, b Bar) DatasetRow {
	return DatasetRow{
		Dataset:   dataset,
		Date:      b.Date,
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    b.Volume,
		CreatedAt: time.Now(),
	}
}

// Columns lists the required upload columns in canonical order.
var Columns = []string{"date", "open", "high", "low", "close", "volume"}
