package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stockdash/stockdash/models"
)

var (
	// ErrEmptyFile is returned when an upload holds no data rows.
	ErrEmptyFile = errors.New("file contains no data rows")
	// ErrMissingColumns is returned when required columns are absent.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrUnsupportedFormat is returned for file types other than CSV/XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseUpload parses an uploaded tabular file into OHLCV bars, dispatching
// on the file extension. All validation happens here: the analysis core only
// ever sees well-formed data.
func ParseUpload(filename string, r io.Reader) ([]models.Bar, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ParseCSV reads and validates a CSV upload.
func ParseCSV(r io.Reader) ([]models.Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return parseRows(rows)
}

// ParseXLSX reads and validates a spreadsheet upload; only the first sheet
// is considered.
func ParseXLSX(r io.Reader) ([]models.Bar, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]models.Bar, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 1 {
		return nil, ErrEmptyFile
	}

	bars := make([]models.Bar, 0, len(rows)-1)
	for i, row := range rows[1:] {
		bar, err := parseBarRow(row, idx)
		if err != nil {
			// Header is row 1, so data row i is file row i+2.
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// columnIndex maps normalized header names to their positions and verifies
// that every required column is present. Extra columns are ignored.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	var missing []string
	for _, col := range models.Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func parseBarRow(row []string, idx map[string]int) (models.Bar, error) {
	var bar models.Bar

	get := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("missing %s value", col)
		}
		return strings.TrimSpace(row[i]), nil
	}

	dateStr, err := get("date")
	if err != nil {
		return bar, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return bar, err
	}
	bar.Date = date

	for _, col := range []string{"open", "high", "low", "close"} {
		raw, err := get(col)
		if err != nil {
			return bar, err
		}
		price, err := parsePrice(raw)
		if err != nil {
			return bar, fmt.Errorf("invalid %s %q: %w", col, raw, err)
		}
		if price < 0 {
			return bar, fmt.Errorf("negative %s: %v", col, price)
		}
		switch col {
		case "open":
			bar.Open = price
		case "high":
			bar.High = price
		case "low":
			bar.Low = price
		case "close":
			bar.Close = price
		}
	}

	volRaw, err := get("volume")
	if err != nil {
		return bar, err
	}
	volume, err := parsePrice(volRaw)
	if err != nil {
		return bar, fmt.Errorf("invalid volume %q: %w", volRaw, err)
	}
	if volume < 0 {
		return bar, fmt.Errorf("negative volume: %v", volume)
	}
	bar.Volume = int64(volume)

	return bar, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}

// parsePrice accepts both dot-decimal and comma-decimal notation.
func parsePrice(s string) (float64, error) {
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
