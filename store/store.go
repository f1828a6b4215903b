package store

import (
	"errors"
	"sync"
	"time"

	"github.com/stockdash/stockdash/models"
)

// ErrNoDataset is returned when an analysis is requested before any upload.
var ErrNoDataset = errors.New("no dataset uploaded")

// Dataset is an immutable snapshot of an uploaded OHLCV series.
type Dataset struct {
	Name       string
	Bars       []models.Bar
	UploadedAt time.Time
}

// Datasets holds the current uploaded dataset between the upload step and
// the analyze step. Each upload replaces the previous dataset wholesale;
// Current returns a snapshot that later uploads cannot mutate.
type Datasets interface {
	Save(name string, bars []models.Bar) (Dataset, error)
	Current() (Dataset, error)
}

// Memory is the in-process Datasets implementation used when no database
// is configured.
type Memory struct {
	mu      sync.Mutex
	current *Dataset
}

// NewMemory creates an empty in-memory dataset store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save replaces the current dataset.
func (m *Memory) Save(name string, bars []models.Bar) (Dataset, error) {
	ds := Dataset{
		Name:       name,
		Bars:       copyBars(bars),
		UploadedAt: time.Now(),
	}
	m.mu.Lock()
	m.current = &ds
	m.mu.Unlock()
	return snapshot(ds), nil
}

// Current returns a snapshot of the current dataset.
func (m *Memory) Current() (Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Dataset{}, ErrNoDataset
	}
	return snapshot(*m.current), nil
}

func snapshot(ds Dataset) Dataset {
	return Dataset{
		Name:       ds.Name,
		Bars:       copyBars(ds.Bars),
		UploadedAt: ds.UploadedAt,
	}
}

func copyBars(bars []models.Bar) []models.Bar {
	out := make([]models.Bar, len(bars))
	copy(out, bars)
	return out
}
