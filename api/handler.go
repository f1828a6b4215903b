package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockdash/stockdash/analysis"
	"github.com/stockdash/stockdash/chart"
	"github.com/stockdash/stockdash/ingest"
	"github.com/stockdash/stockdash/models"
	"github.com/stockdash/stockdash/store"
)

// Handler serves the upload/analyze API over a dataset store.
type Handler struct {
	datasets      store.Datasets
	charts        *chart.Cache
	defaultWindow int
}

// NewHandler wires the API over the given store.
func NewHandler(datasets store.Datasets, charts *chart.Cache, defaultWindow int) *Handler {
	return &Handler{datasets: datasets, charts: charts, defaultWindow: defaultWindow}
}

type analyzeParams struct {
	SMAWindow int `json:"sma_window"`
}

type analyzeResponse struct {
	*analysis.Result
	Chart string `json:"chart"`
}

// Upload accepts a multipart OHLCV file and makes it the current dataset.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	bars, err := ingest.ParseUpload(file.Filename, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate before replacing the current dataset, so a bad upload
	// cannot clobber a good one.
	ts, err := analysis.NewTimeSeries(bars)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.datasets.Save(file.Filename, ts.Bars()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	dates := ts.Dates()

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"rows":    ts.Len(),
		"columns": models.Columns,
		"date_range": gin.H{
			"start": dates[0].Format("2006-01-02"),
			"end":   dates[len(dates)-1].Format("2006-01-02"),
		},
	})
}

// Analyze runs the full pipeline over the current dataset.
func (h *Handler) Analyze(c *gin.Context) {
	params := analyzeParams{SMAWindow: h.defaultWindow}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if params.SMAWindow == 0 {
			params.SMAWindow = h.defaultWindow
		}
	}

	ds, err := h.datasets.Current()
	if err != nil {
		if errors.Is(err, store.ErrNoDataset) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No data uploaded. Upload a file first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ts, err := analysis.NewTimeSeries(ds.Bars)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := analysis.Analyze(ts, params.SMAWindow)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	encoded, err := h.renderChart(ds, ts, result, params.SMAWindow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{Result: result, Chart: encoded})
}

func (h *Handler) renderChart(ds store.Dataset, ts *analysis.TimeSeries, result *analysis.Result, window int) (string, error) {
	key := fmt.Sprintf("%s|%d|%d", ds.Name, ds.UploadedAt.UnixNano(), window)
	if img, ok := h.charts.Get(key); ok {
		return base64.StdEncoding.EncodeToString(img), nil
	}

	dates := make([]string, ts.Len())
	for i, d := range ts.Dates() {
		dates[i] = d.Format("2006-01-02")
	}
	img, err := chart.Render(ds.Name, dates, ts.Closes(), result.SMA.Values, window)
	if err != nil {
		if errors.Is(err, chart.ErrNotEnoughPoints) {
			return "", nil
		}
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	h.charts.Set(key, img)
	return base64.StdEncoding.EncodeToString(img), nil
}

// Validate runs the built-in self checks against a known fixture series
// and reports each case.
func (h *Handler) Validate(c *gin.Context) {
	closes := []float64{100, 102, 101, 103, 105, 104, 106, 108, 107, 109}
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, cl := range closes {
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   cl - 1,
			High:   cl + 1,
			Low:    cl - 2,
			Close:  cl,
			Volume: int64(1000 + 10*i),
		}
	}

	ts, err := analysis.NewTimeSeries(bars)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	result, err := analysis.Analyze(ts, 3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type testCase struct {
		Name     string      `json:"name"`
		Passed   bool        `json:"passed"`
		Expected interface{} `json:"expected"`
		Actual   interface{} `json:"actual"`
	}

	sma := result.SMA.Values
	cases := []testCase{
		{
			Name:     "sma_first_defined_value",
			Expected: 101.0,
			Actual:   deref(sma[2]),
			Passed:   sma[2] != nil && *sma[2] == 101.0,
		},
		{
			Name:     "sma_last_value",
			Expected: 108.0,
			Actual:   deref(sma[len(sma)-1]),
			Passed:   sma[len(sma)-1] != nil && *sma[len(sma)-1] == 108.0,
		},
		{
			Name:     "max_profit_total",
			Expected: 12.0,
			Actual:   result.MaxProfit.TotalProfit,
			Passed:   result.MaxProfit.TotalProfit == 12.0,
		},
		{
			Name:     "max_profit_transactions",
			Expected: 6,
			Actual:   len(result.MaxProfit.Transactions),
			Passed:   len(result.MaxProfit.Transactions) == 6,
		},
		{
			Name:     "upward_runs",
			Expected: 4,
			Actual:   result.RunsAnalysis.TotalUpwardRuns,
			Passed:   result.RunsAnalysis.TotalUpwardRuns == 4,
		},
		{
			Name:     "downward_runs",
			Expected: 3,
			Actual:   result.RunsAnalysis.TotalDownwardRuns,
			Passed:   result.RunsAnalysis.TotalDownwardRuns == 3,
		},
		{
			Name:     "total_days",
			Expected: 10,
			Actual:   result.Summary.TotalDays,
			Passed:   result.Summary.TotalDays == 10,
		},
	}

	passed := 0
	for _, tc := range cases {
		if tc.Passed {
			passed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"test_cases": cases,
		"summary": gin.H{
			"total":     len(cases),
			"passed":    passed,
			"failed":    len(cases) - passed,
			"pass_rate": float64(passed) / float64(len(cases)),
		},
	})
}

func deref(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// SetupRoutes builds the gin engine with all API routes registered.
func SetupRoutes(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/upload", h.Upload)
	r.POST("/analyze", h.Analyze)
	r.POST("/validate", h.Validate)

	return r
}
