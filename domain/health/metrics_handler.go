package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/pagesmith-app/pagesmith/internal/tasks"
)

// MetricsHandler reports generation throughput: account status counts from
// the database and dispatcher counters from the worker pool.
type MetricsHandler struct {
	db         bun.IDB
	dispatcher *tasks.Dispatcher
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(db bun.IDB, dispatcher *tasks.Dispatcher) *MetricsHandler {
	return &MetricsHandler{
		db:         db,
		dispatcher: dispatcher,
	}
}

// GenerationMetrics summarizes generation state across all accounts
type GenerationMetrics struct {
	Accounts   StatusCounts  `json:"accounts"`
	Dispatcher tasks.Metrics `json:"dispatcher"`
	Timestamp  string        `json:"timestamp"`
}

// StatusCounts holds per-status account counts
type StatusCounts struct {
	Idle       int64 `json:"idle"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Error      int64 `json:"error"`
	Total      int64 `json:"total"`
}

// GenerationMetrics returns generation metrics
// GET /api/metrics/generation
func (h *MetricsHandler) GenerationMetrics(c echo.Context) error {
	var counts StatusCounts
	err := h.db.NewSelect().
		TableExpr("accounts").
		ColumnExpr("COUNT(*) FILTER (WHERE status = 'idle') AS idle").
		ColumnExpr("COUNT(*) FILTER (WHERE status = 'processing') AS processing").
		ColumnExpr("COUNT(*) FILTER (WHERE status = 'completed') AS completed").
		ColumnExpr("COUNT(*) FILTER (WHERE status = 'error') AS error").
		ColumnExpr("COUNT(*) AS total").
		Scan(c.Request().Context(),
			&counts.Idle, &counts.Processing, &counts.Completed, &counts.Error, &counts.Total)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GenerationMetrics{
		Accounts:   counts,
		Dispatcher: h.dispatcher.Metrics(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
