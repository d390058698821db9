package ingestion_engine

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/markdave123-py/docsum/internal/core"
)

var (
	ingestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsum_ingest_total",
			Help: "Ingestion pipeline runs by outcome.",
		},
		[]string{"outcome"},
	)

	ingestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docsum_ingest_duration_seconds",
			Help:    "Wall time of one ingestion pipeline run.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
)

func observeIngest(err error, elapsed time.Duration) {
	ingestTotal.WithLabelValues(outcome(err)).Inc()
	ingestDuration.Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, core.ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, core.ErrBadRequest):
		return "bad_request"
	case errors.Is(err, core.ErrDecode):
		return "decode_error"
	case errors.Is(err, core.ErrExtractionFailed):
		return "extraction_failed"
	case errors.Is(err, core.ErrStorage):
		return "storage_error"
	case errors.Is(err, core.ErrTimeout):
		return "timeout"
	case errors.Is(err, core.ErrSummarizationFailed):
		return "summarization_failed"
	default:
		return "error"
	}
}
