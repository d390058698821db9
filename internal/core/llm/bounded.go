package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/markdave123-py/docsum/internal/core"
)

var llmCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "docsum_llm_call_duration_seconds",
		Help:    "Duration of outbound LLM generate calls.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	},
	[]string{"outcome"},
)

// Bounded puts a deadline on every Generate call of the wrapped provider.
// A call that runs past it fails with core.ErrTimeout.
type Bounded struct {
	inner   core.LLMProvider
	timeout time.Duration
}

var _ core.LLMProvider = (*Bounded)(nil)

func NewBounded(inner core.LLMProvider, timeout time.Duration) *Bounded {
	return &Bounded{inner: inner, timeout: timeout}
}

func (b *Bounded) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := b.inner.Generate(ctx, systemPrompt, userPrompt)
	elapsed := time.Since(start).Seconds()

	switch {
	case err == nil:
		llmCallDuration.WithLabelValues("ok").Observe(elapsed)
		return out, nil
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		llmCallDuration.WithLabelValues("timeout").Observe(elapsed)
		return "", fmt.Errorf("llm call exceeded %s: %w", b.timeout, core.ErrTimeout)
	default:
		llmCallDuration.WithLabelValues("error").Observe(elapsed)
		return "", err
	}
}
