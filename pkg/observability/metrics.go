package observability

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/frasig/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by the engine hooks.
type Metrics struct {
	Analyses      *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	Discarded     prometheus.Counter
	ParseCache    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frasig_analyses_total",
				Help: "Total number of sentence analyses by outcome",
			},
			[]string{"outcome"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "frasig_stage_duration_seconds",
				Help:    "Duration of analysis pipeline stages",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		Discarded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "frasig_discarded_sentences_total",
				Help: "Sentences detected after the first one and ignored",
			},
		),
		ParseCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frasig_parse_cache_total",
				Help: "Parse cache lookups by result",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.Analyses, m.StageDuration, m.Discarded, m.ParseCache)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStage: func(_ context.Context, e *domain.StageEvent) {
			m.StageDuration.WithLabelValues(string(e.Stage)).Observe(e.Duration.Seconds())
		},
		OnCache: func(_ context.Context, e *domain.CacheEvent) {
			result := "miss"
			if e.Hit {
				result = "hit"
			}
			m.ParseCache.WithLabelValues(result).Inc()
		},
		OnAnalysis: func(_ context.Context, e *domain.AnalysisEvent) {
			m.Analyses.WithLabelValues(Outcome(e.Err)).Inc()
			m.Discarded.Add(float64(e.Discarded))
		},
	}
}

// Outcome classifies an analysis error for metric labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNoSentence):
		return "no_sentence"
	case errors.Is(err, domain.ErrParse):
		return "parse_error"
	case errors.Is(err, domain.ErrDeserialize):
		return "deserialize_error"
	case errors.Is(err, domain.ErrNormalize):
		return "normalize_error"
	case errors.Is(err, domain.ErrRender):
		return "render_error"
	}
	return "error"
}

// LogHooks returns hooks that log stage failures and finished analyses.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStage: func(ctx context.Context, e *domain.StageEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "Stage failed", "analysis_id", e.AnalysisID, "stage", e.Stage, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "Stage done", "analysis_id", e.AnalysisID, "stage", e.Stage, "duration", e.Duration)
		},
		OnAnalysis: func(ctx context.Context, e *domain.AnalysisEvent) {
			logger.DebugContext(ctx, "Analysis finished", "analysis_id", e.AnalysisID, "outcome", Outcome(e.Err), "discarded", e.Discarded)
		},
	}
}
