package observability

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/frasig/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnCache(ctx, &domain.CacheEvent{Hit: false})
	hooks.OnCache(ctx, &domain.CacheEvent{Hit: true})
	hooks.OnCache(ctx, &domain.CacheEvent{Hit: true})
	hooks.OnStage(ctx, &domain.StageEvent{Stage: domain.StageParse, Duration: 20 * time.Millisecond})
	hooks.OnStage(ctx, &domain.StageEvent{Stage: domain.StageRender, Duration: time.Millisecond})
	hooks.OnAnalysis(ctx, &domain.AnalysisEvent{Discarded: 2})
	hooks.OnAnalysis(ctx, &domain.AnalysisEvent{Err: fmt.Errorf("wrap: %w", domain.ErrDeserialize)})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseCache.WithLabelValues("miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParseCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("deserialize_error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Discarded))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StageDuration))

	expected := `
# HELP frasig_discarded_sentences_total Sentences detected after the first one and ignored
# TYPE frasig_discarded_sentences_total counter
frasig_discarded_sentences_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "frasig_discarded_sentences_total"))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrNoSentence, "no_sentence"},
		{fmt.Errorf("x: %w", domain.ErrParse), "parse_error"},
		{domain.ErrDeserialize, "deserialize_error"},
		{domain.ErrNormalize, "normalize_error"},
		{fmt.Errorf("x: %w", domain.ErrRender), "render_error"},
		{context.Canceled, "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), "%v", tt.err)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	hooks := LogHooks(logger)

	hooks.OnStage(context.Background(), &domain.StageEvent{AnalysisID: "a1", Stage: domain.StageParse})
	hooks.OnStage(context.Background(), &domain.StageEvent{AnalysisID: "a2", Stage: domain.StageRender, Err: domain.ErrRender})

	out := buf.String()
	assert.NotContains(t, out, "a1")
	assert.Contains(t, out, "analysis_id=a2")
	assert.Contains(t, out, "stage=render")
}
