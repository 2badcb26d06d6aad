package domain

import (
	"context"
	"time"
)

// Stage names one step of the analysis pipeline.
type Stage string

const (
	StageParse       Stage = "parse"
	StageDeserialize Stage = "deserialize"
	StageNormalize   Stage = "normalize"
	StageRender      Stage = "render"
)

// StageEvent is emitted when a pipeline stage finishes.
type StageEvent struct {
	AnalysisID string        `json:"analysis_id"`
	Stage      Stage         `json:"stage"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// CacheEvent is emitted when the parse cache is consulted.
type CacheEvent struct {
	AnalysisID string `json:"analysis_id"`
	Hit        bool   `json:"hit"`
}

// AnalysisEvent is emitted once per analysis, successful or not.
type AnalysisEvent struct {
	AnalysisID string `json:"analysis_id"`
	Discarded  int    `json:"discarded"`
	Err        error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnStage    func(context.Context, *StageEvent)
	OnCache    func(context.Context, *CacheEvent)
	OnAnalysis func(context.Context, *AnalysisEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStage:    chain(h.OnStage, other.OnStage),
		OnCache:    chain(h.OnCache, other.OnCache),
		OnAnalysis: chain(h.OnAnalysis, other.OnAnalysis),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
