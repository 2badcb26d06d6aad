package frasig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/frasig/internal/presentation/svg"
	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/input"
	"github.com/aretw0/frasig/pkg/normalize"
	"github.com/aretw0/frasig/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"
)

// Version is the release of the FRASIG analyser.
const Version = "0.4.0"

// Engine is the high-level entry point for the FRASIG library.
// It owns the parser collaborator for its whole lifetime and runs the
// parse → deserialize → normalize → render pipeline for each sentence.
type Engine struct {
	parser     ports.SentenceParser
	renderer   ports.TreeRenderer
	cache      ports.ParseCache
	normalizer *normalize.Normalizer
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	now        func() time.Time
	maxInput   int

	inflight singleflight.Group
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithRenderer replaces the default SVG renderer.
func WithRenderer(r ports.TreeRenderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithCache consults c before calling the parser and stores its answers.
func WithCache(c ports.ParseCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithNormalizer replaces the default Swedish normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(e *Engine) {
		e.normalizer = n
	}
}

// WithMaxInputSize rejects submissions longer than n bytes.
// Zero keeps input.DefaultMaxSize.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInput = n
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine around an already loaded parser.
// The parser is treated as read-only and is closed by Engine.Close.
func New(parser ports.SentenceParser, opts ...Option) (*Engine, error) {
	if parser == nil {
		return nil, fmt.Errorf("a sentence parser is required")
	}

	eng := &Engine{
		parser:     parser,
		renderer:   svg.New(),
		normalizer: normalize.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return eng, nil
}

// Normalizer exposes the normalizer used by the engine.
func (e *Engine) Normalizer() *normalize.Normalizer {
	return e.normalizer
}

// Analyze runs the full pipeline for one submitted sentence.
//
// Only the first sentence span the parser detects is analysed; further spans
// are counted in Analysis.Discarded. Errors wrap domain.ErrParse,
// domain.ErrDeserialize, domain.ErrNormalize or domain.ErrRender depending on
// the failing stage.
func (e *Engine) Analyze(ctx context.Context, sentence string) (result *domain.Analysis, err error) {
	a := &domain.Analysis{
		ID:        uuid.NewString(),
		Input:     sentence,
		CreatedAt: e.now(),
	}
	logger := e.logger.With("analysis_id", a.ID)

	defer func() {
		if e.hooks.OnAnalysis != nil {
			e.hooks.OnAnalysis(ctx, &domain.AnalysisEvent{AnalysisID: a.ID, Discarded: a.Discarded, Err: err})
		}
	}()

	clean, err := input.Sanitize(sentence, e.maxInput)
	if err != nil {
		return nil, fmt.Errorf("%w: input rejected: %w", domain.ErrParse, err)
	}
	text := norm.NFC.String(strings.TrimSpace(clean))
	if text == "" {
		return nil, domain.ErrNoSentence
	}

	var sentences []domain.Sentence
	err = e.stage(ctx, a.ID, domain.StageParse, func() error {
		var perr error
		sentences, perr = e.sentences(ctx, a.ID, text)
		return perr
	})
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, domain.ErrNoSentence
	}

	first := sentences[0]
	a.Span = first.Text
	a.Discarded = len(sentences) - 1
	if a.Discarded > 0 {
		logger.Debug("Ignoring additional sentences", "discarded", a.Discarded)
	}

	err = e.stage(ctx, a.ID, domain.StageDeserialize, func() error {
		var derr error
		a.Raw, derr = bracket.Parse(first.Parse)
		return derr
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, a.ID, domain.StageNormalize, func() error {
		a.Tree = e.normalizer.Normalize(a.Raw)
		a.Bracketed = bracket.Format(a.Tree)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, a.ID, domain.StageRender, func() error {
		var rerr error
		a.SVG, rerr = e.renderer.Render(a.Tree)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Analysis complete", "span", a.Span, "tree", a.Bracketed)
	return a, nil
}

// sentences asks the cache, then the parser. Concurrent requests for the same
// text share one parser call.
func (e *Engine) sentences(ctx context.Context, id, text string) ([]domain.Sentence, error) {
	if e.cache != nil {
		cached, err := e.cache.Get(ctx, text)
		hit := err == nil
		if e.hooks.OnCache != nil {
			e.hooks.OnCache(ctx, &domain.CacheEvent{AnalysisID: id, Hit: hit})
		}
		if hit {
			return cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			e.logger.Warn("Parse cache unavailable", "err", err)
		}
	}

	v, err, _ := e.inflight.Do(text, func() (any, error) {
		sentences, err := e.parser.Parse(ctx, text)
		if err != nil {
			return nil, err
		}
		if e.cache != nil {
			if err := e.cache.Set(ctx, text, sentences); err != nil {
				e.logger.Warn("Failed to cache parse", "err", err)
			}
		}
		return sentences, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrParse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	return v.([]domain.Sentence), nil
}

var stageErrors = map[domain.Stage]error{
	domain.StageParse:       domain.ErrParse,
	domain.StageDeserialize: domain.ErrDeserialize,
	domain.StageNormalize:   domain.ErrNormalize,
	domain.StageRender:      domain.ErrRender,
}

// stage runs fn, recovering panics and tagging the error with the stage's sentinel.
func (e *Engine) stage(ctx context.Context, id string, s domain.Stage, fn func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", stageErrors[s], s, r)
		}
		if err != nil && !errors.Is(err, stageErrors[s]) {
			err = fmt.Errorf("%w: %w", stageErrors[s], err)
		}
		if e.hooks.OnStage != nil {
			e.hooks.OnStage(ctx, &domain.StageEvent{AnalysisID: id, Stage: s, Duration: time.Since(start), Err: err})
		}
	}()
	return fn()
}

// Close releases the parser and cache if they hold resources.
func (e *Engine) Close() error {
	var errs []error
	if c, ok := e.parser.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if c, ok := e.cache.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
