package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/frasig"
	"github.com/aretw0/frasig/internal/config"
	"github.com/aretw0/frasig/pkg/adapters/memory"
	"github.com/aretw0/frasig/pkg/adapters/redis"
	"github.com/aretw0/frasig/pkg/adapters/remote"
	"github.com/aretw0/frasig/pkg/labels"
	"github.com/aretw0/frasig/pkg/normalize"
	"github.com/aretw0/frasig/pkg/observability"
	"github.com/aretw0/frasig/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime bundles the engine with what the commands need around it.
type Runtime struct {
	Engine *frasig.Engine
	Labels labels.Table
	// Ping probes the parser and cache backends. Always non-nil.
	Ping func(ctx context.Context) error
}

// Close releases the engine's collaborators.
func (r *Runtime) Close() error {
	return r.Engine.Close()
}

type pinger interface {
	Ping(ctx context.Context) error
}

// CreateEngine initializes a FRASIG engine with standard CLI conventions.
// Metrics are registered with reg when it is not nil.
func CreateEngine(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Parser: fixtures are the explicit offline mode and win over a URL
	parser, err := createParser(cfg.Parser, logger)
	if err != nil {
		return nil, err
	}

	// 2. Labels & Normalizer
	table := labels.Default().Merge(cfg.Labels)

	engineOpts := []frasig.Option{
		frasig.WithLogger(logger),
		frasig.WithMaxInputSize(cfg.MaxInputSize),
		frasig.WithNormalizer(normalize.New(normalize.WithLabels(table))),
		frasig.WithLifecycleHooks(observability.LogHooks(logger)),
	}

	// 3. Cache
	cache := createCache(cfg.Cache)
	if cache != nil {
		engineOpts = append(engineOpts, frasig.WithCache(cache))
	}

	// 4. Metrics
	if reg != nil {
		engineOpts = append(engineOpts, frasig.WithLifecycleHooks(observability.NewMetrics(reg).Hooks()))
	}

	engine, err := frasig.New(parser, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return &Runtime{
		Engine: engine,
		Labels: table,
		Ping:   pingAll(parser, cache),
	}, nil
}

func createParser(cfg config.ParserConfig, logger *slog.Logger) (ports.SentenceParser, error) {
	if cfg.Fixtures != "" {
		p, err := memory.LoadFixtures(cfg.Fixtures)
		if err != nil {
			return nil, err
		}
		logger.Info("Using fixture parser", "path", cfg.Fixtures, "sentences", p.Len())
		return p, nil
	}

	c, err := remote.New(cfg.URL,
		remote.WithTimeout(cfg.Timeout),
		remote.WithRateLimit(cfg.Rate, cfg.Burst),
		remote.WithMaxConcurrent(cfg.Concurrency),
		remote.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating parser client: %w", err)
	}
	logger.Info("Using parser service", "url", cfg.URL)
	return c, nil
}

func createCache(cfg config.CacheConfig) ports.ParseCache {
	switch {
	case cfg.Disabled:
		return nil
	case cfg.RedisAddr != "":
		return redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.TTL))
	}
	return memory.NewCache(cfg.TTL, memory.WithMaxEntries(cfg.MaxEntries))
}

// pingAll checks every collaborator that can be probed.
func pingAll(deps ...any) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		for _, d := range deps {
			if p, ok := d.(pinger); ok {
				if err := p.Ping(ctx); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
