package ports

import (
	"context"
	"errors"

	"github.com/aretw0/frasig/pkg/domain"
)

// ErrCacheMiss is returned by ParseCache.Get when nothing is stored for the text.
var ErrCacheMiss = errors.New("cache miss")

// ParseCache stores parser answers keyed by the exact text sent to the parser.
type ParseCache interface {
	// Get returns the cached sentences or ErrCacheMiss.
	Get(ctx context.Context, text string) ([]domain.Sentence, error)

	// Set stores the sentences for text.
	Set(ctx context.Context, text string, sentences []domain.Sentence) error
}
