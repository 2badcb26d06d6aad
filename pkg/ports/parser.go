package ports

import (
	"context"

	"github.com/aretw0/frasig/pkg/domain"
)

// SentenceParser is the segmentation and constituency parsing collaborator.
// Implementations hold the loaded model; they are created once per process
// and must be safe for concurrent use.
type SentenceParser interface {
	// Parse returns one entry per detected sentence, in input order.
	Parse(ctx context.Context, text string) ([]domain.Sentence, error)
}
