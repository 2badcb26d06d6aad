package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/frasig/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunParseCacheContract runs a suite of tests to verify that a ParseCache implementation
// adheres to the defined interface contract.
func RunParseCacheContract(t *testing.T, cache ParseCache) {
	ctx := context.Background()
	text := "Hunden sprang. " + time.Now().Format("20060102150405.000000000")

	sentences := []domain.Sentence{
		{Text: "Hunden sprang.", Parse: "(S (NN Hunden) (VB sprang) (MAD .))"},
		{Text: "Katten satt.", Parse: "(S (NN Katten) (VB satt) (MAD .))"},
	}

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, "never-stored-"+text)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, text, sentences))

		got, err := cache.Get(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, sentences, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		replacement := []domain.Sentence{{Text: "Ny.", Parse: "(S (NN Ny) (MAD .))"}}
		require.NoError(t, cache.Set(ctx, text, replacement))

		got, err := cache.Get(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, replacement, got)
	})

	t.Run("Isolation", func(t *testing.T) {
		stored := []domain.Sentence{{Text: "Original.", Parse: "(S (NN Original))"}}
		require.NoError(t, cache.Set(ctx, "isolation-"+text, stored))
		stored[0].Text = "Mutated."

		got, err := cache.Get(ctx, "isolation-"+text)
		require.NoError(t, err)
		assert.Equal(t, "Original.", got[0].Text)

		got[0].Text = "Mutated again."
		again, err := cache.Get(ctx, "isolation-"+text)
		require.NoError(t, err)
		assert.Equal(t, "Original.", again[0].Text)
	})

	t.Run("Empty Result Is Cached", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "empty-"+text, []domain.Sentence{}))

		got, err := cache.Get(ctx, "empty-"+text)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("concurrent-%d-%s", i, text)
				assert.NoError(t, cache.Set(ctx, key, sentences))
				_, err := cache.Get(ctx, key)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()
	})
}
