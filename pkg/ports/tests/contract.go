package tests

import (
	"context"
	"testing"

	"github.com/aretw0/frasig/pkg/ports"
)

// SentenceParserContractTest is a reusable test suite that verifies if an adapter complies with ports.SentenceParser.
// known maps single sentences to the bracket parse the adapter is expected to return for them.
func SentenceParserContractTest(t *testing.T, parser ports.SentenceParser, known map[string]string) {
	t.Helper()
	ctx := context.Background()

	// 1. Known sentences come back as exactly one span
	t.Run("Parse_Known", func(t *testing.T) {
		for text, want := range known {
			got, err := parser.Parse(ctx, text)
			if err != nil {
				t.Fatalf("unexpected error parsing %q: %v", text, err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 sentence for %q, got %d", text, len(got))
			}
			if got[0].Parse != want {
				t.Errorf("parse mismatch for %q. got %q, want %q", text, got[0].Parse, want)
			}
			if got[0].Text == "" {
				t.Errorf("span text for %q is empty", text)
			}
		}
	})

	// 2. Results are never nil on success
	t.Run("Parse_Empty", func(t *testing.T) {
		got, err := parser.Parse(ctx, "")
		if err != nil {
			t.Fatalf("unexpected error parsing empty text: %v", err)
		}
		if got == nil {
			t.Error("expected empty slice, got nil")
		}
	})

	// 3. A cancelled context stops the call
	t.Run("Parse_Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		for text := range known {
			if _, err := parser.Parse(cctx, text); err == nil {
				t.Errorf("expected error for cancelled context on %q, got nil", text)
			}
			break
		}
	})
}
