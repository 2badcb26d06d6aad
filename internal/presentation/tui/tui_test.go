package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T, discarded int) *domain.Analysis {
	t.Helper()
	raw, err := bracket.Parse("(S (NN Hunden) (VB sprang))")
	require.NoError(t, err)
	tree, err := bracket.Parse("(Sats (Subst Hunden) (VP (Verb sprang)))")
	require.NoError(t, err)
	return &domain.Analysis{
		Span:      "Hunden sprang.",
		Raw:       raw,
		Tree:      tree,
		Bracketed: bracket.Format(tree),
		Discarded: discarded,
	}
}

func TestReport(t *testing.T) {
	md := Report(sample(t, 0))

	assert.Contains(t, md, `# Resultat för: *"Hunden sprang."*`)
	assert.Contains(t, md, "(Sats (Subst Hunden) (VP (Verb sprang)))")
	assert.Contains(t, md, "(Sats Subst (VP Verb))")
	assert.Contains(t, md, "(S (NN Hunden) (VB sprang))")
	assert.NotContains(t, md, "ignorerades")

	assert.Contains(t, Report(sample(t, 1)), "1 ytterligare mening ignorerades")
	assert.Contains(t, Report(sample(t, 3)), "3 ytterligare meningar ignorerades")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := render(Report(sample(t, 0)))
	require.NoError(t, err)
	assert.Contains(t, out, "Hunden")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|  ___|")
}
