package svg

import (
	"strings"
	"testing"

	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, tree string) string {
	t.Helper()
	n, err := bracket.Parse(tree)
	require.NoError(t, err)
	out, err := New().Render(n)
	require.NoError(t, err)
	return out
}

func TestRender_Fragment(t *testing.T) {
	out := render(t, "(Sats (Subst hund) (VP (Verb sprang)))")

	assert.True(t, strings.HasPrefix(out, "<svg"), "prolog must be stripped: %q", out[:20])
	assert.NotContains(t, out, "<?xml")
	assert.True(t, strings.HasSuffix(out, "</svg>"))
	assert.Contains(t, out, "viewBox=")

	for _, label := range []string{"Sats", "Subst", "hund", "VP", "Verb", "sprang"} {
		assert.Contains(t, out, ">"+label+"</text>")
	}
	assert.Equal(t, 6, strings.Count(out, "<text"))
	assert.Equal(t, 5, strings.Count(out, "<line"))
}

func TestRender_EscapesText(t *testing.T) {
	out := render(t, "(S (NN <b>&))")
	assert.Contains(t, out, "&lt;b&gt;&amp;")
	assert.NotContains(t, out, "<b>")
}

func TestRender_Nil(t *testing.T) {
	_, err := New().Render(nil)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestLayout_ParentCenteredOverChildren(t *testing.T) {
	r := New()
	tree, err := bracket.Parse("(S (NN a) (NN b) (NN c))")
	require.NoError(t, err)

	root := r.measure(tree)
	r.place(root, 0, 0)

	require.Len(t, root.children, 3)
	first, last := root.children[0], root.children[2]
	assert.Equal(t, (first.x+last.x)/2, root.x)
	assert.Less(t, first.x, root.children[1].x)
	assert.Less(t, root.children[1].x, last.x)
	assert.Greater(t, first.y, root.y)
}

func TestLayout_WideLabelReservesSpace(t *testing.T) {
	r := New()
	narrow := r.measure(domain.NewNode("S", domain.NewLeaf("a")))
	wide := r.measure(domain.NewNode("Determinerare", domain.NewLeaf("a")))
	assert.Greater(t, wide.width, narrow.width)
}

func TestRender_EmptyPhrase(t *testing.T) {
	out := render(t, "(S (XP))")
	assert.Equal(t, 2, strings.Count(out, "<text"))
}
