package normalize

import (
	"math/rand"
	"testing"

	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/labels"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *domain.Node {
	t.Helper()
	tree, err := bracket.Parse(s)
	require.NoError(t, err)
	return tree
}

func TestNormalize_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		skeleton string
		full     string
	}{
		{
			name:     "Placeholder Dissolved And Verb Wrapped",
			input:    "(S (XP (NN hund) (VB sprang)))",
			skeleton: "(Sats Subst (VP Verb))",
			full:     "(Sats (Subst hund) (VP (Verb sprang)))",
		},
		{
			name:     "Verb Already In Verb Phrase",
			input:    "(VP (VB sprang))",
			skeleton: "(VP Verb)",
			full:     "(VP (Verb sprang))",
		},
		{
			name:     "Unknown Tag Passes Through",
			input:    "(XYZ ord)",
			skeleton: "XYZ",
			full:     "(XYZ ord)",
		},
		{
			name:     "Empty Placeholder Contributes Nothing",
			input:    "(S (XP) (NN katt))",
			skeleton: "(Sats Subst)",
			full:     "(Sats (Subst katt))",
		},
		{
			name:     "Nested Placeholders Dissolve",
			input:    "(S (XP (XP (NN katt)) (XP (XP (JJ svart)))))",
			skeleton: "(Sats Subst Adj)",
			full:     "(Sats (Subst katt) (Adj svart))",
		},
		{
			name:     "Verb Under Sentence Is Wrapped",
			input:    "(S (NP (PN hon)) (VB började) (MAD .))",
			skeleton: "(Sats (NP Pron) (VP Verb) Skilj)",
			full:     "(Sats (NP (Pron hon)) (VP (Verb började)) (Skilj .))",
		},
		{
			name:     "Only Immediate Parent Is Checked",
			input:    "(VP (NP (VB springa)))",
			skeleton: "(VP (NP (VP Verb)))",
			full:     "(VP (NP (VP (Verb springa))))",
		},
		{
			name:     "Verb Beside Others In Verb Phrase",
			input:    "(VP (VB åt) (NP (NN mat)))",
			skeleton: "(VP Verb (NP Subst))",
			full:     "(VP (Verb åt) (NP (Subst mat)))",
		},
		{
			name:     "Placeholder Root Is Kept",
			input:    "(XP (NN hund))",
			skeleton: "(XP Subst)",
			full:     "(XP (Subst hund))",
		},
		{
			name:     "Empty Root Label",
			input:    "( (S (NN katt)))",
			skeleton: "( (Sats Subst))",
			full:     "( (Sats (Subst katt)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tree(mustParse(t, tt.input))
			assert.Equal(t, tt.full, bracket.Format(got))
			assert.Equal(t, tt.skeleton, bracket.Skeleton(got))
		})
	}
}

func TestNormalize_Nil(t *testing.T) {
	assert.Nil(t, Tree(nil))
}

func TestNormalize_Leaf(t *testing.T) {
	got := Tree(domain.NewLeaf("hund"))
	assert.True(t, got.IsLeaf())
	assert.Equal(t, "hund", got.Label)
}

func TestNormalize_SyntheticPhraseHasExactlyOneChild(t *testing.T) {
	got := Tree(mustParse(t, "(S (VB sprang) (VB hoppade))"))
	require.Len(t, got.Children, 2)
	for _, vp := range got.Children {
		assert.Equal(t, "VP", vp.Label)
		require.Len(t, vp.Children, 1)
		assert.Equal(t, "Verb", vp.Children[0].Label)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	input := mustParse(t, "(S (XP (NN hund) (VB sprang)) (XP))")
	before := input.Clone()

	_ = Tree(input)

	if diff := cmp.Diff(before, input); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

func TestNormalize_CustomTagsAndLabels(t *testing.T) {
	n := New(
		WithTags("X", "V", "VG"),
		WithLabels(labels.Table{"S": "Clause", "V": "Verb"}),
	)
	got := n.Normalize(mustParse(t, "(S (X (V ran)) (VG (V sat)))"))
	assert.Equal(t, "(Clause (VG (Verb ran)) (VG (Verb sat)))", bracket.Format(got))
}

// randomTree builds trees over a small tag set, including empty placeholders.
func randomTree(r *rand.Rand, depth int, allowPlaceholder bool) *domain.Node {
	preterminals := []string{"NN", "VB", "JJ", "PN"}
	phrases := []string{"NP", "VP", "PP"}
	if allowPlaceholder {
		phrases = append(phrases, domain.TagPlaceholder, domain.TagPlaceholder)
	}

	if depth <= 0 || r.Intn(3) == 0 {
		tag := preterminals[r.Intn(len(preterminals))]
		return domain.NewNode(tag, domain.NewLeaf("w"))
	}

	tag := phrases[r.Intn(len(phrases))]
	min := 1
	if tag == domain.TagPlaceholder {
		min = 0
	}
	count := min + r.Intn(3)
	children := make([]*domain.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, randomTree(r, depth-1, allowPlaceholder))
	}
	return domain.NewNode(tag, children...)
}

func randomSentence(r *rand.Rand, allowPlaceholder bool) *domain.Node {
	root := domain.NewNode("S")
	for i := 0; i < 1+r.Intn(3); i++ {
		root.Children = append(root.Children, randomTree(r, 4, allowPlaceholder))
	}
	return root
}

func countTag(t *domain.Node, tag string) int {
	count := 0
	t.Walk(func(n *domain.Node, _ int) {
		if !n.Leaf && n.Label == tag {
			count++
		}
	})
	return count
}

// shape erases labels so trees can be compared structurally.
func shape(t *domain.Node) *domain.Node {
	if t.Leaf {
		return domain.NewLeaf(t.Label)
	}
	out := domain.NewNode("")
	for _, c := range t.Children {
		out.Children = append(out.Children, shape(c))
	}
	return out
}

// hasBareVerb reports whether a verb sits directly under anything but a verb phrase.
func hasBareVerb(t *domain.Node) bool {
	for _, c := range t.Children {
		if !c.Leaf && c.Label == domain.TagVerb && t.Label != domain.TagVerbPhrase {
			return true
		}
		if hasBareVerb(c) {
			return true
		}
	}
	return false
}

func TestNormalize_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	t.Run("Without Placeholders Only Labels Change", func(t *testing.T) {
		checked := 0
		for i := 0; i < 300; i++ {
			input := randomSentence(r, false)
			if hasBareVerb(input) {
				continue
			}
			checked++
			got := Tree(input)
			if diff := cmp.Diff(shape(input), shape(got)); diff != "" {
				t.Fatalf("structure changed for %s (-want +got):\n%s", bracket.Format(input), diff)
			}
		}
		require.NotZero(t, checked)
	})

	t.Run("No Placeholder Remains", func(t *testing.T) {
		for i := 0; i < 300; i++ {
			input := randomSentence(r, true)
			got := Tree(input)
			assert.Zero(t, countTag(got, domain.TagPlaceholder), bracket.Format(input))
		}
	})

	t.Run("Tokens Are Preserved In Order", func(t *testing.T) {
		for i := 0; i < 300; i++ {
			input := randomSentence(r, true)
			assert.Equal(t, input.Tokens(), Tree(input).Tokens())
		}
	})

	t.Run("Every Verb Sits In A Verb Phrase", func(t *testing.T) {
		for i := 0; i < 300; i++ {
			got := Tree(randomSentence(r, true))
			var check func(parent *domain.Node)
			check = func(parent *domain.Node) {
				for _, c := range parent.Children {
					if !c.Leaf && c.Label == "Verb" {
						assert.Equal(t, "VP", parent.Label, bracket.Format(got))
					}
					check(c)
				}
			}
			check(got)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		for i := 0; i < 300; i++ {
			once := Tree(randomSentence(r, true))
			twice := Tree(once)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("second pass changed %s (-once +twice):\n%s", bracket.Format(once), diff)
			}
		}
	})
}

func TestNormalize_PlaceholderChildrenTakeItsPosition(t *testing.T) {
	got := Tree(mustParse(t, "(S (NN a) (XP (JJ b) (PN c)) (NN d))"))
	var labelsInOrder []string
	for _, c := range got.Children {
		labelsInOrder = append(labelsInOrder, c.Label)
	}
	assert.Equal(t, []string{"Subst", "Adj", "Pron", "Subst"}, labelsInOrder)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got.Tokens())
}

func TestNormalizeTrace_ReportsSyntheticPhrases(t *testing.T) {
	got, synthetic := New().NormalizeTrace(mustParse(t, "(S (XP (NN hund) (VB sprang)) (VP (VB satt)))"))

	require.Len(t, synthetic, 1)
	assert.Same(t, got.Children[1], synthetic[0])
	assert.Equal(t, "(VP (Verb sprang))", bracket.Format(synthetic[0]))
	assert.Equal(t, bracket.Format(Tree(mustParse(t, "(S (XP (NN hund) (VB sprang)) (VP (VB satt)))"))), bracket.Format(got))
}
