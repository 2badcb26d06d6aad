// Package normalize simplifies raw constituency trees for display.
//
// A Normalizer dissolves placeholder phrases, gives every bare verb outside a
// verb phrase a phrase of its own and replaces grammar tags with display
// labels. It never mutates its input.
package normalize

import (
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/labels"
)

// Normalizer rewrites parse trees. The zero value is not usable; use New.
// A Normalizer is safe for concurrent use.
type Normalizer struct {
	placeholder string
	verb        string
	verbPhrase  string
	labels      labels.Table
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLabels sets the table used to relabel nodes.
func WithLabels(t labels.Table) Option {
	return func(n *Normalizer) {
		n.labels = t
	}
}

// WithTags overrides the placeholder, bare verb and verb phrase tags.
func WithTags(placeholder, verb, verbPhrase string) Option {
	return func(n *Normalizer) {
		n.placeholder = placeholder
		n.verb = verb
		n.verbPhrase = verbPhrase
	}
}

// New creates a Normalizer using the Swedish label table and grammar tags by default.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		placeholder: domain.TagPlaceholder,
		verb:        domain.TagVerb,
		verbPhrase:  domain.TagVerbPhrase,
		labels:      labels.Swedish,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var std = New()

// Tree normalizes t with the default configuration.
func Tree(t *domain.Node) *domain.Node {
	return std.Normalize(t)
}

// Normalize returns a rewritten copy of t:
//
//   - a placeholder child is replaced by its own (normalized) children;
//   - a bare verb child whose parent is not a verb phrase is wrapped in a new
//     verb phrase holding only that verb;
//   - every node is relabeled from its original tag.
//
// The parent check looks at the immediate parent's original tag only. A
// placeholder counts as the parent of the children it releases, and a
// placeholder at the root is kept since there is nothing to splice it into.
func (n *Normalizer) Normalize(t *domain.Node) *domain.Node {
	return n.normalize(t, nil)
}

// NormalizeTrace is Normalize that also reports the verb phrases it created.
func (n *Normalizer) NormalizeTrace(t *domain.Node) (*domain.Node, []*domain.Node) {
	var synthetic []*domain.Node
	return n.normalize(t, &synthetic), synthetic
}

func (n *Normalizer) normalize(t *domain.Node, trace *[]*domain.Node) *domain.Node {
	if t == nil {
		return nil
	}
	if t.Leaf {
		return domain.NewLeaf(t.Label)
	}

	children := make([]*domain.Node, 0, len(t.Children))
	for _, c := range t.Children {
		children = n.appendChild(children, t.Label, c, trace)
	}
	return domain.NewNode(n.labels.Lookup(t.Label), children...)
}

func (n *Normalizer) appendChild(dst []*domain.Node, parentTag string, c *domain.Node, trace *[]*domain.Node) []*domain.Node {
	switch {
	case c.Leaf:
		return append(dst, domain.NewLeaf(c.Label))
	case c.Label == n.placeholder:
		for _, gc := range c.Children {
			dst = n.appendChild(dst, c.Label, gc, trace)
		}
		return dst
	case c.Label == n.verb && parentTag != n.verbPhrase:
		vp := domain.NewNode(n.verbPhrase, n.normalize(c, trace))
		if trace != nil {
			*trace = append(*trace, vp)
		}
		return append(dst, vp)
	default:
		return append(dst, n.normalize(c, trace))
	}
}
