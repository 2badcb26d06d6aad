package ports

import "github.com/aretw0/frasig/pkg/domain"

// TreeRenderer produces a graphic fragment for a tree.
type TreeRenderer interface {
	Render(tree *domain.Node) (string, error)
}

// RendererFunc adapts a plain function to TreeRenderer.
type RendererFunc func(tree *domain.Node) (string, error)

// Render calls f(tree).
func (f RendererFunc) Render(tree *domain.Node) (string, error) {
	return f(tree)
}
