package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/frasig/pkg/domain"
)

// TreeOverlay marks nodes to highlight in the diagram.
type TreeOverlay struct {
	// Synthetic lists nodes that did not exist in the raw parse (e.g. wrapping verb phrases).
	Synthetic []*domain.Node
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) of a parse tree.
// It applies semantic styling:
// - Phrase: [Rectangle]
// - Preterminal (tag over a single word): ([Stadium])
// - Leaf token: (Rounded)
// Node IDs are assigned in pre-order (n0, n1, ...), so output is deterministic.
func GenerateMermaid(tree *domain.Node, overlay *TreeOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if tree == nil {
		return sb.String()
	}

	ids := make(map[*domain.Node]string)
	next := 0
	tree.Walk(func(n *domain.Node, _ int) {
		ids[n] = fmt.Sprintf("n%d", next)
		next++
	})

	var edges []string
	tree.Walk(func(n *domain.Node, _ int) {
		id := ids[n]

		opener, closer := "[", "]"
		switch {
		case n.Leaf:
			opener, closer = "(", ")"
		case isPreterminal(n):
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(n.Label), closer))

		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("    %s --> %s\n", id, ids[c]))
		}
	})
	for _, e := range edges {
		sb.WriteString(e)
	}

	// Apply Overlay Styles
	if overlay != nil && len(overlay.Synthetic) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef synthetic fill:#fff8e1,stroke:#f9a825,stroke-dasharray:4 2,color:#000;\n")
		for _, n := range overlay.Synthetic {
			if id, ok := ids[n]; ok {
				sb.WriteString(fmt.Sprintf("    class %s synthetic;\n", id))
			}
		}
	}

	return sb.String()
}

func isPreterminal(n *domain.Node) bool {
	if len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if !c.Leaf {
			return false
		}
	}
	return true
}

// escapeLabel makes a label safe inside a quoted Mermaid node text.
func escapeLabel(label string) string {
	r := strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;")
	return r.Replace(label)
}
