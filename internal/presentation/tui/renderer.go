package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// A width of 0 keeps glamour's default word wrap.
func NewRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Report formats an analysis as a markdown document.
func Report(a *domain.Analysis) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Resultat för: *%q*\n\n", a.Span)

	sb.WriteString("## Träd\n\n```\n")
	sb.WriteString(a.Bracketed)
	sb.WriteString("\n```\n\n")

	sb.WriteString("## Struktur\n\n```\n")
	sb.WriteString(bracket.Skeleton(a.Tree))
	sb.WriteString("\n```\n\n")

	sb.WriteString("## Parser\n\n```\n")
	sb.WriteString(bracket.Format(a.Raw))
	sb.WriteString("\n```\n")

	switch {
	case a.Discarded == 1:
		sb.WriteString("\n> 1 ytterligare mening ignorerades.\n")
	case a.Discarded > 1:
		fmt.Fprintf(&sb, "\n> %d ytterligare meningar ignorerades.\n", a.Discarded)
	}
	return sb.String()
}
