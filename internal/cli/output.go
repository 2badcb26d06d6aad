package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/aretw0/frasig/internal/presentation/graph"
	"github.com/aretw0/frasig/internal/presentation/tui"
	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/labels"
	"github.com/aretw0/frasig/pkg/normalize"
	"golang.org/x/term"
)

// Format selects how the analyze command prints a result.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatBracket  Format = "bracket"
	FormatSkeleton Format = "skeleton"
	FormatSVG      Format = "svg"
	FormatMermaid  Format = "mermaid"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatMarkdown, FormatBracket, FormatSkeleton, FormatSVG, FormatMermaid}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats)
	}
	return f, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WriteAnalysis prints a in the requested format.
// Markdown is styled with glamour only when styled is true; otherwise the raw
// markdown is written so that pipes get plain text. n is used to highlight
// the verb phrases the normalizer inserted in the mermaid output.
func WriteAnalysis(w io.Writer, a *domain.Analysis, format Format, styled bool, n *normalize.Normalizer) error {
	var out string
	switch format {
	case FormatBracket:
		out = a.Bracketed + "\n"
	case FormatSkeleton:
		out = bracket.Skeleton(a.Tree) + "\n"
	case FormatSVG:
		out = a.SVG + "\n"
	case FormatMermaid:
		tree, overlay := a.Tree, &graph.TreeOverlay{}
		if n != nil && a.Raw != nil {
			tree, overlay.Synthetic = n.NormalizeTrace(a.Raw)
		}
		out = graph.GenerateMermaid(tree, overlay)
	default:
		out = tui.Report(a)
		if styled {
			render, err := tui.NewRenderer(0)
			if err != nil {
				return err
			}
			if out, err = render(out); err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
		}
	}

	_, err := io.WriteString(w, out)
	return err
}

// WriteLabels prints the label table as aligned "TAG  Label" rows.
func WriteLabels(w io.Writer, t labels.Table) error {
	width := 0
	for _, tag := range t.Tags() {
		width = max(width, len(tag))
	}
	for _, tag := range t.Tags() {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, tag, t[tag]); err != nil {
			return err
		}
	}
	return nil
}
