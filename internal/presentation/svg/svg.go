// Package svg draws parse trees as inline SVG fragments.
package svg

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/frasig/pkg/domain"
	svgo "github.com/ajstarks/svgo"
)

// Style controls the geometry of the drawing.
type Style struct {
	FontSize    int
	CharWidth   int // approximate advance of one glyph
	NodePadding int // horizontal space reserved around each label
	LevelHeight int
	Margin      int
}

// DefaultStyle matches the look of the web form.
var DefaultStyle = Style{
	FontSize:    14,
	CharWidth:   9,
	NodePadding: 18,
	LevelHeight: 56,
	Margin:      20,
}

// Renderer implements ports.TreeRenderer.
type Renderer struct {
	style Style
}

// New creates a Renderer with DefaultStyle.
func New() *Renderer {
	return &Renderer{style: DefaultStyle}
}

// NewWithStyle creates a Renderer with a custom style.
func NewWithStyle(s Style) *Renderer {
	return &Renderer{style: s}
}

// box is the laid-out position of one node.
type box struct {
	node     *domain.Node
	x, y     int // center of the label baseline
	width    int // width of the subtree
	children []*box
}

// Render lays out tree top-down and returns an <svg> element without XML prolog.
func (r *Renderer) Render(tree *domain.Node) (string, error) {
	if tree == nil {
		return "", fmt.Errorf("%w: empty tree", domain.ErrRender)
	}

	root := r.measure(tree)
	r.place(root, r.style.Margin, 0)

	width := root.width + 2*r.style.Margin
	height := tree.Depth()*r.style.LevelHeight + r.style.Margin

	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Start(width, height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height),
		`class="frasig-tree"`,
	)
	canvas.Gstyle(fmt.Sprintf("font-family:'Segoe UI',sans-serif;font-size:%dpx;text-anchor:middle", r.style.FontSize))
	r.draw(canvas, root)
	canvas.Gend()
	canvas.End()

	out := buf.String()
	i := strings.Index(out, "<svg")
	if i < 0 {
		return "", fmt.Errorf("%w: no svg element produced", domain.ErrRender)
	}
	return strings.TrimSpace(out[i:]), nil
}

func (r *Renderer) labelWidth(label string) int {
	return utf8.RuneCountInString(label)*r.style.CharWidth + r.style.NodePadding
}

// measure computes subtree widths bottom-up.
func (r *Renderer) measure(n *domain.Node) *box {
	b := &box{node: n}
	sum := 0
	for _, c := range n.Children {
		cb := r.measure(c)
		b.children = append(b.children, cb)
		sum += cb.width
	}
	b.width = max(sum, r.labelWidth(n.Label))
	return b
}

// place assigns coordinates; a parent is centered over its first and last child.
func (r *Renderer) place(b *box, left, depth int) {
	b.y = r.style.Margin + depth*r.style.LevelHeight + r.style.FontSize

	sum := 0
	for _, c := range b.children {
		sum += c.width
	}
	cursor := left + (b.width-sum)/2
	for _, c := range b.children {
		r.place(c, cursor, depth+1)
		cursor += c.width
	}

	if len(b.children) == 0 {
		b.x = left + b.width/2
		return
	}
	b.x = (b.children[0].x + b.children[len(b.children)-1].x) / 2
}

func (r *Renderer) draw(canvas *svgo.SVG, b *box) {
	for _, c := range b.children {
		canvas.Line(b.x, b.y+r.style.FontSize/2, c.x, c.y-r.style.FontSize,
			"stroke:#9aa0a6;stroke-width:1.5")
		r.draw(canvas, c)
	}

	if b.node.Leaf {
		canvas.Text(b.x, b.y, b.node.Label, "fill:#1a73e8;font-style:italic")
		return
	}
	canvas.Text(b.x, b.y, b.node.Label, "fill:#202124;font-weight:600")
}
