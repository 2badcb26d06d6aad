// Package bracket reads and writes constituency trees in the parenthesized
// notation produced by the parser, e.g. "(S (NP (NN hund)) (VB sprang))".
package bracket

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/frasig/pkg/domain"
)

// SyntaxError describes where a bracketed tree could not be read.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bracket: %s at offset %d", e.Msg, e.Offset)
}

// Unwrap lets callers match the error against domain.ErrDeserialize.
func (e *SyntaxError) Unwrap() error {
	return domain.ErrDeserialize
}

// Parse reads exactly one bracketed tree from s.
//
// The node directly after an opening parenthesis is its tag; a tag may be
// empty, as in "( (S ...))". Nodes with no children, such as "(XP)", are
// accepted. Anything but whitespace after the closing parenthesis is an error.
func Parse(s string) (*domain.Node, error) {
	p := &parser{src: s}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("empty input")
	}
	if p.src[p.pos] != '(' {
		return nil, p.errorf("expected '('")
	}

	root, err := p.node()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return root, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// node reads "(" tag child* ")" starting at the opening parenthesis.
func (p *parser) node() (*domain.Node, error) {
	p.pos++ // '('
	p.skipSpace()

	tag := ""
	if p.pos < len(p.src) && !isDelim(p.src[p.pos]) {
		tag = p.atom()
	}
	n := domain.NewNode(tag)

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unbalanced parentheses: missing ')' for %q", tag)
		}
		switch p.src[p.pos] {
		case ')':
			p.pos++
			return n, nil
		case '(':
			child, err := p.node()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		default:
			n.Children = append(n.Children, domain.NewLeaf(p.atom()))
		}
	}
}

func (p *parser) atom() string {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == '(' || r == ')' || unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func isDelim(b byte) bool {
	return b == '(' || b == ')' || b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Format writes n on a single line in the notation accepted by Parse.
func Format(n *domain.Node) string {
	var sb strings.Builder
	write(&sb, n)
	return sb.String()
}

// Skeleton writes n with tags only: a preterminal collapses to its label and
// leaves are dropped, e.g. "(Sats Subst (VP Verb))".
func Skeleton(n *domain.Node) string {
	var sb strings.Builder
	writeSkeleton(&sb, n)
	return sb.String()
}

func write(sb *strings.Builder, n *domain.Node) {
	if n == nil {
		return
	}
	if n.Leaf {
		sb.WriteString(n.Label)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Label)
	for _, c := range n.Children {
		sb.WriteByte(' ')
		write(sb, c)
	}
	sb.WriteByte(')')
}

func writeSkeleton(sb *strings.Builder, n *domain.Node) {
	if n == nil || n.Leaf {
		return
	}
	var phrases []*domain.Node
	for _, c := range n.Children {
		if !c.Leaf {
			phrases = append(phrases, c)
		}
	}
	if len(phrases) == 0 && len(n.Children) > 0 {
		sb.WriteString(n.Label)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Label)
	for _, c := range phrases {
		sb.WriteByte(' ')
		writeSkeleton(sb, c)
	}
	sb.WriteByte(')')
}
