package domain

// Node is a constituent of a parse tree.
//
// A leaf carries the token text in Label and has no children. Any other node
// carries the grammatical tag in Label and its constituents in Children.
type Node struct {
	Label    string  `json:"label"`
	Children []*Node `json:"children,omitempty"`
	Leaf     bool    `json:"leaf,omitempty"`
}

// NewLeaf returns a leaf holding a single token.
func NewLeaf(token string) *Node {
	return &Node{Label: token, Leaf: true}
}

// NewNode returns a tagged node with the given children.
// The child list is never nil, so an empty phrase stays distinguishable from a leaf.
func NewNode(tag string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Label: tag, Children: children}
}

// IsLeaf reports whether the node is a bare token.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Leaf
}

// Tokens returns the leaf tokens under n in surface order.
func (n *Node) Tokens() []string {
	var out []string
	n.Walk(func(c *Node, _ int) {
		if c.Leaf {
			out = append(out, c.Label)
		}
	})
	return out
}

// Walk visits n and its descendants depth-first, pre-order.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Depth returns the number of levels in the tree rooted at n.
// A single leaf has depth 1.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	max := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Label: n.Label, Leaf: n.Leaf}
	if !n.Leaf {
		cp.Children = make([]*Node, 0, len(n.Children))
		for _, c := range n.Children {
			cp.Children = append(cp.Children, c.Clone())
		}
	}
	return cp
}
