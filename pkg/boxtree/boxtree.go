// Package boxtree lays out a weighted tree of nested boxes across columns.
//
// Each depth level of the tree maps to one vertical column of the target
// rectangle; a node's children occupy the next column to the right and
// divide the parent's vertical span proportionally by weight. The layout
// is fully deterministic: rounding remainders are absorbed by the last
// sibling so that every parent's children sum exactly to the parent's
// height, gaps included.
package boxtree

// Node is one box in the hierarchy. Weight controls the share of the
// parent's height this node receives relative to its siblings; negative
// weights are clamped to zero, and a zero weight yields a zero-height
// allocation (the box is still emitted). When every sibling has weight
// zero the group falls back to an equal split, so zero-valued Nodes lay
// out evenly. Deck descriptions default missing weights to 1 at decode
// time (see the diagram package).
type Node struct {
	Name     string  `json:"name" yaml:"name" bson:"name"`
	Weight   float64 `json:"weight,omitempty" yaml:"weight,omitempty" bson:"weight,omitempty"`
	Children []Node  `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
}

// weight returns the declared weight clamped to zero.
func (n *Node) weight() float64 {
	if n.Weight < 0 {
		return 0
	}
	return n.Weight
}

// depth returns 0 for a leaf and 1 + max child depth otherwise.
func (n *Node) depth() int {
	d := 0
	for i := range n.Children {
		if cd := n.Children[i].depth() + 1; cd > d {
			d = cd
		}
	}
	return d
}

// Root is the layout entry point: either a single tree or an ordered
// forest of top-level trees. A forest is treated as the children of an
// invisible virtual root spanning the full content height, so both
// variants share the identical weighted distribution.
type Root struct {
	single *Node
	forest []Node
}

// Single wraps one tree as a layout root.
func Single(n Node) Root { return Root{single: &n} }

// Forest wraps an ordered list of top-level trees as a layout root.
func Forest(nodes ...Node) Root { return Root{forest: nodes} }

// IsForest reports whether the root is a forest of top-level trees.
func (r Root) IsForest() bool { return r.single == nil }

// Depth returns the maximum node depth: 0 for a single leaf, and for a
// forest the maximum across its top-level entries.
func (r Root) Depth() int {
	if r.single != nil {
		return r.single.depth()
	}
	d := 0
	for i := range r.forest {
		if fd := r.forest[i].depth(); fd > d {
			d = fd
		}
	}
	return d
}

// tops returns the top-level nodes to distribute into column 0.
func (r Root) tops() []*Node {
	if r.single != nil {
		return []*Node{r.single}
	}
	tops := make([]*Node, len(r.forest))
	for i := range r.forest {
		tops[i] = &r.forest[i]
	}
	return tops
}
