package generator

import (
	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/rational"
)

// NodeID addresses a node inside a Tree's arena.
type NodeID int

// Root is the id of the first node of every tree.
const Root NodeID = 0

// Marker is a node payload: the remaining values and the operator that
// produced them from the parent. The root carries domain.OpNone.
type Marker struct {
	Values []rational.Value
	Op     domain.Op
}

type node struct {
	marker   Marker
	parent   NodeID
	depth    int
	children []NodeID
}

// Tree is the possibility space of one input multiset, stored as an arena of
// nodes addressed by index. Node 0 is the root.
type Tree struct {
	nodes []node
}

// BuildTree expands values into its full possibility tree. Every ordered pair
// (i, j), i != j, is combined with each operator; the result replaces the pair
// at the front of the child's values. Division by zero produces no child.
func BuildTree(values []rational.Value) *Tree {
	t := &Tree{}
	root := append([]rational.Value(nil), values...)
	t.nodes = append(t.nodes, node{marker: Marker{Values: root, Op: domain.OpNone}, parent: -1})
	t.expand(Root)
	return t
}

func (t *Tree) expand(id NodeID) {
	values := t.nodes[id].marker.Values
	if len(values) < 2 {
		return
	}
	depth := t.nodes[id].depth
	for i := range values {
		for j := range values {
			if i == j {
				continue
			}
			rest := remaining(values, i, j)
			for _, op := range domain.Ops {
				res, ok := op.Apply(values[i], values[j])
				if !ok {
					continue
				}
				child := make([]rational.Value, 0, len(rest)+1)
				child = append(child, res)
				child = append(child, rest...)
				cid := NodeID(len(t.nodes))
				t.nodes = append(t.nodes, node{
					marker: Marker{Values: child, Op: op},
					parent: id,
					depth:  depth + 1,
				})
				// t.nodes may have been reallocated by the append above.
				t.nodes[id].children = append(t.nodes[id].children, cid)
				t.expand(cid)
			}
		}
	}
}

// remaining returns values without the elements at indices i and j.
func remaining(values []rational.Value, i, j int) []rational.Value {
	out := make([]rational.Value, 0, len(values)-2)
	for k, v := range values {
		if k != i && k != j {
			out = append(out, v)
		}
	}
	return out
}

// Len is the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Marker is the hand at id and the operator that produced it.
func (t *Tree) Marker(id NodeID) Marker { return t.nodes[id].marker }

// Children lists the nodes one step below id.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].children }

// Parent is the node id was reached from, -1 for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Depth counts steps from the root.
func (t *Tree) Depth(id NodeID) int { return t.nodes[id].depth }

// IsLeaf reports whether the node holds a single value.
func (t *Tree) IsLeaf(id NodeID) bool { return len(t.nodes[id].marker.Values) == 1 }

// Leaves counts the leaf nodes strictly below the root; a single-value root
// has no paths and therefore no leaves.
func (t *Tree) Leaves() int {
	n := 0
	for i := range t.nodes {
		if t.IsLeaf(NodeID(i)) && NodeID(i) != Root {
			n++
		}
	}
	return n
}

// Path returns the operators applied from the root down to id.
func (t *Tree) Path(id NodeID) []domain.Op {
	var ops []domain.Op
	for cur := id; cur != Root; cur = t.nodes[cur].parent {
		ops = append(ops, t.nodes[cur].marker.Op)
	}
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}
