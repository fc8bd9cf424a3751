package ast

// Arena is a 1-based append-only store of nodes, addressed by NodeIndex.
// Index 0 is never allocated, so the zero value of NodeIndex doubles as the
// "absent" sentinel without an extra presence check.
type Arena struct {
	nodes []Node
}

// NewArena returns an Arena with capHint pre-allocated slots.
func NewArena(capHint int) *Arena {
	return &Arena{nodes: make([]Node, 1, capHint+1)} // nodes[0] is the unused sentinel
}

// alloc appends n and returns its NodeIndex.
func (a *Arena) alloc(n Node) NodeIndex {
	a.nodes = append(a.nodes, n)
	return NodeIndex(len(a.nodes) - 1)
}

// Get returns a pointer to the node at idx. Index 0 (NoNodeIndex) returns nil.
func (a *Arena) Get(idx NodeIndex) *Node {
	if idx == NoNodeIndex || int(idx) >= len(a.nodes) {
		return nil
	}
	return &a.nodes[idx]
}

// Len returns the number of allocated nodes (excluding the sentinel slot).
func (a *Arena) Len() int { return len(a.nodes) - 1 }
