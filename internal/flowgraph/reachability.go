package flowgraph

// Reachable computes the set of node IDs reachable backward from start,
// i.e. every node that can actually precede start on some path. Statement
// checking uses the complement of this (forward reachability from the
// function's Start through fallthrough edges) to flag unreachable code; this
// helper instead supports the flow analyzer's sanity checks and tests that a
// built graph has no dangling antecedent.
func Reachable(g *Graph, start NodeID) map[NodeID]bool {
	seen := map[NodeID]bool{}
	work := []NodeID{start}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if !id.IsValid() || seen[id] {
			continue
		}
		seen[id] = true
		n := g.Get(id)
		if n == nil {
			continue
		}
		work = append(work, n.Antecedents...)
	}
	return seen
}

// IsUnreachable reports whether id names an Unreachable node or has no path
// back to the graph's Start.
func IsUnreachable(g *Graph, id NodeID) bool {
	n := g.Get(id)
	if n == nil {
		return true
	}
	if n.Kind == Unreachable {
		return true
	}
	if n.Kind == Start {
		return false
	}
	return len(n.Antecedents) == 0
}
