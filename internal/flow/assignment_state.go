package flow

import (
	"tschecker/internal/flowgraph"
	"tschecker/internal/symbols"
)

// AssignState is one point in the three-state definite-assignment lattice:
// a binding read at some flow-graph node is either definitely assigned on
// every path reaching it, definitely not assigned on any path, or assigned
// on some paths and not others.
type AssignState uint8

const (
	// StateUnassigned means no path reaching this point has assigned the
	// binding.
	StateUnassigned AssignState = iota
	// StateMaybeAssigned means some paths reaching this point assigned the
	// binding and others didn't.
	StateMaybeAssigned
	// StateAssigned means every path reaching this point has assigned the
	// binding.
	StateAssigned
	// stateUnreachable marks a predecessor that can't actually be reached,
	// so it contributes nothing to a join (mirrors Analyzer.mergeAntecedents
	// dropping `never`-typed predecessors from a type union).
	stateUnreachable
)

func (s AssignState) String() string {
	switch s {
	case StateUnassigned:
		return "unassigned"
	case StateMaybeAssigned:
		return "maybe-assigned"
	case StateAssigned:
		return "assigned"
	default:
		return "unreachable"
	}
}

// meet joins two states reaching the same point from different paths.
func meet(a, b AssignState) AssignState {
	if a == b {
		return a
	}
	return StateMaybeAssigned
}

// AssignmentStateAnalyzer computes a binding's definite-assignment state at
// any point in a flow graph, walking Antecedents the same way Analyzer.TypeAt
// does for narrowed types, but joining by lattice meet instead of type union.
type AssignmentStateAnalyzer struct {
	Graph       *flowgraph.Graph
	Assignments AssignmentResolver
}

// NewAssignmentStateAnalyzer builds an AssignmentStateAnalyzer over an
// already-constructed flow graph.
func NewAssignmentStateAnalyzer(g *flowgraph.Graph, assigns AssignmentResolver) *AssignmentStateAnalyzer {
	return &AssignmentStateAnalyzer{Graph: g, Assignments: assigns}
}

// StateAt computes subject's definite-assignment state at node, given
// initial, the state at the graph's Start node (StateAssigned for a binding
// initialized at its declaration, StateUnassigned for a bare `let x;`).
func (a *AssignmentStateAnalyzer) StateAt(node flowgraph.NodeID, subject symbols.SymbolID, initial AssignState) AssignState {
	memo := make(map[flowgraph.NodeID]AssignState, a.Graph.Len())
	visiting := make(map[flowgraph.NodeID]bool, 8)
	result := a.resolve(node, subject, initial, memo, visiting)
	if result == stateUnreachable {
		// The read site itself is unreachable; there's no real path left to
		// flag, so report the most permissive state rather than a false TS2454.
		return StateAssigned
	}
	return result
}

func (a *AssignmentStateAnalyzer) resolve(
	id flowgraph.NodeID,
	subject symbols.SymbolID,
	initial AssignState,
	memo map[flowgraph.NodeID]AssignState,
	visiting map[flowgraph.NodeID]bool,
) AssignState {
	if s, ok := memo[id]; ok {
		return s
	}
	if visiting[id] {
		// A loop back-edge reached before its body settled: assume assigned,
		// the same conservative approximation Analyzer.resolve makes with
		// the declared type for a narrowed-type back-edge.
		return StateAssigned
	}
	n := a.Graph.Get(id)
	if n == nil {
		return initial
	}

	visiting[id] = true
	defer delete(visiting, id)

	var result AssignState
	switch n.Kind {
	case flowgraph.Start:
		result = initial

	case flowgraph.Unreachable:
		result = stateUnreachable

	case flowgraph.Assignment:
		if _, ok := a.Assignments.ResolveAssignment(n, subject); ok {
			result = StateAssigned
		} else {
			result = a.antecedent(n, subject, initial, memo, visiting)
		}

	case flowgraph.Branch, flowgraph.Loop:
		result = a.mergeAntecedents(n, subject, initial, memo, visiting)

	default:
		result = a.antecedent(n, subject, initial, memo, visiting)
	}

	memo[id] = result
	return result
}

func (a *AssignmentStateAnalyzer) antecedent(
	n *flowgraph.Node,
	subject symbols.SymbolID,
	initial AssignState,
	memo map[flowgraph.NodeID]AssignState,
	visiting map[flowgraph.NodeID]bool,
) AssignState {
	if len(n.Antecedents) == 0 {
		return initial
	}
	return a.resolve(n.Antecedents[0], subject, initial, memo, visiting)
}

func (a *AssignmentStateAnalyzer) mergeAntecedents(
	n *flowgraph.Node,
	subject symbols.SymbolID,
	initial AssignState,
	memo map[flowgraph.NodeID]AssignState,
	visiting map[flowgraph.NodeID]bool,
) AssignState {
	if len(n.Antecedents) == 0 {
		return initial
	}
	var result AssignState
	seen := false
	for _, ante := range n.Antecedents {
		s := a.resolve(ante, subject, initial, memo, visiting)
		if s == stateUnreachable {
			continue // an unreachable predecessor contributes nothing to the join
		}
		if !seen {
			result = s
			seen = true
			continue
		}
		result = meet(result, s)
	}
	if !seen {
		return stateUnreachable
	}
	return result
}
