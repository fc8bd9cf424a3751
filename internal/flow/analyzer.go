package flow

import (
	"tschecker/internal/flowgraph"
	"tschecker/internal/narrow"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// GuardResolver extracts the narrowing guard a Condition or SwitchClause
// flow node imposes on subject, given subject's type just before that node.
// It returns ok=false when the node's test expression doesn't mention
// subject at all, in which case the analyzer passes the incoming type
// through unnarrowed.
type GuardResolver interface {
	ResolveGuard(node *flowgraph.Node, subject symbols.SymbolID, subjectType types.TypeID) (narrow.Guard, bool)
}

// AssignmentResolver reports the post-widening type an Assignment flow node
// gives to subject, or ok=false if the node assigns a different binding.
type AssignmentResolver interface {
	ResolveAssignment(node *flowgraph.Node, subject symbols.SymbolID) (types.TypeID, bool)
}

// Analyzer computes flow-narrowed types for one function's flow graph.
type Analyzer struct {
	Graph       *flowgraph.Graph
	Types       *types.Interner
	Guards      GuardResolver
	Assignments AssignmentResolver
}

// NewAnalyzer builds an Analyzer over an already-constructed flow graph.
func NewAnalyzer(g *flowgraph.Graph, in *types.Interner, guards GuardResolver, assigns AssignmentResolver) *Analyzer {
	return &Analyzer{Graph: g, Types: in, Guards: guards, Assignments: assigns}
}

// TypeAt computes subject's type at node, given its statically declared
// type (the type to fall back to at the function's Start node, and at any
// merge point reached through a not-yet-resolved loop back-edge).
func (a *Analyzer) TypeAt(node flowgraph.NodeID, subject symbols.SymbolID, declaredType types.TypeID) types.TypeID {
	memo := make(map[flowgraph.NodeID]types.TypeID, a.Graph.Len())
	visiting := make(map[flowgraph.NodeID]bool, 8)
	return a.resolve(node, subject, declaredType, memo, visiting)
}

func (a *Analyzer) resolve(
	id flowgraph.NodeID,
	subject symbols.SymbolID,
	declaredType types.TypeID,
	memo map[flowgraph.NodeID]types.TypeID,
	visiting map[flowgraph.NodeID]bool,
) types.TypeID {
	if t, ok := memo[id]; ok {
		return t
	}
	if visiting[id] {
		// A loop back-edge reached before its body settled: fall back to
		// the declared type as a conservative approximation, matching the
		// pass this node will get recomputed under once its predecessors
		// are memoized.
		return declaredType
	}
	n := a.Graph.Get(id)
	if n == nil {
		return declaredType
	}

	visiting[id] = true
	defer delete(visiting, id)

	var result types.TypeID
	switch n.Kind {
	case flowgraph.Start:
		result = declaredType

	case flowgraph.Unreachable:
		result = a.Types.Builtins().Never

	case flowgraph.Assignment:
		if assigned, ok := a.Assignments.ResolveAssignment(n, subject); ok {
			result = assigned
		} else {
			result = a.antecedent(n, subject, declaredType, memo, visiting)
		}

	case flowgraph.Condition, flowgraph.SwitchClause:
		incoming := a.antecedent(n, subject, declaredType, memo, visiting)
		if guard, ok := a.Guards.ResolveGuard(n, subject, incoming); ok {
			res := narrow.Apply(a.Types, guard)
			if res.Unreachable {
				result = a.Types.Builtins().Never
			} else {
				result = res.Type
			}
		} else {
			result = incoming
		}

	case flowgraph.Branch, flowgraph.Loop:
		result = a.mergeAntecedents(n, subject, declaredType, memo, visiting)

	case flowgraph.Call:
		result = a.antecedent(n, subject, declaredType, memo, visiting)

	default:
		result = a.antecedent(n, subject, declaredType, memo, visiting)
	}

	memo[id] = result
	return result
}

func (a *Analyzer) antecedent(
	n *flowgraph.Node,
	subject symbols.SymbolID,
	declaredType types.TypeID,
	memo map[flowgraph.NodeID]types.TypeID,
	visiting map[flowgraph.NodeID]bool,
) types.TypeID {
	if len(n.Antecedents) == 0 {
		return declaredType
	}
	return a.resolve(n.Antecedents[0], subject, declaredType, memo, visiting)
}

func (a *Analyzer) mergeAntecedents(
	n *flowgraph.Node,
	subject symbols.SymbolID,
	declaredType types.TypeID,
	memo map[flowgraph.NodeID]types.TypeID,
	visiting map[flowgraph.NodeID]bool,
) types.TypeID {
	if len(n.Antecedents) == 0 {
		return declaredType
	}
	members := make([]types.TypeID, 0, len(n.Antecedents))
	never := a.Types.Builtins().Never
	for _, ante := range n.Antecedents {
		t := a.resolve(ante, subject, declaredType, memo, visiting)
		if t == never {
			continue // an unreachable predecessor contributes nothing to the merge
		}
		members = append(members, t)
	}
	if len(members) == 0 {
		return never
	}
	return a.Types.Union(members...)
}
