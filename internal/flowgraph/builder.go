package flowgraph

import (
	"tschecker/internal/ast"
	"tschecker/internal/source"
)

// Builder appends nodes to a Graph in the order a binder would visit
// statements: one call per control-flow-significant construct.
type Builder struct {
	Graph *Graph
	start NodeID
}

// NewBuilder returns a Builder over a fresh Graph, seeded with a Start node.
func NewBuilder(capHint int) *Builder {
	b := &Builder{Graph: NewGraph(capHint)}
	b.start = b.Graph.alloc(Node{Kind: Start})
	return b
}

// Start returns the entry node of the graph.
func (b *Builder) Start() NodeID { return b.start }

// Assignment records a binding/assignment reset of ref's narrowed type.
func (b *Builder) Assignment(span source.Span, antecedent NodeID, ref, assigned ast.NodeIndex) NodeID {
	return b.Graph.alloc(Node{
		Kind:        Assignment,
		Span:        span,
		Antecedents: []NodeID{antecedent},
		Reference:   ref,
		Assigned:    assigned,
	})
}

// Condition records entry into one branch of a guarded construct.
func (b *Builder) Condition(span source.Span, antecedent NodeID, cond ast.NodeIndex, sense bool) NodeID {
	return b.Graph.alloc(Node{
		Kind:        Condition,
		Span:        span,
		Antecedents: []NodeID{antecedent},
		Condition:   cond,
		Sense:       sense,
	})
}

// SwitchClause records entry into one clause of a switch over discriminant.
// matched is true for a clause entered because the discriminant equals one
// of tests (a fallthrough run of several case labels sharing one body can
// make len(tests) > 1); matched is false for the "no case matched" clause
// (the switch's default body, or the point execution resumes after the
// switch when there is no default), where tests holds every other
// clause's test expression to exclude at once.
func (b *Builder) SwitchClause(span source.Span, antecedent NodeID, discriminant ast.NodeIndex, tests []ast.NodeIndex, matched bool) NodeID {
	return b.Graph.alloc(Node{
		Kind:        SwitchClause,
		Span:        span,
		Antecedents: []NodeID{antecedent},
		Condition:   discriminant,
		Sense:       matched,
		CaseTests:   tests,
	})
}

// Loop records the join point at the top of a loop body.
func (b *Builder) Loop(span source.Span, preLoop, endOfBody NodeID) NodeID {
	ants := []NodeID{preLoop}
	if endOfBody.IsValid() {
		ants = append(ants, endOfBody)
	}
	return b.Graph.alloc(Node{Kind: Loop, Span: span, Antecedents: ants})
}

// Branch records a plain control-flow merge of two or more antecedents.
func (b *Builder) Branch(span source.Span, antecedents ...NodeID) NodeID {
	if len(antecedents) == 1 {
		return antecedents[0]
	}
	return b.Graph.alloc(Node{Kind: Branch, Span: span, Antecedents: antecedents})
}

// Call records a call whose callee may carry a type predicate narrowing its
// argument.
func (b *Builder) Call(span source.Span, antecedent NodeID, call, ref ast.NodeIndex) NodeID {
	return b.Graph.alloc(Node{
		Kind:        Call,
		Span:        span,
		Antecedents: []NodeID{antecedent},
		CallExpr:    call,
		Reference:   ref,
	})
}

// Unreachable records code no control-flow path reaches.
func (b *Builder) Unreachable(span source.Span) NodeID {
	return b.Graph.alloc(Node{Kind: Unreachable, Span: span})
}
