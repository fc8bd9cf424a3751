package flow

import (
	"testing"

	"tschecker/internal/flowgraph"
	"tschecker/internal/narrow"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// fakeGuards narrows every Condition node toward a fixed Guard, regardless
// of which node is asked, standing in for the expression-level guard
// extraction a real binder would perform.
type fakeGuards struct {
	guard narrow.Guard
	ok    bool
}

func (f fakeGuards) ResolveGuard(node *flowgraph.Node, subject symbols.SymbolID, subjectType types.TypeID) (narrow.Guard, bool) {
	g := f.guard
	g.Subject = subjectType
	return g, f.ok
}

type fakeAssignments struct {
	byNodeSpan map[uint32]types.TypeID
}

func (f fakeAssignments) ResolveAssignment(node *flowgraph.Node, subject symbols.SymbolID) (types.TypeID, bool) {
	t, ok := f.byNodeSpan[node.Span.Start]
	return t, ok
}

func span(start uint32) source.Span { return source.Span{Start: start, End: start} }

func TestTypeAtStartReturnsDeclaredType(t *testing.T) {
	in := types.NewInterner(nil)
	g := flowgraph.NewGraph(4)
	b := flowgraph.NewBuilder(4)
	_ = b
	a := NewAnalyzer(g, in, fakeGuards{}, fakeAssignments{})
	got := a.TypeAt(flowgraph.NodeID(0), 1, in.Builtins().String)
	if got != in.Builtins().String {
		t.Fatalf("expected declared type at an invalid/start node, got %v", in.KindOf(got))
	}
}

func TestTypeAtNarrowsThroughCondition(t *testing.T) {
	in := types.NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number
	declared := in.Union(str, num)

	b := flowgraph.NewBuilder(8)
	cond := b.Condition(span(1), b.Start(), 0, true)

	guard := narrow.Guard{Kind: narrow.GuardTypeof, Sense: true, TypeofTag: "string"}
	an := NewAnalyzer(b.Graph, in, fakeGuards{guard: guard, ok: true}, fakeAssignments{})

	got := an.TypeAt(cond, 1, declared)
	if got != str {
		t.Fatalf("expected narrowing to string, got kind %v", in.KindOf(got))
	}
}

func TestTypeAtAppliesAssignment(t *testing.T) {
	in := types.NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number

	b := flowgraph.NewBuilder(8)
	asg := b.Assignment(span(5), b.Start(), 0, 0)

	assigns := fakeAssignments{byNodeSpan: map[uint32]types.TypeID{5: num}}
	an := NewAnalyzer(b.Graph, in, fakeGuards{}, assigns)

	got := an.TypeAt(asg, 1, str)
	if got != num {
		t.Fatalf("expected assignment to override declared type with number, got kind %v", in.KindOf(got))
	}
}

func TestTypeAtMergesBranchAntecedents(t *testing.T) {
	in := types.NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number

	b := flowgraph.NewBuilder(8)
	start := b.Start()
	left := b.Assignment(span(1), start, 0, 0)
	right := b.Assignment(span(2), start, 0, 0)
	merge := b.Branch(span(3), left, right)

	assigns := fakeAssignments{byNodeSpan: map[uint32]types.TypeID{1: str, 2: num}}
	an := NewAnalyzer(b.Graph, in, fakeGuards{}, assigns)

	got := an.TypeAt(merge, 1, in.Builtins().Any)
	want := in.Union(str, num)
	if got != want {
		t.Fatalf("expected merged union of string|number, got kind %v", in.KindOf(got))
	}
}

func TestTypeAtLoopMergesPreLoopAndEndOfBody(t *testing.T) {
	in := types.NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number

	b := flowgraph.NewBuilder(8)
	start := b.Start()
	pre := b.Assignment(span(1), start, 0, 0)
	endOfBody := b.Assignment(span(2), start, 0, 0)
	loop := b.Loop(span(3), pre, endOfBody)

	assigns := fakeAssignments{byNodeSpan: map[uint32]types.TypeID{1: str, 2: num}}
	an := NewAnalyzer(b.Graph, in, fakeGuards{}, assigns)

	got := an.TypeAt(loop, 1, in.Builtins().Any)
	want := in.Union(str, num)
	if got != want {
		t.Fatalf("expected loop merge of string|number, got kind %v", in.KindOf(got))
	}
}

func TestTypeAtStopsOnRevisitedNode(t *testing.T) {
	in := types.NewInterner(nil)
	str := in.Builtins().String

	b := flowgraph.NewBuilder(8)
	start := b.Start()
	cond := b.Condition(span(1), start, 0, true)

	an := NewAnalyzer(b.Graph, in, fakeGuards{}, fakeAssignments{})
	got := an.TypeAt(cond, 1, str)
	if got != str {
		t.Fatalf("expected passthrough when no guard matches the subject, got kind %v", in.KindOf(got))
	}
}

func TestWidenForDeclarationWidensLetNotConst(t *testing.T) {
	in := types.NewInterner(nil)
	lit := in.LiteralString("hi")

	if WidenForDeclaration(in, false, lit) != in.Builtins().String {
		t.Fatal("expected a let binding's literal initializer to widen to string")
	}
	if WidenForDeclaration(in, true, lit) != lit {
		t.Fatal("expected a const binding to keep its literal type")
	}
}

func TestEvolvingArrayResolvesUnionOfPushes(t *testing.T) {
	in := types.NewInterner(nil)
	arr := NewEvolvingArray()
	arr.Push(in.Builtins().String)
	arr.Push(in.Builtins().Number)

	got := arr.Resolve(in)
	want := in.Array(in.Union(in.Builtins().String, in.Builtins().Number))
	if got != want {
		t.Fatalf("expected (string|number)[], got kind %v", in.KindOf(in.ArrayElem(got)))
	}
}

func TestEvolvingArrayWithNoPushesIsAnyArray(t *testing.T) {
	in := types.NewInterner(nil)
	arr := NewEvolvingArray()
	got := arr.Resolve(in)
	if in.ArrayElem(got) != in.Builtins().Any {
		t.Fatal("expected an untouched evolving array to resolve to any[]")
	}
}
