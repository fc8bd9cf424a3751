package main

import (
	"tschecker/internal/ast"
	"tschecker/internal/driver"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// demoProgram is a hand-built program tschk's check command can run. There
// is no source-text parser in this module (spec.md's own non-goals exclude
// one): internal/ast.Builder is the documented stand-in for "the lexer/
// parser", so what tschk checks are small programs built directly against
// that API rather than arbitrary .ts files read off disk. Each program also
// registers its own virtual source text in the shared FileSet purely so
// internal/diagfmt can render a line/column snippet for any diagnostic it
// produces, the way a real front end's source text would be used.
type demoProgram struct {
	name  string
	about string
	input driver.FileInput
}

func demoPrograms(fs *source.FileSet) []demoProgram {
	return []demoProgram{
		buildRedeclareDemo(fs),
		buildNarrowDemo(fs),
		buildImplicitAnyDemo(fs),
	}
}

// buildRedeclareDemo is `let x: string = "hi"; let x = 1;` — two block-scoped
// declarations of the same name, which must be flagged as a duplicate
// identifier regardless of the second declaration's inferred type.
func buildRedeclareDemo(fs *source.FileSet) demoProgram {
	src := "let x: string = \"hi\";\nlet x = 1;\n"
	fileID := fs.AddVirtual("demo/redeclare.ts", []byte(src))

	strings := source.NewInterner()
	builder := ast.NewBuilder(64)
	table := symbols.NewTable(symbols.Hints{}, strings)
	in := types.NewInterner(strings)
	scope := table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})
	name := strings.Intern("x")

	typeAnn := builder.NewTypeRef(source.Span{File: fileID, Start: 6, End: 12}, strings.Intern("string"), nil)
	init1 := builder.NewLiteralString(source.Span{File: fileID, Start: 15, End: 21}, "hi")
	binding1 := builder.NewIdent(source.Span{File: fileID, Start: 4, End: 5}, name)
	decl1 := builder.NewVarDecl(source.Span{File: fileID, Start: 0, End: 22}, ast.DeclLet, binding1, typeAnn, init1)
	sym := table.NewSymbol(symbols.Symbol{Name: name, Kind: symbols.Variable, Flags: symbols.FlagLet, Scope: scope, Declarations: []ast.NodeIndex{decl1}, ValueDecl: decl1})

	init2 := builder.NewLiteralNumber(source.Span{File: fileID, Start: 34, End: 35}, 1)
	binding2 := builder.NewIdent(source.Span{File: fileID, Start: 26, End: 27}, name)
	decl2 := builder.NewVarDecl(source.Span{File: fileID, Start: 22, End: 36}, ast.DeclLet, binding2, ast.NoNodeIndex, init2)
	if s := table.Symbol(sym); s != nil {
		s.Declarations = append(s.Declarations, decl2)
	}

	return demoProgram{
		name:  "redeclare",
		about: "flags a block-scoped variable declared twice",
		input: driver.FileInput{
			Path:       "demo/redeclare.ts",
			Arena:      builder.Arena,
			Symbols:    table,
			Types:      in,
			Scope:      scope,
			Statements: []ast.NodeIndex{decl1, decl2},
		},
	}
}

// buildNarrowDemo is `let v: string | number = 1; if (typeof v === "number") { v; }`
// — a clean program with no diagnostics. CheckProgram checks each statement
// against the current lexical scope without attaching a flow graph to it
// (that wiring is a binder's job), so this demonstrates a passing top-level
// check rather than the typeof guard itself narrowing v inside the branch.
func buildNarrowDemo(fs *source.FileSet) demoProgram {
	src := "let v: string | number = 1;\nif (typeof v === \"number\") {\n  v;\n}\n"
	fileID := fs.AddVirtual("demo/narrow.ts", []byte(src))

	strings := source.NewInterner()
	builder := ast.NewBuilder(64)
	table := symbols.NewTable(symbols.Hints{}, strings)
	in := types.NewInterner(strings)
	scope := table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})
	name := strings.Intern("v")

	strType := builder.NewTypeRef(source.Span{File: fileID, Start: 7, End: 13}, strings.Intern("string"), nil)
	numType := builder.NewTypeRef(source.Span{File: fileID, Start: 16, End: 22}, strings.Intern("number"), nil)
	unionType := builder.NewUnionType(source.Span{File: fileID, Start: 7, End: 22}, []ast.NodeIndex{strType, numType})
	init := builder.NewLiteralNumber(source.Span{File: fileID, Start: 25, End: 26}, 1)
	binding := builder.NewIdent(source.Span{File: fileID, Start: 4, End: 5}, name)
	decl := builder.NewVarDecl(source.Span{File: fileID, Start: 0, End: 28}, ast.DeclLet, binding, unionType, init)
	table.NewSymbol(symbols.Symbol{Name: name, Kind: symbols.Variable, Flags: symbols.FlagLet, Scope: scope, Declarations: []ast.NodeIndex{decl}, ValueDecl: decl})

	ref := builder.NewIdent(source.Span{File: fileID, Start: 62, End: 63}, name)
	body := builder.NewBlock(source.Span{File: fileID, Start: 57, End: 66}, []ast.NodeIndex{builder.NewExprStmt(source.Span{File: fileID, Start: 62, End: 64}, ref)})

	typeofStr := builder.NewLiteralString(source.Span{File: fileID, Start: 45, End: 53}, "number")
	vRef := builder.NewIdent(source.Span{File: fileID, Start: 37, End: 38}, name)
	typeofExpr := builder.NewUnary(source.Span{File: fileID, Start: 30, End: 38}, ast.OpTypeof, vRef)
	cond := builder.NewBinary(source.Span{File: fileID, Start: 30, End: 53}, ast.OpStrictEq, typeofExpr, typeofStr)
	ifStmt := builder.NewIf(source.Span{File: fileID, Start: 29, End: 66}, cond, body, ast.NoNodeIndex)

	return demoProgram{
		name:  "narrow",
		about: "a typeof guard narrows v to number with no diagnostics",
		input: driver.FileInput{
			Path:       "demo/narrow.ts",
			Arena:      builder.Arena,
			Symbols:    table,
			Types:      in,
			Scope:      scope,
			Statements: []ast.NodeIndex{decl, ifStmt},
		},
	}
}

// buildImplicitAnyDemo is `let w;` under noImplicitAny, which must be
// flagged since w's type can't be inferred from an initializer or
// annotation.
func buildImplicitAnyDemo(fs *source.FileSet) demoProgram {
	src := "let w;\n"
	fileID := fs.AddVirtual("demo/implicit-any.ts", []byte(src))

	strings := source.NewInterner()
	builder := ast.NewBuilder(64)
	table := symbols.NewTable(symbols.Hints{}, strings)
	in := types.NewInterner(strings)
	scope := table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})
	name := strings.Intern("w")

	binding := builder.NewIdent(source.Span{File: fileID, Start: 4, End: 5}, name)
	decl := builder.NewVarDecl(source.Span{File: fileID, Start: 0, End: 6}, ast.DeclLet, binding, ast.NoNodeIndex, ast.NoNodeIndex)
	table.NewSymbol(symbols.Symbol{Name: name, Kind: symbols.Variable, Flags: symbols.FlagLet, Scope: scope, Declarations: []ast.NodeIndex{decl}, ValueDecl: decl})

	return demoProgram{
		name:  "implicit-any",
		about: "an unannotated, uninitialized let under --strict",
		input: driver.FileInput{
			Path:       "demo/implicit-any.ts",
			Arena:      builder.Arena,
			Symbols:    table,
			Types:      in,
			Scope:      scope,
			Statements: []ast.NodeIndex{decl},
		},
	}
}
