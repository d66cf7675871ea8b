// parser_test.go
package mathscript

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return prog
}

func wantParseError(t *testing.T, src, substr string) *ParseError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error for %q, got none", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if !strings.Contains(pe.Msg, substr) {
		t.Fatalf("parse error %q does not mention %q", pe.Msg, substr)
	}
	return pe
}

// exprOf extracts the expression of the i-th statement, which must be an
// expression statement.
func exprOf(t *testing.T, prog *Program, i int) Expr {
	t.Helper()
	es, ok := prog.Stmts[i].(*ExprStmt)
	if !ok {
		t.Fatalf("statement %d: want *ExprStmt, got %T", i, prog.Stmts[i])
	}
	return es.X
}

func binOp(t *testing.T, e Expr, op string) *Binary {
	t.Helper()
	b, ok := e.(*Binary)
	if !ok {
		t.Fatalf("want *Binary, got %T", e)
	}
	if b.OpSt != op {
		t.Fatalf("want operator %q, got %q", op, b.OpSt)
	}
	return b
}

func numLit(t *testing.T, e Expr, v float64) {
	t.Helper()
	n, ok := e.(*NumberLit)
	if !ok {
		t.Fatalf("want *NumberLit, got %T", e)
	}
	if n.Value != v {
		t.Fatalf("want %g, got %g", v, n.Value)
	}
}

func Test_Parser_PrecedenceMulOverAdd(t *testing.T) {
	prog := mustParse(t, `2 - 3 * 4;`)
	// (2 - (3 * 4))
	sub := binOp(t, exprOf(t, prog, 0), "-")
	numLit(t, sub.Lhs, 2)
	mul := binOp(t, sub.Rhs, "*")
	numLit(t, mul.Lhs, 3)
	numLit(t, mul.Rhs, 4)
}

func Test_Parser_LeftAssociativity(t *testing.T) {
	prog := mustParse(t, `10 - 4 - 3;`)
	// ((10 - 4) - 3)
	outer := binOp(t, exprOf(t, prog, 0), "-")
	numLit(t, outer.Rhs, 3)
	inner := binOp(t, outer.Lhs, "-")
	numLit(t, inner.Lhs, 10)
	numLit(t, inner.Rhs, 4)
}

func Test_Parser_ExponentRightAssociative(t *testing.T) {
	prog := mustParse(t, `2 ^ 3 ^ 2;`)
	// (2 ^ (3 ^ 2))
	outer := binOp(t, exprOf(t, prog, 0), "^")
	numLit(t, outer.Lhs, 2)
	inner := binOp(t, outer.Rhs, "^")
	numLit(t, inner.Lhs, 3)
	numLit(t, inner.Rhs, 2)
}

func Test_Parser_ExponentBindsTighterThanMul(t *testing.T) {
	prog := mustParse(t, `2 * 3 ^ 2;`)
	mul := binOp(t, exprOf(t, prog, 0), "*")
	numLit(t, mul.Lhs, 2)
	binOp(t, mul.Rhs, "^")
}

func Test_Parser_UnaryBindsTighterThanBinary(t *testing.T) {
	prog := mustParse(t, `-2 + 3;`)
	add := binOp(t, exprOf(t, prog, 0), "+")
	u, ok := add.Lhs.(*Unary)
	if !ok || u.Op != MINUS {
		t.Fatalf("want unary minus on the left, got %#v", add.Lhs)
	}
	numLit(t, u.X, 2)
}

func Test_Parser_LogicalPrecedence(t *testing.T) {
	prog := mustParse(t, `a == 1 || b == 2 && c == 3;`)
	// (a==1) || ((b==2) && (c==3))
	or := binOp(t, exprOf(t, prog, 0), "||")
	binOp(t, or.Lhs, "==")
	and := binOp(t, or.Rhs, "&&")
	binOp(t, and.Lhs, "==")
	binOp(t, and.Rhs, "==")
}

func Test_Parser_GroupingOverridesPrecedence(t *testing.T) {
	prog := mustParse(t, `(2 - 3) * 4;`)
	mul := binOp(t, exprOf(t, prog, 0), "*")
	binOp(t, mul.Lhs, "-")
	numLit(t, mul.Rhs, 4)
}

func Test_Parser_CallWithArguments(t *testing.T) {
	prog := mustParse(t, `hyp(3, 4 + 1);`)
	c, ok := exprOf(t, prog, 0).(*Call)
	if !ok {
		t.Fatalf("want *Call, got %T", exprOf(t, prog, 0))
	}
	if c.Name != "hyp" || len(c.Args) != 2 {
		t.Fatalf("want hyp/2, got %s/%d", c.Name, len(c.Args))
	}
	numLit(t, c.Args[0], 3)
	binOp(t, c.Args[1], "+")
}

func Test_Parser_LetStatement(t *testing.T) {
	prog := mustParse(t, `let area = r * r * 3.14;`)
	l, ok := prog.Stmts[0].(*Let)
	if !ok || l.Name != "area" {
		t.Fatalf("want let area, got %#v", prog.Stmts[0])
	}
	binOp(t, l.Init, "*")
}

func Test_Parser_FuncDecl(t *testing.T) {
	prog := mustParse(t, `func add(a, b) { return a + b; }`)
	f, ok := prog.Stmts[0].(*FuncDecl)
	if !ok {
		t.Fatalf("want *FuncDecl, got %T", prog.Stmts[0])
	}
	if f.Name != "add" || len(f.Params) != 2 || f.Params[0] != "a" || f.Params[1] != "b" {
		t.Fatalf("bad signature: %#v", f)
	}
	if len(f.Body.Stmts) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(f.Body.Stmts))
	}
	if _, ok := f.Body.Stmts[0].(*Return); !ok {
		t.Fatalf("want *Return body, got %T", f.Body.Stmts[0])
	}
}

func Test_Parser_FuncSingleStatementBody(t *testing.T) {
	// A single statement is accepted in place of a block, ';' included.
	prog := mustParse(t, `func one() return 1;`)
	f := prog.Stmts[0].(*FuncDecl)
	if len(f.Body.Stmts) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(f.Body.Stmts))
	}
}

func Test_Parser_IfElseChain(t *testing.T) {
	prog := mustParse(t, `
if (x > 0) {
    println("positive");
} else if (x < 0) {
    println("negative");
} else println("zero");
`)
	top, ok := prog.Stmts[0].(*If)
	if !ok {
		t.Fatalf("want *If, got %T", prog.Stmts[0])
	}
	if len(top.Then.Stmts) != 1 {
		t.Fatalf("want 1 statement in then block, got %d", len(top.Then.Stmts))
	}
	nested, ok := top.Else.Stmts[0].(*If)
	if !ok {
		t.Fatalf("want nested *If in else, got %T", top.Else.Stmts[0])
	}
	// The un-braced final else is wrapped into its own block.
	if _, ok := nested.Else.Stmts[0].(*ExprStmt); !ok {
		t.Fatalf("want expression statement in else block, got %T", nested.Else.Stmts[0])
	}
}

func Test_Parser_BareReturn(t *testing.T) {
	prog := mustParse(t, `func noop() { return; }`)
	r := prog.Stmts[0].(*FuncDecl).Body.Stmts[0].(*Return)
	if r.Value != nil {
		t.Fatalf("want nil return value, got %#v", r.Value)
	}
}

func Test_Parser_Errors(t *testing.T) {
	wantParseError(t, `let = 1;`, "expected variable name")
	wantParseError(t, `let x 1;`, "expected '='")
	wantParseError(t, `let x = 1`, "expected ';'")
	wantParseError(t, `(1 + 2;`, "expected ')'")
	wantParseError(t, `1 + ;`, "expected expression")
	wantParseError(t, `func () {}`, "expected function name")
	wantParseError(t, `func f(a {}`, "expected ')'")
	wantParseError(t, `if x > 0 { }`, "expected '('")
	wantParseError(t, `{ let a = 1;`, "expected '}'")
	wantParseError(t, `f(1, 2;`, "expected ')'")
}

func Test_Parser_ErrorPosition(t *testing.T) {
	pe := wantParseError(t, "let a = 1;\nlet b = 2", "expected ';'")
	if pe.Line != 2 {
		t.Fatalf("want error on line 2, got %d", pe.Line)
	}
}

func Test_Parser_IsIncomplete(t *testing.T) {
	incomplete := []string{
		`func add(a, b) {`,
		`let x = 1 +`,
		`if (x > 0) {`,
		`let x =`,
	}
	for _, src := range incomplete {
		_, err := Parse(src)
		if !IsIncomplete(err) {
			t.Fatalf("want incomplete for %q, got %v", src, err)
		}
	}
	complete := []string{
		`let = 1;`,
		`1 + ;`,
		`let x = 1;`,
	}
	for _, src := range complete {
		_, err := Parse(src)
		if IsIncomplete(err) {
			t.Fatalf("%q should not be incomplete", src)
		}
	}
}

func Test_Parser_DumpAST(t *testing.T) {
	prog := mustParse(t, `let a = 1 + 2; println(a);`)
	out := DumpAST(prog)
	for _, want := range []string{"program", "let a", "binary +", "call println", "ident a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}
