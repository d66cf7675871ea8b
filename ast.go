package mathscript

import (
	"fmt"
	"strconv"
	"strings"
)

// The AST is a closed set of typed nodes. Every node records the line/col of
// the token that introduced it so runtime errors can point back at source.

// Node is the common surface of all AST nodes.
type Node interface {
	Pos() (line, col int)
}

// Expr is implemented by expression nodes only.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes only.
type Stmt interface {
	Node
	stmtNode()
}

// Program is an ordered sequence of top-level statements.
type Program struct {
	Stmts []Stmt
}

type pos struct {
	Line int
	Col  int
}

func (p pos) Pos() (int, int) { return p.Line, p.Col }

func at(t Token) pos { return pos{Line: t.Line, Col: t.Col} }

// ----- expressions -----

// NumberLit is a numeric literal.
type NumberLit struct {
	pos
	Value float64
}

// StringLit is a double-quoted string literal.
type StringLit struct {
	pos
	Value string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	pos
	Value bool
}

// Ident is a variable reference.
type Ident struct {
	pos
	Name string
}

// Unary is a prefix operator application: -x or !x.
type Unary struct {
	pos
	Op TokenType
	X  Expr
}

// Binary is an infix operator application.
type Binary struct {
	pos
	Op   TokenType
	Lhs  Expr
	Rhs  Expr
	OpSt string // operator text for diagnostics
}

// Call is a function invocation by name.
type Call struct {
	pos
	Name string
	Args []Expr
}

func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*Ident) exprNode()     {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}

// ----- statements -----

// Let is `let name = init;`.
type Let struct {
	pos
	Name string
	Init Expr
}

// FuncDecl is `func name(params) { body }`.
type FuncDecl struct {
	pos
	Name   string
	Params []string
	Body   *Block
}

// If is `if (cond) then [else other]`. Both branches are blocks: the parser
// wraps an un-braced single statement so the branch runs in its own scope.
type If struct {
	pos
	Cond Expr
	Then *Block
	Else *Block // nil when absent
}

// Return is `return [expr];`. Value is nil for a bare return.
type Return struct {
	pos
	Value Expr
}

// ExprStmt is an expression evaluated for its side effects: `expr;`.
type ExprStmt struct {
	pos
	X Expr
}

// Block is a brace-delimited statement sequence with its own scope.
type Block struct {
	pos
	Stmts []Stmt
}

func (*Let) stmtNode()      {}
func (*FuncDecl) stmtNode() {}
func (*If) stmtNode()       {}
func (*Return) stmtNode()   {}
func (*ExprStmt) stmtNode() {}
func (*Block) stmtNode()    {}

// ----- dumping -----

// DumpAST renders a program as an indented tree, one node per line.
// Intended for the CLI's --ast flag and for debugging.
func DumpAST(p *Program) string {
	var b strings.Builder
	b.WriteString("program\n")
	for _, s := range p.Stmts {
		dumpStmt(&b, s, 1)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch n := s.(type) {
	case *Let:
		fmt.Fprintf(b, "let %s\n", n.Name)
		dumpExpr(b, n.Init, depth+1)
	case *FuncDecl:
		fmt.Fprintf(b, "func %s(%s)\n", n.Name, strings.Join(n.Params, ", "))
		dumpStmt(b, n.Body, depth+1)
	case *If:
		b.WriteString("if\n")
		dumpExpr(b, n.Cond, depth+1)
		dumpStmt(b, n.Then, depth+1)
		if n.Else != nil {
			indent(b, depth)
			b.WriteString("else\n")
			dumpStmt(b, n.Else, depth+1)
		}
	case *Return:
		b.WriteString("return\n")
		if n.Value != nil {
			dumpExpr(b, n.Value, depth+1)
		}
	case *ExprStmt:
		b.WriteString("expr-stmt\n")
		dumpExpr(b, n.X, depth+1)
	case *Block:
		b.WriteString("block\n")
		for _, sub := range n.Stmts {
			dumpStmt(b, sub, depth+1)
		}
	default:
		fmt.Fprintf(b, "<unknown stmt %T>\n", s)
	}
}

func dumpExpr(b *strings.Builder, e Expr, depth int) {
	indent(b, depth)
	switch n := e.(type) {
	case *NumberLit:
		fmt.Fprintf(b, "num %s\n", strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLit:
		fmt.Fprintf(b, "str %q\n", n.Value)
	case *BoolLit:
		fmt.Fprintf(b, "bool %v\n", n.Value)
	case *Ident:
		fmt.Fprintf(b, "ident %s\n", n.Name)
	case *Unary:
		fmt.Fprintf(b, "unary %s\n", opText(n.Op))
		dumpExpr(b, n.X, depth+1)
	case *Binary:
		fmt.Fprintf(b, "binary %s\n", n.OpSt)
		dumpExpr(b, n.Lhs, depth+1)
		dumpExpr(b, n.Rhs, depth+1)
	case *Call:
		fmt.Fprintf(b, "call %s\n", n.Name)
		for _, a := range n.Args {
			dumpExpr(b, a, depth+1)
		}
	default:
		fmt.Fprintf(b, "<unknown expr %T>\n", e)
	}
}

func opText(tt TokenType) string {
	switch tt {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case CARET:
		return "^"
	case EQ:
		return "=="
	case NEQ:
		return "!="
	case LESS:
		return "<"
	case LESS_EQ:
		return "<="
	case GREATER:
		return ">"
	case GREATER_EQ:
		return ">="
	case AND:
		return "&&"
	case OR:
		return "||"
	case BANG:
		return "!"
	default:
		return "?"
	}
}
