// interpreter.go — tree-walking evaluator.
//
// Statements execute in order against a scope chain rooted at the Global
// environment. Statement execution yields a control signal: ctrlNone
// (continue) or ctrlReturn (propagate upward to the nearest function call
// boundary, carrying the return value). A return signal reaching the top
// level is a ReturnOutsideFunction error.
//
// User-defined functions do not close over their defining scope: a call frame
// parents directly on Global, so globals are visible from function bodies but
// caller locals never are.
package mathscript

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
)

// BuiltinImpl is the implementation signature for native built-in functions.
// Arguments arrive already evaluated, in call order. A returned *RuntimeError
// is annotated with the call site position by the evaluator.
type BuiltinImpl func(ip *Interpreter, args []Value) (Value, error)

type ctrl int

const (
	ctrlNone ctrl = iota
	ctrlReturn
)

// Interpreter is the entry point for evaluating MathScript programs.
//
// Global is the persistent program environment; successive EvalSource calls
// on the same interpreter accumulate bindings there (the REPL relies on
// this). Output and input collaborators default to the process stdio and are
// replaceable via options, which is how tests capture print output and feed
// readln.
type Interpreter struct {
	Global *Env

	builtins map[string]BuiltinImpl
	out      io.Writer
	in       *bufio.Reader
	frames   []Frame
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithStdout replaces the output collaborator used by print/println.
func WithStdout(w io.Writer) Option {
	return func(ip *Interpreter) { ip.out = w }
}

// WithStdin replaces the input collaborator consumed by readln.
func WithStdin(r io.Reader) Option {
	return func(ip *Interpreter) { ip.in = bufio.NewReader(r) }
}

// WithBuiltin installs (or overrides) a native function before first use.
func WithBuiltin(name string, impl BuiltinImpl) Option {
	return func(ip *Interpreter) { ip.builtins[name] = impl }
}

// New returns a ready-to-use interpreter with the standard built-ins
// installed and stdio collaborators wired to the process.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		Global:   NewEnv(nil),
		builtins: make(map[string]BuiltinImpl),
		out:      os.Stdout,
		in:       bufio.NewReader(os.Stdin),
	}
	registerCoreBuiltins(ip)
	registerIOBuiltins(ip)
	registerMathBuiltins(ip)
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// RegisterBuiltin installs a native function under the given name.
func (ip *Interpreter) RegisterBuiltin(name string, impl BuiltinImpl) {
	ip.builtins[name] = impl
}

// Builtins reports the installed built-in names (for REPL completion).
func (ip *Interpreter) Builtins() []string {
	out := make([]string, 0, len(ip.builtins))
	for name := range ip.builtins {
		out = append(out, name)
	}
	return out
}

// GlobalNames reports the names bound in the global environment.
func (ip *Interpreter) GlobalNames() []string {
	out := make([]string, 0, len(ip.Global.table))
	for name := range ip.Global.table {
		out = append(out, name)
	}
	return out
}

// Run evaluates a parsed program in the global environment and returns the
// value of its last expression statement (Unit for an empty program or one
// ending in a declaration).
func (ip *Interpreter) Run(prog *Program) (Value, error) {
	last := Unit
	for _, s := range prog.Stmts {
		v, c, err := ip.execStmt(s, ip.Global)
		if err != nil {
			return Unit, err
		}
		if c == ctrlReturn {
			line, col := s.Pos()
			return Unit, &RuntimeError{
				Kind: ReturnOutsideFunction,
				Line: line, Col: col,
				Msg: "'return' outside of a function",
			}
		}
		last = v
	}
	return last, nil
}

// EvalSource parses and runs src in the global environment. Errors are
// returned with a caret-annotated source snippet.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	return ip.EvalSourceNamed("", src)
}

// EvalSourceNamed is EvalSource with a source name for error headers.
func (ip *Interpreter) EvalSourceNamed(name, src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Unit, WrapErrorWithName(err, name, src)
	}
	v, err := ip.Run(prog)
	if err != nil {
		return Unit, WrapErrorWithName(err, name, src)
	}
	return v, nil
}

// ─────────────────────────────── statements ────────────────────────────────

func (ip *Interpreter) execStmt(s Stmt, env *Env) (Value, ctrl, error) {
	switch n := s.(type) {
	case *Let:
		// The initializer runs before the binding exists, so `let x = x;`
		// resolves any outer x.
		v, err := ip.evalExpr(n.Init, env)
		if err != nil {
			return Unit, ctrlNone, err
		}
		env.Define(n.Name, v)
		return Unit, ctrlNone, nil

	case *FuncDecl:
		env.Define(n.Name, FunVal(&Fun{Name: n.Name, Params: n.Params, Body: n.Body}))
		return Unit, ctrlNone, nil

	case *If:
		cond, err := ip.evalExpr(n.Cond, env)
		if err != nil {
			return Unit, ctrlNone, err
		}
		if cond.truthy() {
			return ip.execStmt(n.Then, env)
		}
		if n.Else != nil {
			return ip.execStmt(n.Else, env)
		}
		return Unit, ctrlNone, nil

	case *Return:
		v := Unit
		if n.Value != nil {
			var err error
			v, err = ip.evalExpr(n.Value, env)
			if err != nil {
				return Unit, ctrlNone, err
			}
		}
		return v, ctrlReturn, nil

	case *ExprStmt:
		v, err := ip.evalExpr(n.X, env)
		if err != nil {
			return Unit, ctrlNone, err
		}
		return v, ctrlNone, nil

	case *Block:
		// Fresh child scope, discarded on exit.
		return ip.execStmts(n.Stmts, NewEnv(env))

	default:
		line, col := s.Pos()
		return Unit, ctrlNone, &RuntimeError{
			Kind: TypeMismatch, Line: line, Col: col,
			Msg: fmt.Sprintf("cannot execute statement %T", s),
		}
	}
}

func (ip *Interpreter) execStmts(stmts []Stmt, env *Env) (Value, ctrl, error) {
	last := Unit
	for _, s := range stmts {
		v, c, err := ip.execStmt(s, env)
		if err != nil {
			return Unit, ctrlNone, err
		}
		if c == ctrlReturn {
			return v, ctrlReturn, nil
		}
		last = v
	}
	return last, ctrlNone, nil
}

// ─────────────────────────────── expressions ───────────────────────────────

func (ip *Interpreter) evalExpr(e Expr, env *Env) (Value, error) {
	switch n := e.(type) {
	case *NumberLit:
		return Num(n.Value), nil
	case *StringLit:
		return Str(n.Value), nil
	case *BoolLit:
		return Bool(n.Value), nil

	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			return Unit, ip.rtErr(n, UndefinedVariable, fmt.Sprintf("undefined variable '%s'", n.Name))
		}
		return v, nil

	case *Unary:
		return ip.evalUnary(n, env)

	case *Binary:
		return ip.evalBinary(n, env)

	case *Call:
		return ip.evalCall(n, env)

	default:
		line, col := e.Pos()
		return Unit, &RuntimeError{
			Kind: TypeMismatch, Line: line, Col: col,
			Msg: fmt.Sprintf("cannot evaluate expression %T", e),
		}
	}
}

func (ip *Interpreter) evalUnary(n *Unary, env *Env) (Value, error) {
	v, err := ip.evalExpr(n.X, env)
	if err != nil {
		return Unit, err
	}
	switch n.Op {
	case MINUS:
		f, ok := v.number()
		if !ok {
			return Unit, ip.rtErr(n, TypeMismatch, fmt.Sprintf("cannot negate %s", tagName(v)))
		}
		return Num(-f), nil
	case BANG:
		return Bool(!v.truthy()), nil
	default:
		return Unit, ip.rtErr(n, TypeMismatch, fmt.Sprintf("unknown unary operator %s", opText(n.Op)))
	}
}

func (ip *Interpreter) evalBinary(n *Binary, env *Env) (Value, error) {
	// Short-circuit operators evaluate the right side only when needed.
	switch n.Op {
	case AND:
		lhs, err := ip.evalExpr(n.Lhs, env)
		if err != nil {
			return Unit, err
		}
		if !lhs.truthy() {
			return Bool(false), nil
		}
		rhs, err := ip.evalExpr(n.Rhs, env)
		if err != nil {
			return Unit, err
		}
		return Bool(rhs.truthy()), nil
	case OR:
		lhs, err := ip.evalExpr(n.Lhs, env)
		if err != nil {
			return Unit, err
		}
		if lhs.truthy() {
			return Bool(true), nil
		}
		rhs, err := ip.evalExpr(n.Rhs, env)
		if err != nil {
			return Unit, err
		}
		return Bool(rhs.truthy()), nil
	}

	lhs, err := ip.evalExpr(n.Lhs, env)
	if err != nil {
		return Unit, err
	}
	rhs, err := ip.evalExpr(n.Rhs, env)
	if err != nil {
		return Unit, err
	}

	switch n.Op {
	case PLUS:
		// String on either side turns '+' into concatenation.
		if lhs.Tag == VTStr || rhs.Tag == VTStr {
			return Str(lhs.text() + rhs.text()), nil
		}
		return ip.arith(n, lhs, rhs, func(a, b float64) float64 { return a + b })
	case MINUS:
		return ip.arith(n, lhs, rhs, func(a, b float64) float64 { return a - b })
	case STAR:
		return ip.arith(n, lhs, rhs, func(a, b float64) float64 { return a * b })
	case SLASH:
		// IEEE float division; x/0 follows float semantics.
		return ip.arith(n, lhs, rhs, func(a, b float64) float64 { return a / b })
	case CARET:
		return ip.arith(n, lhs, rhs, math.Pow)

	case EQ:
		eq, err := ip.valueEq(n, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		return Bool(eq), nil
	case NEQ:
		eq, err := ip.valueEq(n, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		return Bool(!eq), nil

	case LESS:
		return ip.compare(n, lhs, rhs, func(a, b float64) bool { return a < b })
	case LESS_EQ:
		return ip.compare(n, lhs, rhs, func(a, b float64) bool { return a <= b })
	case GREATER:
		return ip.compare(n, lhs, rhs, func(a, b float64) bool { return a > b })
	case GREATER_EQ:
		return ip.compare(n, lhs, rhs, func(a, b float64) bool { return a >= b })

	default:
		return Unit, ip.rtErr(n, TypeMismatch, fmt.Sprintf("unknown operator %q", n.OpSt))
	}
}

func (ip *Interpreter) arith(n *Binary, lhs, rhs Value, f func(a, b float64) float64) (Value, error) {
	a, okA := lhs.number()
	b, okB := rhs.number()
	if !okA || !okB {
		bad := lhs
		if okA {
			bad = rhs
		}
		return Unit, ip.rtErr(n, TypeMismatch,
			fmt.Sprintf("operator %q expects numbers, got %s", n.OpSt, tagName(bad)))
	}
	return Num(f(a, b)), nil
}

func (ip *Interpreter) compare(n *Binary, lhs, rhs Value, f func(a, b float64) bool) (Value, error) {
	a, okA := lhs.number()
	b, okB := rhs.number()
	if !okA || !okB {
		bad := lhs
		if okA {
			bad = rhs
		}
		return Unit, ip.rtErr(n, TypeMismatch,
			fmt.Sprintf("operator %q expects numbers, got %s", n.OpSt, tagName(bad)))
	}
	return Bool(f(a, b)), nil
}

// valueEq implements '==': direct comparison when both sides share a textual
// or boolean type, numeric comparison otherwise.
func (ip *Interpreter) valueEq(n *Binary, lhs, rhs Value) (bool, error) {
	if lhs.Tag == VTStr && rhs.Tag == VTStr {
		return lhs.Data.(string) == rhs.Data.(string), nil
	}
	if lhs.Tag == VTBool && rhs.Tag == VTBool {
		return lhs.Data.(bool) == rhs.Data.(bool), nil
	}
	if lhs.Tag == VTUnit && rhs.Tag == VTUnit {
		return true, nil
	}
	a, okA := lhs.number()
	b, okB := rhs.number()
	if !okA || !okB {
		return false, ip.rtErr(n, TypeMismatch,
			fmt.Sprintf("cannot compare %s with %s", tagName(lhs), tagName(rhs)))
	}
	return a == b, nil
}

// ───────────────────────────────── calls ────────────────────────────────────

func (ip *Interpreter) evalCall(n *Call, env *Env) (Value, error) {
	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := ip.evalExpr(a, env)
		if err != nil {
			return Unit, err
		}
		args = append(args, v)
	}

	// User-defined functions are ordinary bindings and shadow built-ins.
	if callee, ok := env.Get(n.Name); ok {
		fn, isFun := callee.Data.(*Fun)
		if callee.Tag != VTFun || !isFun {
			return Unit, ip.rtErr(n, TypeMismatch,
				fmt.Sprintf("'%s' is not a function (it is %s)", n.Name, tagName(callee)))
		}
		return ip.applyFun(n, fn, args)
	}

	if impl, ok := ip.builtins[n.Name]; ok {
		v, err := impl(ip, args)
		if err != nil {
			return Unit, ip.annotate(n, err)
		}
		return v, nil
	}

	return Unit, ip.rtErr(n, UndefinedFunction, fmt.Sprintf("undefined function '%s'", n.Name))
}

func (ip *Interpreter) applyFun(n *Call, fn *Fun, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return Unit, ip.rtErr(n, ArityMismatch,
			fmt.Sprintf("function '%s' expected %d arguments, got %d",
				fn.Name, len(fn.Params), len(args)))
	}

	// Call frames parent on Global: no closure over caller locals.
	fenv := NewEnv(ip.Global)
	for i, p := range fn.Params {
		fenv.Define(p, args[i])
	}

	ip.frames = append(ip.frames, Frame{Function: fn.Name, Line: n.Line, Col: n.Col})
	defer func() { ip.frames = ip.frames[:len(ip.frames)-1] }()

	v, c, err := ip.execStmts(fn.Body.Stmts, fenv)
	if err != nil {
		return Unit, err
	}
	if c == ctrlReturn {
		return v, nil
	}
	return Unit, nil
}

// ─────────────────────────────── error plumbing ─────────────────────────────

// rtErr builds a RuntimeError at the node's position, capturing the current
// call stack innermost-first.
func (ip *Interpreter) rtErr(n Node, kind ErrKind, msg string) *RuntimeError {
	line, col := n.Pos()
	e := &RuntimeError{Kind: kind, Line: line, Col: col, Msg: msg}
	for i := len(ip.frames) - 1; i >= 0; i-- {
		e.Stack = append(e.Stack, ip.frames[i])
	}
	return e
}

// annotate fills in position and stack on a *RuntimeError raised by a
// builtin, which has no node of its own.
func (ip *Interpreter) annotate(n Node, err error) error {
	re, ok := err.(*RuntimeError)
	if !ok {
		return err
	}
	if re.Line == 0 {
		re.Line, re.Col = n.Pos()
	}
	if re.Stack == nil {
		for i := len(ip.frames) - 1; i >= 0; i-- {
			re.Stack = append(re.Stack, ip.frames[i])
		}
	}
	return re
}

func tagName(v Value) string {
	switch v.Tag {
	case VTUnit:
		return "unit"
	case VTBool:
		return "a boolean"
	case VTNum:
		return "a number"
	case VTStr:
		return "a string"
	case VTFun:
		return "a function"
	default:
		return "an unknown value"
	}
}
