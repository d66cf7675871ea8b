package mathscript

import "fmt"

// parser.go — Pratt parser producing the typed AST in ast.go.
//
// Expressions are parsed by precedence climbing: expr(minBP) parses a prefix
// operand, then folds infix operators whose binding power is at least minBP.
// Left-associative operators recurse with bp+1, right-associative ones (only
// '^') recurse with bp, which is what makes 2^3^2 group as 2^(3^2).
//
// Statements are a small fixed grammar on top:
//
//	let IDENT = expr ;
//	func IDENT ( params ) { stmts }
//	if ( expr ) stmtOrBlock [ else stmtOrBlock ]
//	return [expr] ;
//	expr ;
//
// A single statement is accepted anywhere a block is, but keeps its own ';'.

type ParseError struct {
	Line int
	Col  int
	Msg  string

	// AtEOF marks errors raised because input ended mid-construct. A REPL
	// treats those as "keep reading" rather than hard failures.
	AtEOF bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a parse error caused by truncated
// input, i.e. the source may become valid with more lines appended.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.AtEOF
}

// Parse lexes and parses a complete source string.
func Parse(src string) (*Program, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-scanned token stream (EOF terminated).
func ParseTokens(toks []Token) (*Program, error) {
	p := &parser{toks: toks}
	return p.program()
}

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }
func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}
func (p *parser) peekN(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}
func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	g := p.peek()
	return Token{}, &ParseError{Line: g.Line, Col: g.Col, Msg: msg, AtEOF: g.Type == EOF}
}

func (p *parser) errAt(t Token, msg string) error {
	return &ParseError{Line: t.Line, Col: t.Col, Msg: msg, AtEOF: t.Type == EOF}
}

// ───────────────────────── precedence / associativity ──────────────────────

func lbp(t TokenType) (int, bool) {
	switch t {
	case OR:
		return 10, true
	case AND:
		return 20, true
	case EQ, NEQ:
		return 30, true
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return 40, true
	case PLUS, MINUS:
		return 50, true
	case STAR, SLASH:
		return 60, true
	case CARET:
		return 70, true
	}
	return 0, false
}

func isRightAssoc(tt TokenType) bool { return tt == CARET }

const unaryBP = 80

// ───────────────────────────────── program ──────────────────────────────────

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for !p.atEnd() {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, s)
	}
	return prog, nil
}

// ──────────────────────────────── statements ────────────────────────────────

func (p *parser) statement() (Stmt, error) {
	t := p.peek()
	switch t.Type {
	case LET:
		return p.letStmt()
	case FUNC:
		return p.funcDecl()
	case IF:
		return p.ifStmt()
	case RETURN:
		return p.returnStmt()
	case LBRACE:
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *parser) letStmt() (Stmt, error) {
	kw := p.peek()
	p.i++ // consume 'let'
	name, err := p.need(IDENT, "expected variable name after 'let'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ASSIGN, "expected '=' after variable name"); err != nil {
		return nil, err
	}
	init, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after declaration"); err != nil {
		return nil, err
	}
	return &Let{pos: at(kw), Name: name.Lexeme, Init: init}, nil
}

func (p *parser) funcDecl() (Stmt, error) {
	kw := p.peek()
	p.i++ // consume 'func'
	name, err := p.need(IDENT, "expected function name after 'func'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []string
	if p.peek().Type != RPAREN {
		for {
			pn, err := p.need(IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, pn.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after parameter list"); err != nil {
		return nil, err
	}
	body, err := p.stmtOrBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{pos: at(kw), Name: name.Lexeme, Params: params, Body: body}, nil
}

// stmtOrBlock accepts either a brace-delimited block or a single statement,
// which is wrapped into a one-statement block so it runs in its own scope.
func (p *parser) stmtOrBlock() (*Block, error) {
	if p.peek().Type == LBRACE {
		b, err := p.block()
		if err != nil {
			return nil, err
		}
		return b.(*Block), nil
	}
	open := p.peek()
	s, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &Block{pos: at(open), Stmts: []Stmt{s}}, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	kw := p.peek()
	p.i++ // consume 'if'
	if _, err := p.need(LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.stmtOrBlock()
	if err != nil {
		return nil, err
	}
	var other *Block
	if p.match(ELSE) {
		other, err = p.stmtOrBlock()
		if err != nil {
			return nil, err
		}
	}
	return &If{pos: at(kw), Cond: cond, Then: then, Else: other}, nil
}

func (p *parser) returnStmt() (Stmt, error) {
	kw := p.peek()
	p.i++ // consume 'return'
	if p.match(SEMICOLON) {
		return &Return{pos: at(kw)}, nil
	}
	v, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &Return{pos: at(kw), Value: v}, nil
}

func (p *parser) exprStmt() (Stmt, error) {
	start := p.peek()
	e, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{pos: at(start), X: e}, nil
}

func (p *parser) block() (Stmt, error) {
	open := p.peek()
	p.i++ // consume '{'
	b := &Block{pos: at(open)}
	for p.peek().Type != RBRACE {
		if p.atEnd() {
			return nil, p.errAt(p.peek(), "expected '}' to close block")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	p.i++ // consume '}'
	return b, nil
}

// ─────────────────────────────── expressions ────────────────────────────────

func (p *parser) expr(minBP int) (Expr, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		bp, ok := lbp(op.Type)
		if !ok || bp < minBP {
			return left, nil
		}
		p.i++ // consume operator

		nextBP := bp + 1
		if isRightAssoc(op.Type) {
			nextBP = bp
		}
		right, err := p.expr(nextBP)
		if err != nil {
			return nil, err
		}
		left = &Binary{pos: at(op), Op: op.Type, Lhs: left, Rhs: right, OpSt: op.Lexeme}
	}
}

func (p *parser) prefix() (Expr, error) {
	t := p.peek()
	switch t.Type {
	case NUMBER:
		p.i++
		return &NumberLit{pos: at(t), Value: t.Literal.(float64)}, nil
	case STRING:
		p.i++
		return &StringLit{pos: at(t), Value: t.Literal.(string)}, nil
	case BOOLEAN:
		p.i++
		return &BoolLit{pos: at(t), Value: t.Literal.(bool)}, nil
	case MINUS, BANG:
		p.i++
		x, err := p.expr(unaryBP)
		if err != nil {
			return nil, err
		}
		return &Unary{pos: at(t), Op: t.Type, X: x}, nil
	case LPAREN:
		p.i++
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expected ')' to close grouping"); err != nil {
			return nil, err
		}
		return inner, nil
	case IDENT:
		if p.peekN(1).Type == LPAREN {
			return p.call()
		}
		p.i++
		return &Ident{pos: at(t), Name: t.Lexeme}, nil
	case EOF:
		return nil, p.errAt(t, "unexpected end of input: expected expression")
	default:
		return nil, p.errAt(t, fmt.Sprintf("unexpected token %q: expected expression", t.Lexeme))
	}
}

func (p *parser) call() (Expr, error) {
	name := p.peek()
	p.i += 2 // consume IDENT '('
	c := &Call{pos: at(name), Name: name.Lexeme}
	if p.peek().Type != RPAREN {
		for {
			a, err := p.expr(0)
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, a)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after call arguments"); err != nil {
		return nil, err
	}
	return c, nil
}
