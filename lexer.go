package mathscript

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"
	COMMA     // ","
	SEMICOLON // ";"

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	CARET
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	BANG
	AND // "&&"
	OR  // "||"

	// Literals & identifiers
	IDENT
	STRING
	NUMBER
	BOOLEAN

	// Keywords
	LET
	FUNC
	IF
	ELSE
	RETURN
)

// Token is a lexical token with optional literal value.
// Line is 1-based, Col is 0-based.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals
	Line    int
	Col     int
}

// keywords map
var keywords = map[string]TokenType{
	"let":    LET,
	"func":   FUNC,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
	"true":   BOOLEAN,
	"false":  BOOLEAN,
}

// Lexer scans a MathScript source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) rewindToStart() {
	// Restore the full scanner position, not just the cursor: the re-scan
	// counts the first byte again, so col/line must roll back too.
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		case '/':
			// "//" line comment; a lone '/' is the division operator
			if b, ok := l.peekN(1); !ok || b != '/' {
				return
			}
			for {
				b, ok := l.peek()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
			l.start = l.cur
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// ----- errors -----

type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

// scanString parses a double-quoted string literal. No escape processing;
// the literal runs to the next '"'.
func (l *Lexer) scanString() (string, error) {
	// consume the opening quote
	l.advance()
	contentStart := l.cur
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return l.src[contentStart : l.cur-1], nil
		}
	}
	return "", l.err("string was not terminated")
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber parses digits with an optional single '.' and fractional digits.
// A second '.' in the same literal is malformed. A leading '-' is never part
// of the literal; negation is a unary operator handled by the parser.
func (l *Lexer) scanNumber() (float64, error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	if b, ok := l.peek(); ok && b == '.' {
		l.advance()
		sawFrac := false
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
			sawFrac = true
		}
		if !sawFrac {
			return 0, l.err("malformed number: expected digits after decimal point")
		}
		if b, ok := l.peek(); ok && b == '.' {
			return 0, l.err("malformed number: second decimal point")
		}
	}

	lex := l.src[l.start:l.cur]
	v, ok := parseNumber(lex)
	if !ok {
		return 0, l.err("invalid numeric literal")
	}
	return v, nil
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespaceAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.advance()

	// Single-char tokens & punctuation
	switch ch {
	case '(':
		return l.addToken(LPAREN, "("), nil
	case ')':
		return l.addToken(RPAREN, ")"), nil
	case '{':
		return l.addToken(LBRACE, "{"), nil
	case '}':
		return l.addToken(RBRACE, "}"), nil
	case ',':
		return l.addToken(COMMA, ","), nil
	case ';':
		return l.addToken(SEMICOLON, ";"), nil
	case '+':
		return l.addToken(PLUS, "+"), nil
	case '-':
		return l.addToken(MINUS, "-"), nil
	case '*':
		return l.addToken(STAR, "*"), nil
	case '/':
		return l.addToken(SLASH, "/"), nil
	case '^':
		return l.addToken(CARET, "^"), nil
	}

	// Two-char operators and fallbacks
	switch ch {
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(EQ, "=="), nil
		}
		return l.addToken(ASSIGN, "="), nil
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(NEQ, "!="), nil
		}
		return l.addToken(BANG, "!"), nil
	case '<':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(LESS_EQ, "<="), nil
		}
		return l.addToken(LESS, "<"), nil
	case '>':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(GREATER_EQ, ">="), nil
		}
		return l.addToken(GREATER, ">"), nil
	case '&':
		if b, ok := l.peek(); ok && b == '&' {
			l.advance()
			return l.addToken(AND, "&&"), nil
		}
		return Token{}, l.err("unexpected character: '&' (did you mean '&&'?)")
	case '|':
		if b, ok := l.peek(); ok && b == '|' {
			l.advance()
			return l.addToken(OR, "||"), nil
		}
		return Token{}, l.err("unexpected character: '|' (did you mean '||'?)")
	}

	// Strings
	if ch == '"' {
		l.rewindToStart()
		text, err := l.scanString()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(STRING, text), nil
	}

	// Numbers (starting with digit)
	if isDigit(ch) {
		l.rewindToStart()
		v, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(NUMBER, v), nil
	}

	// Identifiers / Keywords
	if isAlpha(ch) {
		l.rewindToStart()
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			if tt == BOOLEAN {
				return l.addToken(BOOLEAN, lex == "true"), nil
			}
			return l.addToken(tt, lex), nil
		}
		return l.addToken(IDENT, lex), nil
	}

	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
