// errors.go: runtime error taxonomy and caret-snippet rendering.
//
// WrapErrorWithSource recognizes *LexError, *ParseError and *RuntimeError and
// reformats them as a multi-line snippet with a caret under the offending
// column, e.g.
//
//	PARSE ERROR at 2:14: expected ';' after declaration
//
//	   1 | let a = 1;
//	   2 | let b = a + 2
//	       |             ^
//	   3 | println(b);
//
// Any other error is returned unchanged.
package mathscript

import (
	"fmt"
	"strings"
)

// ErrKind classifies runtime failures.
type ErrKind int

const (
	UndefinedVariable ErrKind = iota
	UndefinedFunction
	TypeMismatch
	ArityMismatch
	InvalidConversion
	ReturnOutsideFunction
	AssertionFailed
)

func (k ErrKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedFunction:
		return "UndefinedFunction"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case InvalidConversion:
		return "InvalidConversion"
	case ReturnOutsideFunction:
		return "ReturnOutsideFunction"
	case AssertionFailed:
		return "AssertionFailed"
	default:
		return "Unknown"
	}
}

// Frame is one entry of the call stack at the moment a runtime error was
// raised, innermost first.
type Frame struct {
	Function string // called function name
	Line     int
	Col      int
}

// RuntimeError represents an execution-time failure with a source location.
// Line is 1-based and Col is 0-based, matching token coordinates.
type RuntimeError struct {
	Kind  ErrKind
	Line  int
	Col   int
	Msg   string
	Stack []Frame
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s: %s", e.Line, e.Col+1, e.Kind, e.Msg)
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes lex/parse/runtime errors and
// leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (file path or
// "<repl>") included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Col is 0-based; render as 1-based.
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
		out := prettyErrorStringLabeled(src, "RUNTIME ERROR", srcName, e.Line, e.Col+1, msg)
		if len(e.Stack) > 0 {
			var b strings.Builder
			b.WriteString(out)
			b.WriteString("\ncall stack (innermost first):\n")
			for _, f := range e.Stack {
				fmt.Fprintf(&b, "  %s at %d:%d\n", f.Function, f.Line, f.Col+1)
			}
			out = b.String()
		}
		return fmt.Errorf("%s", out)
	default:
		return err
	}
}

// snippetContext is how many source lines are shown on each side of the
// offending line.
const snippetContext = 1

// prettyErrorStringLabeled builds a snippet with a header, a window of
// snippetContext lines around the error, and a caret. Coordinates are
// 1-based here and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	line = clamp(line, 1, len(lines))
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	first := clamp(line-snippetContext, 1, len(lines))
	last := clamp(line+snippetContext, 1, len(lines))
	for n := first; n <= last; n++ {
		fmt.Fprintf(&b, "%4d | %s\n", n, lines[n-1])
		if n == line {
			fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
