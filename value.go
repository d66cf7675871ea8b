package mathscript

import (
	"strconv"
	"strings"
)

// ValueTag enumerates all runtime kinds a Value may hold.
// The tag determines which type Value.Data holds.
type ValueTag int

const (
	VTUnit ValueTag = iota // unit (no payload)
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
	VTFun                  // *Fun (user-defined function)
)

// Value is the universal runtime carrier used by the evaluator.
//
// Invariants:
//   - When Tag==VTUnit, Data is nil.
//   - When Tag==VTFun, Data is *Fun.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Unit is the singleton unit Value.
var Unit = Value{Tag: VTUnit}

// Primitive constructors for convenience.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// Fun is a user-defined function stored as an ordinary named binding.
// Functions do not capture their defining scope; call frames parent on the
// global environment.
type Fun struct {
	Name   string
	Params []string
	Body   *Block
}

// FunVal wraps *Fun into a Value (Tag=VTFun).
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// String renders a debug representation; use text() for program-visible text.
func (v Value) String() string {
	switch v.Tag {
	case VTUnit:
		return "unit"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return strconv.Quote(v.Data.(string))
	case VTFun:
		return "<func " + v.Data.(*Fun).Name + ">"
	default:
		return "<unknown>"
	}
}

// text is the program-visible textual form: the coercion used by
// string-concatenating '+', print, println and str_concat.
func (v Value) text() string {
	switch v.Tag {
	case VTUnit:
		return ""
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTFun:
		return "<func " + v.Data.(*Fun).Name + ">"
	default:
		return ""
	}
}

// truthy is the coercion used by if, &&, || and unary '!'. Falsy values:
// the number 0, the strings "", "0" and "false", the boolean false, and
// unit. Everything else is truthy.
func (v Value) truthy() bool {
	switch v.Tag {
	case VTUnit:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTNum:
		return v.Data.(float64) != 0
	case VTStr:
		s := v.Data.(string)
		return s != "" && s != "0" && s != "false"
	default:
		return true
	}
}

// number attempts the numeric coercion used by arithmetic, comparisons,
// unary '-', sin and cos. Numbers pass through, well-formed strings parse,
// booleans map to 1/0. Unit and functions are not coercible.
func (v Value) number() (float64, bool) {
	switch v.Tag {
	case VTNum:
		return v.Data.(float64), true
	case VTStr:
		return parseNumber(v.Data.(string))
	case VTBool:
		if v.Data.(bool) {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// parseNumber parses decimal text into a float64. Leading/trailing spaces
// are rejected along with anything strconv would refuse (hex, inf, nan are
// not part of the language's numeric syntax).
func parseNumber(s string) (float64, bool) {
	if s == "" || strings.TrimSpace(s) != s {
		return 0, false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") ||
		strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "-0x") ||
		strings.HasPrefix(lower, "+0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
