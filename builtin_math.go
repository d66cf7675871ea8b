package mathscript

import (
	"fmt"
	"math"
)

// ---- math built-ins ----------------------------------------------------

func registerMathBuiltins(ip *Interpreter) {
	ip.RegisterBuiltin("sin", mathUnary("sin", math.Sin))
	ip.RegisterBuiltin("cos", mathUnary("cos", math.Cos))
}

// mathUnary adapts a float function into a builtin that coerces its single
// argument to a number.
func mathUnary(name string, f func(float64) float64) BuiltinImpl {
	return func(_ *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return Unit, &RuntimeError{
				Kind: ArityMismatch,
				Msg:  fmt.Sprintf("function '%s' expected 1 arguments, got %d", name, len(args)),
			}
		}
		v, ok := args[0].number()
		if !ok {
			return Unit, &RuntimeError{
				Kind: TypeMismatch,
				Msg:  fmt.Sprintf("function '%s' expects a number, got %s", name, tagName(args[0])),
			}
		}
		return Num(f(v)), nil
	}
}
