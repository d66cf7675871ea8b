package mathscript

import "fmt"

// ---- core built-ins ----------------------------------------------------

func registerCoreBuiltins(ip *Interpreter) {
	// str_concat(args...) -> Str: every argument coerced to text.
	ip.RegisterBuiltin("str_concat", func(_ *Interpreter, args []Value) (Value, error) {
		out := ""
		for _, a := range args {
			out += a.text()
		}
		return Str(out), nil
	})

	// to_number(x) -> Num: numbers pass through, well-formed strings parse,
	// anything else is an InvalidConversion.
	ip.RegisterBuiltin("to_number", func(_ *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return Unit, &RuntimeError{
				Kind: ArityMismatch,
				Msg:  fmt.Sprintf("function 'to_number' expected 1 arguments, got %d", len(args)),
			}
		}
		v := args[0]
		switch v.Tag {
		case VTNum:
			return v, nil
		case VTStr:
			f, ok := parseNumber(v.Data.(string))
			if !ok {
				return Unit, &RuntimeError{
					Kind: InvalidConversion,
					Msg:  fmt.Sprintf("cannot convert %q to a number", v.Data.(string)),
				}
			}
			return Num(f), nil
		default:
			return Unit, &RuntimeError{
				Kind: InvalidConversion,
				Msg:  fmt.Sprintf("cannot convert %s to a number", tagName(v)),
			}
		}
	})

	// assert(message, cond): raise when cond is falsy. Handy in scripts and
	// in the language's own test programs.
	ip.RegisterBuiltin("assert", func(_ *Interpreter, args []Value) (Value, error) {
		if len(args) != 2 {
			return Unit, &RuntimeError{
				Kind: ArityMismatch,
				Msg:  fmt.Sprintf("function 'assert' expected 2 arguments, got %d", len(args)),
			}
		}
		if !args[1].truthy() {
			return Unit, &RuntimeError{
				Kind: AssertionFailed,
				Msg:  args[0].text(),
			}
		}
		return Unit, nil
	})
}
