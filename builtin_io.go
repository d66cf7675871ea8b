package mathscript

import (
	"fmt"
	"io"
	"strings"
)

// ---- I/O built-ins -----------------------------------------------------

func registerIOBuiltins(ip *Interpreter) {
	// print(args...): write the concatenated text of all arguments.
	ip.RegisterBuiltin("print", func(ip *Interpreter, args []Value) (Value, error) {
		if err := ip.writeAll(args, false); err != nil {
			return Unit, err
		}
		return Unit, nil
	})

	// println(args...): like print with a trailing newline.
	ip.RegisterBuiltin("println", func(ip *Interpreter, args []Value) (Value, error) {
		if err := ip.writeAll(args, true); err != nil {
			return Unit, err
		}
		return Unit, nil
	})

	// readln(prompt?) -> Str: write the optional prompt, then block on one
	// line of input. The trailing newline is stripped; EOF yields "".
	ip.RegisterBuiltin("readln", func(ip *Interpreter, args []Value) (Value, error) {
		if len(args) > 1 {
			return Unit, &RuntimeError{
				Kind: ArityMismatch,
				Msg:  fmt.Sprintf("function 'readln' expected at most 1 arguments, got %d", len(args)),
			}
		}
		if len(args) == 1 {
			if _, err := io.WriteString(ip.out, args[0].text()); err != nil {
				return Unit, err
			}
		}
		line, err := ip.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return Unit, err
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		return Str(line), nil
	})
}

func (ip *Interpreter) writeAll(args []Value, newline bool) error {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a.text())
	}
	if newline {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(ip.out, b.String())
	return err
}
