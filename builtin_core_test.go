package mathscript

import (
	"strings"
	"testing"
)

func Test_Builtin_StrConcat(t *testing.T) {
	wantStr(t, evalSrc(t, `str_concat("pi = ", 3.14, "!");`), "pi = 3.14!")
	wantStr(t, evalSrc(t, `str_concat();`), "")
	wantStr(t, evalSrc(t, `str_concat(true, false);`), "truefalse")
}

func Test_Builtin_StrConcat_UnitIsEmpty(t *testing.T) {
	wantStr(t, evalSrc(t, `str_concat("a", print(""), "b");`), "ab")
}

func Test_Builtin_ToNumber(t *testing.T) {
	wantNum(t, evalSrc(t, `to_number("42");`), 42)
	wantNum(t, evalSrc(t, `to_number("-2.5");`), -2.5)
	wantNum(t, evalSrc(t, `to_number(7);`), 7)
}

func Test_Builtin_ToNumber_Errors(t *testing.T) {
	wantKind(t, `to_number("seven");`, InvalidConversion)
	wantKind(t, `to_number(true);`, InvalidConversion)
	wantKind(t, `to_number("1", "2");`, ArityMismatch)
}

func Test_Builtin_Assert(t *testing.T) {
	wantUnit(t, evalSrc(t, `assert("holds", 1 == 1);`))

	re := wantKind(t, `assert("two is three", 2 == 3);`, AssertionFailed)
	if !strings.Contains(re.Msg, "two is three") {
		t.Fatalf("message: %q", re.Msg)
	}
	wantKind(t, `assert(1 == 1);`, ArityMismatch)
}

func Test_Builtin_UserFunctionShadowsBuiltin(t *testing.T) {
	wantNum(t, evalSrc(t, `
func sin(x) { return 0; }
sin(1);
`), 0)
}

func Test_Builtin_CustomRegistration(t *testing.T) {
	ip := New(WithBuiltin("double", func(_ *Interpreter, args []Value) (Value, error) {
		f, _ := args[0].number()
		return Num(f * 2), nil
	}))
	v, err := ip.EvalSource(`double(21);`)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	wantNum(t, v, 42)
}
