package must

import (
	"errors"
	"testing"

	"src.elv.sh/adt/pkg/testutil"
	"src.elv.sh/adt/pkg/tt"
)

var errBad = errors.New("bad")

func TestOK(t *testing.T) {
	tt.Test(t, tt.Fn("recover OK", func(err error) any {
		return testutil.Recover(func() { OK(err) })
	}), tt.Table{
		tt.Args(nil).Rets(nil),
		tt.Args(errBad).Rets(errBad),
	})
}

func TestOK1(t *testing.T) {
	if v := OK1(42, nil); v != 42 {
		t.Errorf("OK1 -> %v, want 42", v)
	}
	if r := testutil.Recover(func() { OK1(42, errBad) }); r != errBad {
		t.Errorf("OK1 panics with %v, want %v", r, errBad)
	}
}

func TestOK2(t *testing.T) {
	if a, b := OK2("a", 1, nil); a != "a" || b != 1 {
		t.Errorf("OK2 -> (%v, %v), want (a, 1)", a, b)
	}
	if r := testutil.Recover(func() { OK2("a", 1, errBad) }); r != errBad {
		t.Errorf("OK2 panics with %v, want %v", r, errBad)
	}
}
