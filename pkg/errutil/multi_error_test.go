package errutil

import (
	"errors"
	"testing"

	"src.elv.sh/adt/pkg/tt"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	tt.Test(t, tt.Fn("Multi", Multi), tt.Table{
		tt.Args().Rets(nil),
		tt.Args(nil, nil).Rets(nil),
		tt.Args(nil, err1, nil).Rets(err1),
		tt.Args(err1, err2).Rets(multiError{err1, err2}),
		tt.Args(Multi(err1, err2), err3).Rets(multiError{err1, err2, err3}),
	})
}

func TestMulti_Error(t *testing.T) {
	want := "multiple errors: error 1; error 2"
	if got := Multi(err1, err2).Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMulti_Is(t *testing.T) {
	err := Multi(err1, err2)
	if !errors.Is(err, err2) {
		t.Errorf("errors.Is(%v, err2) = false, want true", err)
	}
	if errors.Is(err, err3) {
		t.Errorf("errors.Is(%v, err3) = true, want false", err)
	}
}
