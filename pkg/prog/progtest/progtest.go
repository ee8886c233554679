// Package progtest contains utilities for testing [prog.Program]
// implementations.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.elv.sh/adt/pkg/must"
	"src.elv.sh/adt/pkg/prog"
)

// Case is a test case for Test. It is created by ThatADT, and offers setters
// that return a modified copy; those calls can be chained like
// ThatADT(...).ExitsWith(...).WritesStdout(...).
type Case struct {
	args []string

	exit   int
	stdout outMatcher
	stderr outMatcher
}

type outMatcher struct {
	name     string
	content  string
	contains bool
}

func (m outMatcher) match(s string) bool {
	if m.contains {
		return strings.Contains(s, m.content)
	}
	return s == m.content
}

// ThatADT returns a new Case with the specified CLI arguments. The new Case
// expects the program to exit with 0 and write nothing.
func ThatADT(args ...string) Case {
	return Case{args: append([]string{"adt"}, args...),
		stdout: outMatcher{name: "stdout"}, stderr: outMatcher{name: "stderr"}}
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatADT("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to exit with
// the given code.
func (c Case) ExitsWith(code int) Case {
	c.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.stdout = outMatcher{"stdout", s, false}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.stdout = outMatcher{"stdout", s, true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.stderr = outMatcher{"stderr", s, false}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.stderr = outMatcher{"stderr", s, true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.args...)
			if exit != c.exit {
				t.Errorf("exit code: got %v, want %v", exit, c.exit)
			}
			for _, pair := range []struct {
				m      outMatcher
				actual string
			}{{c.stdout, stdout}, {c.stderr, stderr}} {
				if !pair.m.match(pair.actual) {
					verb := "is"
					if pair.m.contains {
						verb = "contains"
					}
					t.Errorf("want %s that %s:\n%s\ngot:\n%s",
						pair.m.name, verb, pair.m.content, pair.actual)
				}
			}
		})
	}
}

// Run runs a Program with the given arguments, the first of which is the
// program name. It returns the exit code and the outputs. Stdin is empty.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := must.OK2(os.Pipe())
	w0.Close()
	defer r0.Close()
	r1, w1 := must.OK2(os.Pipe())
	r2, w2 := must.OK2(os.Pipe())

	outCh, errCh := readAllAsync(r1), readAllAsync(r2)
	exit = prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	return exit, <-outCh, <-errCh
}

func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- string(must.OK1(io.ReadAll(r)))
		r.Close()
	}()
	return ch
}
