package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"src.elv.sh/adt/pkg/errutil"
	"src.elv.sh/adt/pkg/prog"
	"src.elv.sh/adt/pkg/sys"
)

// Program is the subprogram that runs scenario files named on the command
// line.
type Program struct{}

const (
	failStart = "\033[31m"
	failEnd   = "\033[m"
)

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) == 0 {
		return prog.BadUsage("no scenario file given")
	}
	color := f.Color == prog.ColorAlways ||
		(f.Color == prog.ColorAuto && sys.IsTerminalFile(fds[1]))

	var errs []error
	for i, path := range args {
		if len(args) > 1 && !f.JSON {
			if i > 0 {
				fmt.Fprintln(fds[1])
			}
			fmt.Fprintf(fds[1], "# %s\n", path)
		}
		errs = append(errs, runFile(fds[1], path, f, color))
	}
	if err := errutil.Multi(errs...); err != nil {
		fmt.Fprintln(fds[2], err)
		return prog.Exit(1)
	}
	return nil
}

func runFile(w io.Writer, path string, f *prog.Flags, color bool) error {
	sc, err := ReadFile(path)
	if err != nil {
		return err
	}
	outcomes, c, runErr := Run(sc, Options{KeepGoing: f.KeepGoing})
	if runErr != nil {
		runErr = fmt.Errorf("%s: %w", path, runErr)
	}
	if f.JSON {
		if err := writeJSON(w, path, outcomes, c); err != nil {
			return errutil.Multi(runErr, err)
		}
		return runErr
	}
	for _, o := range outcomes {
		if o.Err != nil && color {
			fmt.Fprintln(w, failStart+o.String()+failEnd)
		} else {
			fmt.Fprintln(w, o.String())
		}
	}
	fmt.Fprintf(w, "%s (len %d): %s\n", sc.Container, c.Len(), c)
	return runErr
}

type jsonOutcome struct {
	Step   string `json:"step"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type jsonRun struct {
	File      string        `json:"file"`
	Steps     []jsonOutcome `json:"steps"`
	Len       int           `json:"len"`
	Container Container     `json:"container"`
}

func writeJSON(w io.Writer, path string, outcomes []Outcome, c Container) error {
	run := jsonRun{File: path, Steps: []jsonOutcome{}, Len: c.Len(), Container: c}
	for _, o := range outcomes {
		jo := jsonOutcome{Step: o.Step.String(), Result: o.Result}
		if o.Err != nil {
			jo.Error = o.Err.Error()
		}
		run.Steps = append(run.Steps, jo)
	}
	bs, err := json.Marshal(run)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}
