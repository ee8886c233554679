package scenario

import (
	"encoding/json"
	"fmt"
	"strconv"

	"src.elv.sh/adt/pkg/bag"
	"src.elv.sh/adt/pkg/densemap"
	"src.elv.sh/adt/pkg/errutil"
	"src.elv.sh/adt/pkg/indexedlist"
	"src.elv.sh/adt/pkg/logutil"
	"src.elv.sh/adt/pkg/seq"
	"src.elv.sh/adt/pkg/set"
)

var logger = logutil.GetLogger("[scenario] ")

// Container is the part of a container's API that is common to all kinds.
type Container interface {
	json.Marshaler
	fmt.Stringer
	Len() int
}

// Outcome is the outcome of running one step.
type Outcome struct {
	Step Step
	// Rendering of the value the operation returned, or "" if it returns
	// nothing.
	Result string
	Err    error
}

func (o Outcome) String() string {
	switch {
	case o.Err != nil:
		return o.Step.String() + " !! " + o.Err.Error()
	case o.Result == "":
		return o.Step.String()
	default:
		return o.Step.String() + " => " + o.Result
	}
}

// Options controls Run.
type Options struct {
	// Run all steps even after one fails.
	KeepGoing bool
}

// Run runs the steps of a validated scenario against a new container. It
// returns the outcomes of the steps that were run and the container in its
// final state. The error is that of the first failed step, or, with
// KeepGoing, all failures combined.
func Run(sc *Scenario, opts Options) ([]Outcome, Container, error) {
	c := newTarget(sc.Container, sc.Capacity)
	logger.Printf("running %d steps against a %s", len(sc.Steps), sc.Container)
	var outcomes []Outcome
	var errs []error
	for i, step := range sc.Steps {
		result, err := c.apply(step)
		outcomes = append(outcomes, Outcome{step, result, err})
		if err != nil {
			logger.Printf("step %d failed: %v", i+1, err)
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err))
			if !opts.KeepGoing {
				break
			}
		}
	}
	return outcomes, c, errutil.Multi(errs...)
}

type target interface {
	Container
	// apply runs a step whose operation and arguments have been validated.
	apply(Step) (string, error)
}

func newTarget(container string, capacity int) target {
	switch container {
	case "map":
		return mapTarget{densemap.NewWithCapacity[string, string](capacity)}
	case "list":
		return listTarget{indexedlist.NewWithCapacity[string](capacity)}
	case "set":
		return setTarget{set.NewWithCapacity[string](capacity)}
	case "bag":
		return bagTarget{bag.NewWithCapacity[string](capacity)}
	}
	panic("unknown container " + container)
}

type mapTarget struct{ *densemap.Map[string, string] }

func (t mapTarget) apply(s Step) (string, error) {
	switch s.Op {
	case "put":
		t.Put(*s.Key, *s.Value)
	case "get":
		if v, ok := t.Get(*s.Key); ok {
			return strconv.Quote(v), nil
		}
		return "not found", nil
	case "has":
		return strconv.FormatBool(t.HasKey(*s.Key)), nil
	case "remove":
		t.Remove(*s.Key)
	case "len":
		return strconv.Itoa(t.Len()), nil
	case "keys":
		return seq.Format[string](t.Iterator()), nil
	}
	return "", nil
}

type listTarget struct{ *indexedlist.List[string] }

func (t listTarget) apply(s Step) (string, error) {
	switch s.Op {
	case "add":
		t.Add(*s.Value)
	case "set":
		return "", t.Set(*s.Index, *s.Value)
	case "get":
		return quoteOrError(t.Get(*s.Index))
	case "insert":
		return "", t.Insert(*s.Index, *s.Value)
	case "remove":
		return quoteOrError(t.Remove(*s.Index))
	case "len":
		return strconv.Itoa(t.Len()), nil
	}
	return "", nil
}

func quoteOrError(s string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strconv.Quote(s), nil
}

type setTarget struct{ *set.Set[string] }

func (t setTarget) apply(s Step) (string, error) {
	switch s.Op {
	case "add":
		t.Add(*s.Value)
	case "contains":
		return strconv.FormatBool(t.Contains(*s.Value)), nil
	case "remove":
		t.Remove(*s.Value)
	case "len":
		return strconv.Itoa(t.Len()), nil
	}
	return "", nil
}

type bagTarget struct{ *bag.Bag[string] }

func (t bagTarget) apply(s Step) (string, error) {
	switch s.Op {
	case "add":
		t.Add(*s.Value)
	case "count":
		return strconv.Itoa(t.Count(*s.Value)), nil
	case "remove":
		t.Remove(*s.Value)
	case "len":
		return strconv.Itoa(t.Len()), nil
	}
	return "", nil
}
