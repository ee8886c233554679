package scenario

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.elv.sh/adt/pkg/indexedlist"
)

func outcomeStrings(outcomes []Outcome) []string {
	var ss []string
	for _, o := range outcomes {
		ss = append(ss, o.String())
	}
	return ss
}

var runTests = []struct {
	name      string
	sc        *Scenario
	keepGoing bool

	wantOutcomes []string
	wantFinal    string
	wantErr      bool
}{
	{
		name: "map",
		sc: &Scenario{Container: "map", Steps: []Step{
			{Op: "put", Key: str("a"), Value: str("1")},
			{Op: "put", Key: str("b"), Value: str("2")},
			{Op: "put", Key: str("a"), Value: str("3")},
			{Op: "get", Key: str("a")},
			{Op: "get", Key: str("missing")},
			{Op: "remove", Key: str("missing")},
			{Op: "has", Key: str("b")},
			{Op: "len"},
			{Op: "keys"},
		}},
		wantOutcomes: []string{
			`put "a" "1"`,
			`put "b" "2"`,
			`put "a" "3"`,
			`get "a" => "3"`,
			`get "missing" => not found`,
			`remove "missing"`,
			`has "b" => true`,
			`len => 2`,
			`keys => [a, b]`,
		},
		wantFinal: "[a=3, b=2]",
	},
	{
		name: "list insert",
		sc: &Scenario{Container: "list", Capacity: 1, Steps: []Step{
			{Op: "add", Value: str("10")},
			{Op: "add", Value: str("20")},
			{Op: "add", Value: str("30")},
			{Op: "insert", Index: num(1), Value: str("15")},
			{Op: "len"},
		}},
		wantOutcomes: []string{
			`add "10"`, `add "20"`, `add "30"`, `insert 1 "15"`, `len => 4`,
		},
		wantFinal: "[10, 15, 20, 30]",
	},
	{
		name: "list remove",
		sc: &Scenario{Container: "list", Steps: []Step{
			{Op: "add", Value: str("10")},
			{Op: "add", Value: str("20")},
			{Op: "add", Value: str("30")},
			{Op: "remove", Index: num(0)},
			{Op: "set", Index: num(1), Value: str("35")},
			{Op: "get", Index: num(1)},
		}},
		wantOutcomes: []string{
			`add "10"`, `add "20"`, `add "30"`, `remove 0 => "10"`,
			`set 1 "35"`, `get 1 => "35"`,
		},
		wantFinal: "[20, 35]",
	},
	{
		name: "list out of bounds stops",
		sc: &Scenario{Container: "list", Steps: []Step{
			{Op: "add", Value: str("10")},
			{Op: "add", Value: str("20")},
			{Op: "get", Index: num(5)},
			{Op: "add", Value: str("30")},
		}},
		wantOutcomes: []string{
			`add "10"`, `add "20"`,
			`get 5 !! get: index out of range: must be from 0 to 1, but is 5`,
		},
		wantFinal: "[10, 20]",
		wantErr:   true,
	},
	{
		name: "list out of bounds keep going",
		sc: &Scenario{Container: "list", Steps: []Step{
			{Op: "remove", Index: num(0)},
			{Op: "add", Value: str("10")},
			{Op: "insert", Index: num(3), Value: str("x")},
		}},
		keepGoing: true,
		wantOutcomes: []string{
			`remove 0 !! remove: index out of range: list is empty, but index is 0`,
			`add "10"`,
			`insert 3 "x" !! insert: index out of range: must be from 0 to 1, but is 3`,
		},
		wantFinal: "[10]",
		wantErr:   true,
	},
	{
		name: "set",
		sc: &Scenario{Container: "set", Steps: []Step{
			{Op: "add", Value: str("a")},
			{Op: "add", Value: str("a")},
			{Op: "add", Value: str("b")},
			{Op: "contains", Value: str("a")},
			{Op: "remove", Value: str("a")},
			{Op: "contains", Value: str("a")},
			{Op: "len"},
		}},
		wantOutcomes: []string{
			`add "a"`, `add "a"`, `add "b"`, `contains "a" => true`,
			`remove "a"`, `contains "a" => false`, `len => 1`,
		},
		wantFinal: "[b]",
	},
	{
		name: "bag",
		sc: &Scenario{Container: "bag", Steps: []Step{
			{Op: "add", Value: str("a")},
			{Op: "add", Value: str("b")},
			{Op: "add", Value: str("a")},
			{Op: "count", Value: str("a")},
			{Op: "remove", Value: str("b")},
			{Op: "len"},
		}},
		wantOutcomes: []string{
			`add "a"`, `add "b"`, `add "a"`, `count "a" => 2`,
			`remove "b"`, `len => 2`,
		},
		wantFinal: "[a, a]",
	},
}

func TestRun(t *testing.T) {
	for _, test := range runTests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.sc.Validate(); err != nil {
				t.Fatalf("invalid test scenario: %v", err)
			}
			outcomes, c, err := Run(test.sc, Options{KeepGoing: test.keepGoing})
			if diff := cmp.Diff(test.wantOutcomes, outcomeStrings(outcomes)); diff != "" {
				t.Errorf("outcomes (-want +got):\n%s", diff)
			}
			if final := c.String(); final != test.wantFinal {
				t.Errorf("final container %s, want %s", final, test.wantFinal)
			}
			if (err != nil) != test.wantErr {
				t.Errorf("got error %v, want error: %v", err, test.wantErr)
			}
		})
	}
}

func TestRun_ErrorWrapsOutOfBounds(t *testing.T) {
	sc := &Scenario{Container: "list", Steps: []Step{
		{Op: "get", Index: num(0)},
		{Op: "set", Index: num(1), Value: str("x")},
	}}
	_, _, err := Run(sc, Options{KeepGoing: true})
	var oob *indexedlist.OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("error %v does not wrap *OutOfBoundsError", err)
	}
	if oob.Op != "get" {
		t.Errorf("first wrapped error is from %q, want get", oob.Op)
	}
	want := "multiple errors: " +
		"step 1 (get): get: index out of range: list is empty, but index is 0; " +
		"step 2 (set): set: index out of range: list is empty, but index is 1"
	if err.Error() != want {
		t.Errorf("got error %q, want %q", err, want)
	}
}

func TestRun_ContainerMarshalsJSON(t *testing.T) {
	sc := &Scenario{Container: "map", Steps: []Step{
		{Op: "put", Key: str("k"), Value: str("v")},
	}}
	_, c, _ := Run(sc, Options{})
	bs, err := json.Marshal(c)
	if err != nil || string(bs) != `{"k":"v"}` {
		t.Errorf("json.Marshal -> (%s, %v), want {\"k\":\"v\"}", bs, err)
	}
}

func TestRun_CapacityAppliesToEveryContainer(t *testing.T) {
	for _, name := range Containers() {
		t.Run(name, func(t *testing.T) {
			_, c, err := Run(&Scenario{Container: name, Capacity: 1}, Options{})
			if err != nil {
				t.Fatalf("got error %v", err)
			}
			if got := c.(interface{ Cap() int }).Cap(); got != 1 {
				t.Errorf("capacity of %s is %d, want 1", name, got)
			}
		})
	}
}
