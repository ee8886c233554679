// Package scenario runs sequences of container operations described in
// scenario files, and implements the subprogram of the adt command that does
// that.
//
// A scenario names one container kind and a list of steps:
//
//	container: list
//	capacity: 4
//	steps:
//	  - {op: add, value: "10"}
//	  - {op: insert, index: 1, value: "15"}
//	  - {op: get, index: 5}
//
// Scenario files may be written in YAML, TOML or JSON, chosen by the file
// extension.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"src.elv.sh/adt/pkg/errutil"
)

// Scenario is a decoded scenario file.
type Scenario struct {
	Container string `yaml:"container" toml:"container" json:"container"`
	// Initial capacity of the map underlying the container, whatever its kind.
	// Zero means the default.
	Capacity int    `yaml:"capacity" toml:"capacity" json:"capacity"`
	Steps    []Step `yaml:"steps" toml:"steps" json:"steps"`
}

// Step is one operation in a scenario. Which of Key, Index and Value are
// required depends on the container and the operation.
type Step struct {
	Op    string  `yaml:"op" toml:"op" json:"op"`
	Key   *string `yaml:"key" toml:"key" json:"key"`
	Index *int    `yaml:"index" toml:"index" json:"index"`
	Value *string `yaml:"value" toml:"value" json:"value"`
}

// String renders the step like `insert 1 "15"`.
func (s Step) String() string {
	var sb strings.Builder
	sb.WriteString(s.Op)
	if s.Key != nil {
		sb.WriteString(" " + strconv.Quote(*s.Key))
	}
	if s.Index != nil {
		sb.WriteString(" " + strconv.Itoa(*s.Index))
	}
	if s.Value != nil {
		sb.WriteString(" " + strconv.Quote(*s.Value))
	}
	return sb.String()
}

type arg uint

const (
	argKey arg = 1 << iota
	argIndex
	argValue
)

// Operations supported by each container kind, and the arguments they take.
var containerOps = map[string]map[string]arg{
	"map": {
		"put":    argKey | argValue,
		"get":    argKey,
		"has":    argKey,
		"remove": argKey,
		"len":    0,
		"keys":   0,
	},
	"list": {
		"add":    argValue,
		"set":    argIndex | argValue,
		"get":    argIndex,
		"insert": argIndex | argValue,
		"remove": argIndex,
		"len":    0,
	},
	"set": {
		"add":      argValue,
		"contains": argValue,
		"remove":   argValue,
		"len":      0,
	},
	"bag": {
		"add":    argValue,
		"count":  argValue,
		"remove": argValue,
		"len":    0,
	},
}

// Containers returns the names of the supported container kinds, sorted.
func Containers() []string {
	names := make([]string, 0, len(containerOps))
	for name := range containerOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Errors returned by Decode and ReadFile.
var (
	ErrUnknownFormat = errors.New("unknown scenario format")
	ErrUnknownFields = errors.New("unknown fields")
)

// ReadFile reads and validates a scenario file.
func ReadFile(path string) (*Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	sc, err := Decode(filepath.Ext(path), file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Decode decodes a scenario in the format identified by a file extension
// (".yaml", ".yml", ".toml" or ".json"), and validates it.
func Decode(ext string, r io.Reader) (*Scenario, error) {
	var sc Scenario
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&sc)
		if err == io.EOF {
			// Empty document.
			err = nil
		}
	case ".toml":
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&sc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("%w: %v", ErrUnknownFields, undecoded)
			}
		}
	case ".json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&sc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that the container kind is known, and that every step names
// an operation of that container with the arguments the operation requires.
// All problems are reported at once.
func (sc *Scenario) Validate() error {
	ops, ok := containerOps[sc.Container]
	if !ok {
		return fmt.Errorf("unknown container %q, want one of %s",
			sc.Container, strings.Join(Containers(), ", "))
	}
	if sc.Capacity < 0 {
		return fmt.Errorf("negative capacity %d", sc.Capacity)
	}
	var errs []error
	for i, step := range sc.Steps {
		args, ok := ops[step.Op]
		if !ok {
			errs = append(errs, fmt.Errorf("step %d: unknown %s operation %q", i+1, sc.Container, step.Op))
			continue
		}
		errs = append(errs,
			checkArg(i, step, "key", args&argKey != 0, step.Key != nil),
			checkArg(i, step, "index", args&argIndex != 0, step.Index != nil),
			checkArg(i, step, "value", args&argValue != 0, step.Value != nil))
	}
	return errutil.Multi(errs...)
}

func checkArg(i int, step Step, name string, want, has bool) error {
	switch {
	case want && !has:
		return fmt.Errorf("step %d: %s requires %s", i+1, step.Op, name)
	case !want && has:
		return fmt.Errorf("step %d: %s does not take %s", i+1, step.Op, name)
	}
	return nil
}
