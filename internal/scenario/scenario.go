// Package scenario loads and runs scripted pool workloads.
//
// A script is a TOML file holding one or more [[scenario]] tables. Each
// scenario is a list of steps executed in order against a fresh pool; a
// step may carry expectations that are checked after it runs.
//
//	[[scenario]]
//	name = "garbage then compact"
//
//	  [[scenario.step]]
//	  op = "init"
//
//	  [[scenario.step]]
//	  op = "insert"
//	  size = 100000
//	  expect = 1
//
// The pool starts uninitialized, as a fresh pool.New does.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/objpool/pool/arena"
)

// Op names a pool operation.
type Op string

const (
	OpInit     Op = "init"
	OpDestroy  Op = "destroy"
	OpInsert   Op = "insert"
	OpRetrieve Op = "retrieve"
	OpAddRef   Op = "add_ref"
	OpDropRef  Op = "drop_ref"
	OpCompact  Op = "compact"
	OpDump     Op = "dump"
	OpWrite    Op = "write"
	OpCheck    Op = "check"
)

var knownOps = map[Op]bool{
	OpInit: true, OpDestroy: true, OpInsert: true, OpRetrieve: true,
	OpAddRef: true, OpDropRef: true, OpCompact: true, OpDump: true,
	OpWrite: true, OpCheck: true,
}

// ErrInvalid is wrapped by every load-time validation error.
var ErrInvalid = errors.New("scenario: invalid script")

// Scenario is one named script.
type Scenario struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	// Capacity of each arena; zero selects pool.DefaultCapacity.
	Capacity int `toml:"capacity"`
	// Backing is "heap", "mmap" or empty for the runner's default.
	Backing string `toml:"backing"`
	Steps   []Step `toml:"step"`
}

// Step is a single operation plus optional expectations.
// Pointer fields are expectations that are only checked when present.
type Step struct {
	Op    Op     `toml:"op"`
	Label string `toml:"label"`

	Size    int    `toml:"size"`
	Handle  uint64 `toml:"handle"`
	Offset  int    `toml:"offset"`
	Pattern string `toml:"pattern"`

	// Expect is the handle an insert should return; 0 expects a failure.
	Expect *uint64 `toml:"expect"`
	// Found is whether a retrieve should find a live block.
	Found *bool `toml:"found"`
	// Refs is the reference count of Handle after the step; 0 also
	// matches an unregistered handle.
	Refs *int `toml:"refs"`
	// Records is the registry length after the step.
	Records *int `toml:"records"`
	// Collected is the bytes freed by the most recent compaction.
	Collected *int `toml:"collected"`
}

type file struct {
	Scenarios []Scenario `toml:"scenario"`
}

// Load decodes and validates every scenario in r. Unknown keys are errors.
func Load(r io.Reader) ([]Scenario, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: no [[scenario]] tables", ErrInvalid)
	}
	for i := range f.Scenarios {
		if err := f.Scenarios[i].validate(); err != nil {
			return nil, err
		}
	}
	return f.Scenarios, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) ([]Scenario, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	list, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scenario without a name", ErrInvalid)
	}
	if s.Capacity < 0 {
		return fmt.Errorf("%w: %s: negative capacity %d", ErrInvalid, s.Name, s.Capacity)
	}
	if s.Backing != "" {
		if _, err := arena.ParseBacking(s.Backing); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, s.Name, err)
		}
	}
	for i, st := range s.Steps {
		if !knownOps[st.Op] {
			return fmt.Errorf("%w: %s: step %d: unknown op %q", ErrInvalid, s.Name, i+1, st.Op)
		}
		if (st.Op == OpWrite || st.Op == OpCheck) && st.Pattern == "" {
			return fmt.Errorf("%w: %s: step %d: %s needs a pattern", ErrInvalid, s.Name, i+1, st.Op)
		}
	}
	return nil
}

// Find returns the scenario called name.
func Find(list []Scenario, name string) (Scenario, bool) {
	for _, s := range list {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
