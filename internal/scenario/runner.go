package scenario

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool"
	"github.com/joshuapare/objpool/pool/arena"
	"github.com/joshuapare/objpool/pool/printer"
)

// Runner executes scenarios.
type Runner struct {
	// Out receives step traces, dumps and compaction statistics.
	// Default: io.Discard
	Out io.Writer

	// Printer controls dump and statistics formatting.
	Printer printer.Options

	// CheckInvariants turns on pool invariant checks for every run.
	CheckInvariants bool

	// Backing is used when a scenario does not name one.
	// Default: arena.BackingHeap
	Backing arena.Backing

	// Logger is handed to each pool. Default: the process-wide logger.
	Logger *slog.Logger
}

// Failure is an unmet expectation or an aborted step.
type Failure struct {
	Step    int    `json:"step"` // 1-based; 0 for scenario-level failures
	Op      Op     `json:"op,omitempty"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

func (f Failure) String() string {
	where := fmt.Sprintf("step %d (%s)", f.Step, f.Op)
	if f.Label != "" {
		where += " " + f.Label
	}
	if f.Step == 0 {
		where = "scenario"
	}
	return where + ": " + f.Message
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string        `json:"name"`
	Steps    int           `json:"steps"` // steps executed
	Failures []Failure     `json:"failures,omitempty"`
	Metrics  types.Metrics `json:"metrics"` // snapshot taken before the final teardown
}

// Passed reports whether every expectation held.
func (r Result) Passed() bool { return len(r.Failures) == 0 }

// run is the per-scenario state.
type run struct {
	r   *Runner
	s   Scenario
	out io.Writer
	pr  *printer.Printer
	p   *pool.Pool
	res *Result
}

// Run executes s against a fresh pool. A panic raised by the pool (for
// example an operation on an uninitialized pool) ends the scenario and is
// recorded as a failure. The pool is destroyed at the end if the script
// left it initialized.
func (r *Runner) Run(s Scenario) Result {
	res := Result{Name: s.Name}

	out := r.Out
	if out == nil {
		out = io.Discard
	}
	backing := r.Backing
	if s.Backing != "" {
		b, err := arena.ParseBacking(s.Backing)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Message: err.Error()})
			return res
		}
		backing = b
	}

	x := &run{r: r, s: s, out: out, pr: printer.New(out, r.Printer), res: &res}
	x.p = pool.New(pool.Options{
		Capacity:        s.Capacity,
		Backing:         backing,
		CheckInvariants: r.CheckInvariants,
		Logger:          r.Logger,
		OnCompact: func(st types.CompactStats) {
			_ = x.pr.PrintCompaction(st)
		},
	})

	x.tracef("=== %s\n", s.Name)
	if s.Description != "" {
		x.tracef("%s\n", s.Description)
	}

	x.steps()

	res.Metrics = x.p.Metrics()
	if x.p.Initialized() {
		if err := x.teardown(); err != nil {
			res.Failures = append(res.Failures, Failure{Message: "destroy: " + err.Error()})
		}
	}
	return res
}

// RunAll runs every scenario in order.
func (r *Runner) RunAll(list []Scenario) []Result {
	out := make([]Result, 0, len(list))
	for _, s := range list {
		out = append(out, r.Run(s))
	}
	return out
}

func (x *run) steps() {
	var cur int
	defer func() {
		if v := recover(); v != nil {
			st := x.s.Steps[cur]
			x.fail(cur, st, "panic: %v", v)
		}
	}()
	for i, st := range x.s.Steps {
		cur = i
		if st.Label != "" {
			x.tracef("\n%s\n", st.Label)
		}
		x.exec(i, st)
		x.expect(i, st)
		x.res.Steps++
	}
}

func (x *run) teardown() (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()
	return x.p.Destroy()
}

func (x *run) exec(i int, st Step) {
	p := x.p
	h := types.Handle(st.Handle)

	switch st.Op {
	case OpInit:
		if err := p.Init(); err != nil {
			x.fail(i, st, "init: %v", err)
		}

	case OpDestroy:
		if err := p.Destroy(); err != nil {
			x.fail(i, st, "destroy: %v", err)
		}

	case OpInsert:
		got, err := p.Insert(st.Size)
		if err != nil {
			x.tracef("insert %d bytes: %v\n", st.Size, err)
		} else {
			x.tracef("insert %d bytes: handle %d\n", st.Size, uint64(got))
		}
		if st.Expect != nil && uint64(got) != *st.Expect {
			if *st.Expect == 0 {
				x.fail(i, st, "insert %d: got handle %d, want failure", st.Size, uint64(got))
			} else {
				x.fail(i, st, "insert %d: got handle %d (%v), want %d", st.Size, uint64(got), err, *st.Expect)
			}
		}

	case OpRetrieve:
		_, err := p.Retrieve(h)
		found := err == nil
		if found {
			x.tracef("retrieve %d: found\n", st.Handle)
		} else {
			x.tracef("retrieve %d: %v\n", st.Handle, err)
		}
		if st.Found != nil && found != *st.Found {
			x.fail(i, st, "retrieve %d: found=%t, want %t", st.Handle, found, *st.Found)
		}

	case OpAddRef:
		p.AddReference(h)

	case OpDropRef:
		p.DropReference(h)

	case OpCompact:
		p.Compact()

	case OpDump:
		opts := x.r.Printer
		if st.Label != "" {
			opts.Title = st.Label
		}
		if err := p.DumpWith(x.out, opts); err != nil {
			x.fail(i, st, "dump: %v", err)
		}

	case OpWrite:
		if err := p.Write(h, st.Offset, []byte(st.Pattern)); err != nil {
			x.fail(i, st, "write %d@%d: %v", st.Handle, st.Offset, err)
		}

	case OpCheck:
		data, err := p.Bytes(h)
		if err != nil {
			x.fail(i, st, "check %d: %v", st.Handle, err)
			return
		}
		end := st.Offset + len(st.Pattern)
		if st.Offset < 0 || end > len(data) {
			x.fail(i, st, "check %d: range %d..%d outside %d-byte block", st.Handle, st.Offset, end, len(data))
			return
		}
		if got := data[st.Offset:end]; !bytes.Equal(got, []byte(st.Pattern)) {
			x.fail(i, st, "check %d@%d: got %q, want %q", st.Handle, st.Offset, got, st.Pattern)
		}
	}
}

func (x *run) expect(i int, st Step) {
	p := x.p
	if st.Refs != nil {
		got := 0
		if info, ok := p.Lookup(types.Handle(st.Handle)); ok {
			got = info.RefCount
		}
		if got != *st.Refs {
			x.fail(i, st, "handle %d: refs %d, want %d", st.Handle, got, *st.Refs)
		}
	}
	if st.Records != nil {
		if got := len(p.Blocks()); got != *st.Records {
			x.fail(i, st, "records %d, want %d", got, *st.Records)
		}
	}
	if st.Collected != nil {
		last, ok := p.LastCompaction()
		switch {
		case !ok:
			x.fail(i, st, "no compaction has run, want %d bytes collected", *st.Collected)
		case last.CollectedBytes != *st.Collected:
			x.fail(i, st, "collected %d bytes, want %d", last.CollectedBytes, *st.Collected)
		}
	}
}

func (x *run) fail(i int, st Step, format string, args ...any) {
	f := Failure{Step: i + 1, Op: st.Op, Label: st.Label, Message: fmt.Sprintf(format, args...)}
	x.res.Failures = append(x.res.Failures, f)
	x.tracef("FAILED: %s\n", f)
}

// tracef writes step traces in text mode only; JSON output stays parseable.
func (x *run) tracef(format string, args ...any) {
	if x.r.Printer.Format == printer.FormatJSON {
		return
	}
	fmt.Fprintf(x.out, format, args...)
}
