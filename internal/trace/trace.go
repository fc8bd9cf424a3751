// Package trace provides lightweight phase tracing for the checker pipeline.
// It exists so the driver and CLI can report where time is going (interner
// construction, narrowing, assignability, declaration checking) without
// coupling the checker itself to any particular logging backend.
package trace

import (
	"fmt"
	"sync"
	"time"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing entirely.
	LevelOff Level = iota
	// LevelPhase records pipeline-phase boundaries (interner build, per-file
	// check, flow analysis).
	LevelPhase
	// LevelDetail additionally records per-declaration events.
	LevelDetail
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ParseLevel parses a --trace-level flag value.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "", "off":
		return LevelOff, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	default:
		return LevelOff, fmt.Errorf("trace: invalid level %q (expected off|phase|detail)", s)
	}
}

// Event is a single trace record.
type Event struct {
	Level Level
	Name  string
	File  string
	Dur   time.Duration
	Note  string
}

// Tracer receives trace events. Implementations must be goroutine-safe: the
// driver checks multiple files concurrently, each owning its own checker but
// sharing one Tracer.
type Tracer interface {
	Emit(ev Event)
	Enabled(level Level) bool
}

// nopTracer discards everything; it is the default when tracing is off.
type nopTracer struct{}

func (nopTracer) Emit(Event)         {}
func (nopTracer) Enabled(Level) bool { return false }

// Nop is the shared zero-overhead tracer.
var Nop Tracer = nopTracer{}

// Recorder is an in-memory Tracer used by the CLI (--trace) and by tests that
// want to assert which phases ran.
type Recorder struct {
	level Level
	mu    sync.Mutex
	items []Event
}

// NewRecorder returns a Recorder that accepts events up to and including level.
func NewRecorder(level Level) *Recorder {
	return &Recorder{level: level}
}

func (r *Recorder) Enabled(level Level) bool {
	return r != nil && level <= r.level && r.level != LevelOff
}

func (r *Recorder) Emit(ev Event) {
	if r == nil || !r.Enabled(ev.Level) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, ev)
}

// Events returns a snapshot of the recorded events, in emission order.
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.items))
	copy(out, r.items)
	return out
}

// Span begins a phase and returns a function that ends it and emits the
// resulting duration. Call sites look like:
//
//	end := trace.Begin(tracer, trace.LevelPhase, "assignability", file)
//	defer end("")
func Begin(t Tracer, level Level, name, file string) func(note string) {
	if t == nil || !t.Enabled(level) {
		return func(string) {}
	}
	start := time.Now()
	return func(note string) {
		t.Emit(Event{Level: level, Name: name, File: file, Dur: time.Since(start), Note: note})
	}
}
