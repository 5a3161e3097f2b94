package tracingtest

import (
	"context"
	"sync"
)

type Kind int

const (
	KindCounter Kind = iota
	KindState
	KindLog
)

// Call is one recorded Backend invocation.
type Call struct {
	Kind  Kind
	Track string
	Value string
	Count int64
}

// Recorder is a tracing.Backend that remembers every call in order.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	calls []Call
	mu    sync.Mutex
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Counter(_ context.Context, track string, value int64) {
	r.record(Call{Kind: KindCounter, Track: track, Count: value})
}

func (r *Recorder) State(_ context.Context, track, value string) {
	r.record(Call{Kind: KindState, Track: track, Value: value})
}

func (r *Recorder) Log(_ context.Context, tag, msg string) {
	r.record(Call{Kind: KindLog, Track: tag, Value: msg})
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Calls returns a snapshot copy of recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]Call, len(r.calls))
	copy(cp, r.calls)
	return cp
}

// Counters returns the values published on track, in order.
func (r *Recorder) Counters(track string) []int64 {
	var out []int64
	for _, c := range r.Calls() {
		if c.Kind == KindCounter && c.Track == track {
			out = append(out, c.Count)
		}
	}
	return out
}

// States returns the values recorded on track, in order.
func (r *Recorder) States(track string) []string {
	return r.values(KindState, track)
}

// Logs returns the messages logged under tag, in order.
func (r *Recorder) Logs(tag string) []string {
	return r.values(KindLog, tag)
}

func (r *Recorder) values(kind Kind, track string) []string {
	var out []string
	for _, c := range r.Calls() {
		if c.Kind == kind && c.Track == track {
			out = append(out, c.Value)
		}
	}
	return out
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
