//go:build profile

// Package profiler records nested timing scopes into a ring buffer and
// writes them as a speedscope evented profile. Without the profile build
// tag every call is a no-op.
package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const Enabled = true

// ErrNoEvents is returned by WriteSpeedscope when nothing was recorded.
var ErrNoEvents = errors.New("profiler: no events")

// Init allocates room for capacity scope events. The oldest events are
// overwritten once the ring is full.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	ring.init(capacity)
}

// Start opens a scope and returns the func that closes it:
//
//	defer profiler.Start("gfx.CommitFrame")()
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	start := time.Now().UnixNano()
	ring.push(event{at: start, name: id, open: true})
	return func() {
		ring.push(event{at: max(time.Now().UnixNano(), start), name: id})
	}
}

// WriteSpeedscope writes the recorded scopes to path.
func WriteSpeedscope(path string) error {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return ErrNoEvents
	}
	doc := buildSpeedscope(evs, names.snapshot())

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	if err := json.NewEncoder(f).Encode(&doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("profiler: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return os.Rename(tmp, path)
}

type event struct {
	at   int64
	name int
	open bool
}

type eventRing struct {
	ready atomic.Bool
	write atomic.Uint64
	evs   []event
}

var ring eventRing

func (r *eventRing) init(capacity int) {
	r.evs = make([]event, capacity)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%uint64(len(r.evs))] = e
}

// snapshot returns the live events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	size := uint64(len(r.evs))
	start := uint64(0)
	if n > size {
		start = n - size
	}
	out := make([]event, 0, n-start)
	for i := start; i < n; i++ {
		out = append(out, r.evs[i%size])
	}
	return out
}

type interner struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

var names = interner{index: map[string]int{}}

func (in *interner) intern(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[name]; ok {
		return id
	}
	id := len(in.list)
	in.index[name] = id
	in.list = append(in.list, name)
	return id
}

func (in *interner) snapshot() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]string(nil), in.list...)
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"`
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}

// buildSpeedscope converts raw events into balanced open/close pairs in
// microseconds. Closes without a matching open (their open was overwritten
// in the ring) are dropped and scopes still open at the end are closed at
// the last timestamp.
func buildSpeedscope(evs []event, frameNames []string) ssFile {
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs))
	var stack []int
	last := int64(0)
	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.name)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.name})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.name {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.name})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	frames := make([]ssFrame, len(frameNames))
	for i, n := range frameNames {
		frames[i] = ssFrame{Name: n}
	}
	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "prism",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "prism-profiler",
	}
}
