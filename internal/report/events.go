package report

import (
	"sync"
	"time"
)

// EventType identifies which Reporter notification produced an Event. String
// values are used so events round-trip cleanly through NDJSON report files.
type EventType string

const (
	// EventStarted is recorded for Reporter.Started.
	EventStarted EventType = "started"
	// EventFinished is recorded for Reporter.Finished.
	EventFinished EventType = "finished"
	// EventFailed is recorded for Reporter.Failed.
	EventFailed EventType = "failed"
	// EventIgnored is recorded for Reporter.Ignored.
	EventIgnored EventType = "ignored"
	// EventAssumptionFailed is recorded for Reporter.AssumptionFailed.
	EventAssumptionFailed EventType = "assumption_failed"
)

// Event is a single reporting notification captured by Recorder or written by
// JSONWriter.
type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
	Path []string  `json:"path,omitempty"`
	Name string    `json:"name"`
	Kind Kind      `json:"kind"`

	// Error holds the failure message for EventFailed and
	// EventAssumptionFailed. Omitted from JSON when empty.
	Error string `json:"error,omitempty"`

	// Time records when the notification was received.
	Time time.Time `json:"time"`

	// DurationMS is the wall time between Started and Finished, set on
	// EventFinished only.
	DurationMS int64 `json:"duration_ms,omitempty"`

	// Cause is the original error for in-memory consumers. Not serialized.
	Cause error `json:"-"`
}

// Description reconstructs the Description the event was reported for.
func (e Event) Description() Description {
	return Description{Path: e.Path, Name: e.Name, Kind: e.Kind}
}

func newEvent(t EventType, d Description, err error) Event {
	ev := Event{
		Type:  t,
		ID:    d.ID(),
		Path:  d.Path,
		Name:  d.Name,
		Kind:  d.Kind,
		Time:  time.Now(),
		Cause: err,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}

// Recorder is a Reporter that keeps every notification in memory, in the
// order received. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *Recorder) Started(d Description)         { r.add(newEvent(EventStarted, d, nil)) }
func (r *Recorder) Finished(d Description)        { r.add(newEvent(EventFinished, d, nil)) }
func (r *Recorder) Ignored(d Description)         { r.add(newEvent(EventIgnored, d, nil)) }
func (r *Recorder) Failed(d Description, e error) { r.add(newEvent(EventFailed, d, e)) }
func (r *Recorder) AssumptionFailed(d Description, e error) {
	r.add(newEvent(EventAssumptionFailed, d, e))
}

// Events returns a copy of every recorded event.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Of returns the recorded events of type t in order.
func (r *Recorder) Of(t EventType) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// IDs returns the IDs of the recorded events of type t in order.
func (r *Recorder) IDs(t EventType) []string {
	var ids []string
	for _, ev := range r.Of(t) {
		ids = append(ids, ev.ID)
	}
	return ids
}

// Trace returns every event as "type:id", which makes ordering assertions in
// tests compact.
func (r *Recorder) Trace() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = string(ev.Type) + ":" + ev.ID
	}
	return out
}

// Summary tallies the recorded events.
func (r *Recorder) Summary() Summary {
	return Summarize(r.Events())
}
