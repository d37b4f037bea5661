package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// maxEventLine bounds a single NDJSON line accepted by ReadEvents.
const maxEventLine = 1 << 20

// JSONWriter is a Reporter that streams every notification to an io.Writer as
// newline-delimited JSON. Write errors are sticky: after the first failure
// further events are dropped and Err returns the cause.
type JSONWriter struct {
	mu      sync.Mutex
	enc     *json.Encoder
	started map[string]time.Time
	err     error
}

// NewJSONWriter returns a JSONWriter writing to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		enc:     json.NewEncoder(w),
		started: make(map[string]time.Time),
	}
}

func (j *JSONWriter) write(ev Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return
	}
	switch ev.Type {
	case EventStarted:
		j.started[ev.ID] = ev.Time
	case EventFinished:
		if at, ok := j.started[ev.ID]; ok {
			ev.DurationMS = ev.Time.Sub(at).Milliseconds()
			delete(j.started, ev.ID)
		}
	}
	if err := j.enc.Encode(ev); err != nil {
		j.err = fmt.Errorf("writing report event: %w", err)
	}
}

func (j *JSONWriter) Started(d Description)         { j.write(newEvent(EventStarted, d, nil)) }
func (j *JSONWriter) Finished(d Description)        { j.write(newEvent(EventFinished, d, nil)) }
func (j *JSONWriter) Ignored(d Description)         { j.write(newEvent(EventIgnored, d, nil)) }
func (j *JSONWriter) Failed(d Description, e error) { j.write(newEvent(EventFailed, d, e)) }
func (j *JSONWriter) AssumptionFailed(d Description, e error) {
	j.write(newEvent(EventAssumptionFailed, d, e))
}

// Err returns the first write error, if any.
func (j *JSONWriter) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// ReadEvents decodes an NDJSON event stream produced by JSONWriter. Blank
// lines are skipped. The returned error names the offending line number.
func ReadEvents(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return events, fmt.Errorf("decoding report line %d: %w", line, err)
		}
		if ev.ID == "" {
			ev.ID = ev.Description().ID()
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("reading report: %w", err)
	}
	return events, nil
}
