package report

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Dedup wraps next so that a failure (or assumption failure) for the same
// description and the same cause is forwarded only once. Several hook layers
// may each observe the same error escaping the block they wrap; only the
// first observation reaches next.
//
// Two causes are the same when their dynamic type and message are equal.
func Dedup(next Reporter) Reporter {
	if d, ok := next.(*dedup); ok {
		return d
	}
	return &dedup{next: next, seen: make(map[uint64]struct{})}
}

type dedup struct {
	mu   sync.Mutex
	next Reporter
	seen map[uint64]struct{}
}

func (r *dedup) Started(d Description)  { r.next.Started(d) }
func (r *dedup) Finished(d Description) { r.next.Finished(d) }
func (r *dedup) Ignored(d Description)  { r.next.Ignored(d) }

func (r *dedup) Failed(d Description, err error) {
	if r.first("failed", d, err) {
		r.next.Failed(d, err)
	}
}

func (r *dedup) AssumptionFailed(d Description, err error) {
	if r.first("assumption", d, err) {
		r.next.AssumptionFailed(d, err)
	}
}

// first records the (channel, description, cause) triple and reports whether
// it had not been seen before.
func (r *dedup) first(channel string, d Description, err error) bool {
	key := failureKey(channel, d, err)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.seen[key]; dup {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

func failureKey(channel string, d Description, err error) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(channel)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(d.ID())
	_, _ = h.WriteString("\x00")
	if err != nil {
		_, _ = h.WriteString(fmt.Sprintf("%T", err))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(err.Error())
	}
	return h.Sum64()
}
