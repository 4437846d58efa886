// Package notifier keeps a bounded in-memory log of recent booking
// cancellations.  Clients poll it on an interval to learn that a seat
// just freed up, advancing their own watermark to the newest timestamp
// they received.  The log is process-local and lost on restart; that
// is acceptable for a single-instance deployment and is documented as
// a scalability limit.
package notifier

import (
	"sync"
	"time"

	"github.com/iliyamo/workstation-booking/internal/model"
)

// DefaultCapacity bounds the log at the fifty most recent events.
const DefaultCapacity = 50

// Notifier is an injectable bounded event log.  Construct one per
// process with New and hand it to the request handlers that need it;
// it is not a package-level singleton.  All methods are safe for
// concurrent use.
type Notifier struct {
	mu       sync.Mutex
	events   []model.CancellationEvent
	capacity int
}

// New returns a Notifier holding at most capacity events.  A capacity
// of zero or less falls back to DefaultCapacity.
func New(capacity int) *Notifier {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Notifier{capacity: capacity}
}

// Record appends a cancellation event stamped with the current time.
// When the log is full the oldest event is evicted first.  The stored
// event is returned so callers can forward it elsewhere (e.g. to a
// message queue) without re-stamping.
//
// Stamps are truncated to millisecond granularity: clients exchange
// watermarks as Unix milliseconds, and a finer-grained stamp would sit
// "strictly after" its own truncated watermark forever, so polls would
// never drain.
func (n *Notifier) Record(seatID, label string, floor int) model.CancellationEvent {
	ev := model.CancellationEvent{
		SeatID:    seatID,
		Label:     label,
		Floor:     floor,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	if len(n.events) > n.capacity {
		n.events = n.events[len(n.events)-n.capacity:]
	}
	return ev
}

// Since returns every logged event strictly newer than t, oldest
// first.  Polling clients must take the maximum timestamp of the
// returned batch as their next watermark; using the poll time instead
// would open gaps or repeat notifications.
func (n *Notifier) Since(t time.Time) []model.CancellationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.CancellationEvent, 0)
	for _, ev := range n.events {
		if ev.Timestamp.After(t) {
			out = append(out, ev)
		}
	}
	return out
}

// Len reports how many events are currently held.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}
