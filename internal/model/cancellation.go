package model

import "time"

// CancellationEvent records that a booking was cancelled and its seat
// freed up.  Events are ephemeral: they live in a bounded in-memory log
// that clients poll to surface "a seat just opened" notifications, and
// they disappear on process restart.
type CancellationEvent struct {
	SeatID    string    `json:"seat_id"`
	Label     string    `json:"label"`
	Floor     int       `json:"floor"`
	Timestamp time.Time `json:"timestamp"`
}
