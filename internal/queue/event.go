// Package queue defines message payloads exchanged over the message
// broker and the background consumer that delivers user notifications.
package queue

// Queue names.  Both queues are declared durable by publisher and
// consumer alike so declaration order does not matter.
const (
	BookingStatusQueue = "booking.status"
	SeatCancelledQueue = "seat.cancelled"
)

// BookingStatusEvent is published whenever a booking is created or its
// status changes.  It carries enough context for the notification
// consumer to address the user without querying the primary database.
type BookingStatusEvent struct {
	BookingID string `json:"booking_id"`
	SeatID    string `json:"seat_id"`
	SeatLabel string `json:"seat_label"`
	Floor     int    `json:"floor"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	StartsAt  string `json:"starts_at"`
	EndsAt    string `json:"ends_at"`
	Timestamp string `json:"timestamp"`
}

// SeatCancelledEvent mirrors an in-process cancellation log entry onto
// the broker so out-of-process consumers can also observe seats
// freeing up.
type SeatCancelledEvent struct {
	SeatID      string `json:"seat_id"`
	SeatLabel   string `json:"seat_label"`
	Floor       int    `json:"floor"`
	CancelledAt string `json:"cancelled_at"`
}
