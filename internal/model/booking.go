package model

import "time"

// Booking statuses.  A booking is created as either pending (needs an
// admin decision) or approved, and only ever changes through explicit
// status updates.  "completed" is set by an admin once the stay is
// over; nothing transitions automatically.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Booking is a reservation of a single seat for a time interval.  The
// user and seat display fields are a write-time snapshot taken when the
// booking is created so lists can render without joins; later edits to
// the user's profile do not retroactively change past bookings.
//
// Time bounds and seat assignment are immutable after creation; a
// change of mind means cancel and rebook.
type Booking struct {
	ID               string    `json:"id"`
	UserID           uint64    `json:"user_id"`
	SeatID           string    `json:"seat_id"`
	Floor            int       `json:"floor"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	RequiresApproval bool      `json:"requires_approval"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	UserPhone        string    `json:"user_phone,omitempty"`
	SeatLabel        string    `json:"seat_label"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Active reports whether the booking counts toward seat conflicts.
// Only pending and approved bookings block other requests; rejected and
// completed ones free the seat.
func (b Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}
