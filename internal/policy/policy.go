// Package policy implements the booking decision rules: whether a
// requested interval conflicts with existing bookings on the same
// seat, and whether the stay is long enough to need admin approval.
package policy

import (
	"errors"
	"time"

	"github.com/iliyamo/workstation-booking/internal/model"
)

// Failure signals surfaced to callers untranslated.  Handlers map them
// onto HTTP statuses but must not reword the conditions they stand for.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrSeatReserved  = errors.New("seat is reserved and cannot be booked")
	ErrSeatConflict  = errors.New("seat already booked for this time")
)

// approvalThreshold is the stay length above which a booking needs an
// admin decision.  Exactly four days does not require approval; only
// strictly longer stays do.
const approvalThreshold = 4 * 24 * time.Hour

// ValidateFields rejects a booking request with an absent seat, floor
// or time bound.  Zero values count as absent; a zero time never
// represents a real booking instant.
func ValidateFields(seatID string, floor int, start, end time.Time) error {
	if seatID == "" || floor == 0 || start.IsZero() || end.IsZero() {
		return ErrMissingFields
	}
	return nil
}

// Overlaps reports whether any active booking in existing intersects
// the closed interval [start, end].  Boundaries are inclusive: an
// existing booking ending exactly when the new one starts counts as a
// conflict.
//
// Three intersection shapes are tested separately, mirroring the
// store query this check backs up: the existing booking spans the new
// start, spans the new end, or falls entirely inside the new window.
func Overlaps(start, end time.Time, existing []model.Booking) bool {
	for _, b := range existing {
		if !b.Active() {
			continue
		}
		// existing spans the new start: b.start <= start <= b.end
		if !b.StartTime.After(start) && !b.EndTime.Before(start) {
			return true
		}
		// existing spans the new end: b.start <= end <= b.end
		if !b.StartTime.After(end) && !b.EndTime.Before(end) {
			return true
		}
		// existing falls inside the new window: start <= b.start && b.end <= end
		if !b.StartTime.Before(start) && !b.EndTime.After(end) {
			return true
		}
	}
	return false
}

// RequiresApproval reports whether a stay from start to end is long
// enough to need an admin decision before it is confirmed.
func RequiresApproval(start, end time.Time) bool {
	return end.Sub(start) > approvalThreshold
}

// Check validates a booking request against a resolved seat and the
// seat's existing bookings, in the order the rules are defined:
// reserved seats are rejected first, then conflicting intervals.  On
// success it returns whether the booking needs approval.
func Check(seat model.Seat, start, end time.Time, existing []model.Booking) (bool, error) {
	if seat.Reserved {
		return false, ErrSeatReserved
	}
	if Overlaps(start, end, existing) {
		return false, ErrSeatConflict
	}
	return RequiresApproval(start, end), nil
}

// InitialStatus maps the approval decision onto the status a new
// booking is persisted with.
func InitialStatus(requiresApproval bool) string {
	if requiresApproval {
		return model.StatusPending
	}
	return model.StatusApproved
}
