// Package workflow governs booking status changes and who may trigger
// them.  The rules are deliberately permissive: beyond requiring an
// admin actor and a known target status, any transition is allowed,
// including moving a rejected booking back to approved.  That mirrors
// how admins actually use the dashboard; tightening it is an open
// product question, not something this layer decides on its own.
package workflow

import (
	"errors"
	"time"

	"github.com/iliyamo/workstation-booking/internal/model"
)

// Roles carried in the JWT role claim.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var (
	// ErrInvalidStatus is returned for a target status outside the
	// four-value enum.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrNotAllowed is returned when the actor lacks the role or
	// ownership required for the operation.
	ErrNotAllowed = errors.New("not allowed")
)

// Actor is whoever is attempting a status change or cancellation.
type Actor struct {
	UserID uint64
	Role   string
}

// Transition applies a status change to the booking in place.  Only an
// admin may move a booking into approved, rejected or completed.  The
// updated-at stamp is refreshed so callers can persist the booking
// as-is.
func Transition(b *model.Booking, newStatus string, actor Actor) error {
	if !model.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	if actor.Role != RoleAdmin {
		return ErrNotAllowed
	}
	b.Status = newStatus
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// CanCancel reports whether the actor may cancel (delete) the booking.
// Owners may cancel their own bookings; admins may cancel any.
func CanCancel(b model.Booking, actor Actor) bool {
	return actor.Role == RoleAdmin || b.UserID == actor.UserID
}
