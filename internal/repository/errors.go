// Package repository is the data access layer over MySQL.  Sentinel
// errors defined here let handlers distinguish failure scenarios
// without string matching.  Conflict-shaped failures of the booking
// rules themselves (reserved seat, overlapping interval) live in the
// policy package; the store re-raises policy.ErrSeatConflict when its
// transactional re-check trips.
package repository

import "errors"

// ErrBookingNotFound is returned when a booking id does not exist.
// Handlers translate it into HTTP 404.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEmailExists is returned when registering a user with an email
// address that is already taken.
var ErrEmailExists = errors.New("email already exists")
