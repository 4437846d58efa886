package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/workstation-booking/internal/model"
	"github.com/iliyamo/workstation-booking/internal/policy"
)

// BookingRepo provides CRUD operations for booking records.  All
// timestamp fields are stored in UTC.  Listing methods return bookings
// in ascending start-time order so calendars render chronologically.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// activeStatuses is the status set that counts toward seat conflicts.
const activeStatuses = "('pending','approved')"

const bookingColumns = `id, user_id, seat_id, floor, start_time, end_time, status,
	requires_approval, user_name, user_email, user_phone, seat_label,
	created_at, updated_at`

// BookingFilter narrows List results.  Zero values mean "no filter".
type BookingFilter struct {
	Status string
	Floor  int
	UserID uint64
}

// Create inserts a booking inside a transaction, re-checking for an
// overlapping active booking on the same seat under a row lock first.
// The application performs the same overlap check before calling
// Create, but two concurrent requests can both pass it; this re-check
// narrows that window.  Returns policy.ErrSeatConflict when the seat
// was taken in the meantime.  A missing ID is generated, and the
// created/updated stamps are set here.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Same three intersection shapes as policy.Overlaps, with
	// inclusive boundaries.  FOR UPDATE serializes concurrent inserts
	// that touch the same existing rows.
	const overlapQ = `SELECT COUNT(*) FROM bookings
		WHERE seat_id = ? AND status IN ` + activeStatuses + ` AND (
			(start_time <= ? AND end_time >= ?) OR
			(start_time <= ? AND end_time >= ?) OR
			(start_time >= ? AND end_time <= ?)
		) FOR UPDATE`
	var conflicts int
	if err := tx.QueryRowContext(ctx, overlapQ, b.SeatID,
		b.StartTime, b.StartTime,
		b.EndTime, b.EndTime,
		b.StartTime, b.EndTime,
	).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return policy.ErrSeatConflict
	}

	const ins = `INSERT INTO bookings (` + bookingColumns + `)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	if _, err := tx.ExecContext(ctx, ins,
		b.ID, b.UserID, b.SeatID, b.Floor, b.StartTime, b.EndTime, b.Status,
		b.RequiresApproval, b.UserName, b.UserEmail, b.UserPhone, b.SeatLabel,
		b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a single booking.  Returns ErrBookingNotFound when
// the id does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? LIMIT 1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// List returns bookings matching the filter in ascending start-time
// order.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	conds := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Floor != 0 {
		conds = append(conds, "floor = ?")
		args = append(args, f.Floor)
	}
	if f.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY start_time ASC"
	return r.queryBookings(ctx, q, args...)
}

// ListActiveBySeat returns the pending and approved bookings for one
// seat, the set the overlap check runs against.
func (r *BookingRepo) ListActiveBySeat(ctx context.Context, seatID string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE seat_id = ? AND status IN ` + activeStatuses + `
		ORDER BY start_time ASC`
	return r.queryBookings(ctx, q, seatID)
}

// ListActiveInWindow returns active bookings that have not yet ended
// at 'from' and start no later than 'until'.  The seat map merges
// these onto the layout so clients can grey out occupied seats.
func (r *BookingRepo) ListActiveInWindow(ctx context.Context, from, until time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE status IN ` + activeStatuses + ` AND end_time >= ? AND start_time <= ?
		ORDER BY start_time ASC`
	return r.queryBookings(ctx, q, from, until)
}

// UpdateStatus sets a booking's status and refreshes its updated-at
// stamp, returning the updated record.  Returns ErrBookingNotFound
// when the id does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) (model.Booking, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().UTC(), id); err != nil {
		return model.Booking{}, err
	}
	// GetByID doubles as the existence check: a missing id surfaces
	// as ErrBookingNotFound here.
	return r.GetByID(ctx, id)
}

// Delete removes a booking record.  Returns ErrBookingNotFound when
// nothing was deleted.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepo) queryBookings(ctx context.Context, q string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.SeatID, &b.Floor, &b.StartTime, &b.EndTime, &b.Status,
		&b.RequiresApproval, &b.UserName, &b.UserEmail, &b.UserPhone, &b.SeatLabel,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}
