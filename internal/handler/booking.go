package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workstation-booking/internal/catalog"
	"github.com/iliyamo/workstation-booking/internal/model"
	"github.com/iliyamo/workstation-booking/internal/notifier"
	"github.com/iliyamo/workstation-booking/internal/policy"
	"github.com/iliyamo/workstation-booking/internal/queue"
	"github.com/iliyamo/workstation-booking/internal/repository"
	queue_publisher "github.com/iliyamo/workstation-booking/internal/service"
	"github.com/iliyamo/workstation-booking/internal/workflow"
)

// BookingStore is the persistence contract the booking handlers need.
// *repository.BookingRepo satisfies it; tests substitute an in-memory
// implementation.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (model.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]model.Booking, error)
	ListActiveBySeat(ctx context.Context, seatID string) ([]model.Booking, error)
	ListActiveInWindow(ctx context.Context, from, until time.Time) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (model.Booking, error)
	Delete(ctx context.Context, id string) error
}

// UserDirectory resolves user ids to profile snapshots.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (repository.User, error)
}

// BookingHandler serves booking creation, listing and cancellation for
// authenticated users.
type BookingHandler struct {
	Catalog  *catalog.Catalog
	Store    BookingStore
	Users    UserDirectory
	Notifier *notifier.Notifier
	Events   *queue_publisher.Publisher
}

func NewBookingHandler(cat *catalog.Catalog, store BookingStore, users UserDirectory,
	n *notifier.Notifier, events *queue_publisher.Publisher) *BookingHandler {
	return &BookingHandler{Catalog: cat, Store: store, Users: users, Notifier: n, Events: events}
}

type createBookingReq struct {
	SeatID    string    `json:"seat_id"`
	Floor     int       `json:"floor"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Create handles POST /v1/bookings.  The request is validated against
// the seat catalog and the booking rules, the user's profile is
// snapshotted onto the record, and a status notification is published.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}
	if err := policy.ValidateFields(req.SeatID, req.Floor, req.StartTime, req.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}
	start := req.StartTime.UTC()
	end := req.EndTime.UTC()
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "End time must be after start time"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lookup := h.Catalog.Lookup(req.SeatID, req.Floor)
	seat := lookup.Seat

	existing, err := h.Store.ListActiveBySeat(ctx, seat.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	needsApproval, err := policy.Check(seat, start, end, existing)
	if err != nil {
		switch err {
		case policy.ErrSeatReserved:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "This seat is reserved and cannot be booked"})
		case policy.ErrSeatConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat already booked for this time"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	b := model.Booking{
		UserID:           uid,
		SeatID:           seat.ID,
		Floor:            seat.Floor,
		StartTime:        start,
		EndTime:          end,
		Status:           policy.InitialStatus(needsApproval),
		RequiresApproval: needsApproval,
		UserName:         u.Name,
		UserEmail:        u.Email,
		UserPhone:        u.Phone,
		SeatLabel:        seat.Label,
	}
	if err := h.Store.Create(ctx, &b); err != nil {
		if err == policy.ErrSeatConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat already booked for this time"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	msg := "Booking confirmed successfully"
	if needsApproval {
		msg = "Booking request submitted for approval"
	}

	go func(b model.Booking, msg string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Events.PublishBookingStatus(ctx, statusEvent(b, msg))
	}(b, msg)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": msg,
		"booking": b,
	})
}

// ListMine handles GET /v1/bookings: the caller's own bookings, all
// statuses, ascending by start time.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Store.List(ctx, repository.BookingFilter{UserID: uid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Cancel handles DELETE /v1/bookings/:id.  Owners cancel their own
// bookings; admins cancel anyone's.  The record is removed outright,
// the cancellation is recorded for polling clients, and both queue
// events are published.
func (h *BookingHandler) Cancel(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !workflow.CanCancel(b, actor) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Not authorized to cancel this booking"})
	}
	if err := h.Store.Delete(ctx, id); err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	ev := h.Notifier.Record(b.SeatID, b.SeatLabel, b.Floor)

	go func(b model.Booking, ev model.CancellationEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Events.PublishSeatCancelled(ctx, queue.SeatCancelledEvent{
			SeatID:      ev.SeatID,
			SeatLabel:   ev.Label,
			Floor:       ev.Floor,
			CancelledAt: ev.Timestamp.Format(time.RFC3339),
		})
		_ = h.Events.PublishBookingStatus(ctx, statusEvent(b, "Booking canceled"))
	}(b, ev)

	return c.JSON(http.StatusOK, echo.Map{"message": "Booking canceled successfully"})
}

// statusEvent flattens a booking into the queue payload.
func statusEvent(b model.Booking, msg string) queue.BookingStatusEvent {
	return queue.BookingStatusEvent{
		BookingID: b.ID,
		SeatID:    b.SeatID,
		SeatLabel: b.SeatLabel,
		Floor:     b.Floor,
		UserName:  b.UserName,
		UserEmail: b.UserEmail,
		Status:    b.Status,
		Message:   msg,
		StartsAt:  b.StartTime.Format(time.RFC3339),
		EndsAt:    b.EndTime.Format(time.RFC3339),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
