package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workstation-booking/internal/repository"
	queue_publisher "github.com/iliyamo/workstation-booking/internal/service"
	"github.com/iliyamo/workstation-booking/internal/workflow"
)

// UserRoster lists every registered user for the admin dashboard.
type UserRoster interface {
	List(ctx context.Context) ([]repository.User, error)
}

// AdminHandler serves the admin dashboard endpoints: the full booking
// list with filters, status decisions, and the user roster.
type AdminHandler struct {
	Store  BookingStore
	Users  UserRoster
	Events *queue_publisher.Publisher
}

func NewAdminHandler(store BookingStore, users UserRoster, events *queue_publisher.Publisher) *AdminHandler {
	return &AdminHandler{Store: store, Users: users, Events: events}
}

// ListBookings handles GET /v1/admin/bookings with optional status,
// floor and user_id query filters.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	var f repository.BookingFilter
	f.Status = c.QueryParam("status")
	if v := c.QueryParam("floor"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor"})
		}
		f.Floor = n
	}
	if v := c.QueryParam("user_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		f.UserID = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Store.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/admin/bookings/:id/status.  The target
// status must be one of the four known values; beyond that any
// transition is accepted, including re-approving a rejected booking.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	id := c.Param("id")

	var req updateStatusReq
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := workflow.Transition(&b, req.Status, actor); err != nil {
		switch err {
		case workflow.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
		case workflow.ErrNotAllowed:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	updated, err := h.Store.UpdateStatus(ctx, id, b.Status)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Events.PublishBookingStatus(ctx, statusEvent(updated, "Booking status updated to "+updated.Status))
	}()

	return c.JSON(http.StatusOK, echo.Map{"booking": updated})
}

type rosterUser struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers handles GET /v1/admin/users.  Password hashes never leave
// the repository layer.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]rosterUser, 0, len(users))
	for _, u := range users {
		out = append(out, rosterUser{
			ID: u.ID, Name: u.Name, Email: u.Email,
			Phone: u.Phone, Role: u.Role, CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}
