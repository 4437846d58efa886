package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workstation-booking/internal/catalog"
	"github.com/iliyamo/workstation-booking/internal/model"
)

// seatMapWindow is how far ahead the seat map looks for occupying
// bookings.
const seatMapWindow = 7 * 24 * time.Hour

// SeatHandler serves the merged seat map: the generated floor layout
// with current booking state overlaid.
type SeatHandler struct {
	Store BookingStore
}

func NewSeatHandler(store BookingStore) *SeatHandler {
	return &SeatHandler{Store: store}
}

type seatBookingBrief struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	UserName  string    `json:"user_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type seatView struct {
	model.Seat
	IsBooked bool               `json:"is_booked"`
	Bookings []seatBookingBrief `json:"bookings"`
}

// List handles GET /v1/seats?floor=N.  The layout is generated from
// the static rules, then the active bookings of the next seven days are
// merged on so clients can grey out occupied seats and show who holds
// them.
func (h *SeatHandler) List(c echo.Context) error {
	floorStr := c.QueryParam("floor")
	if floorStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Floor parameter is required"})
	}
	floor, err := strconv.Atoi(floorStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Floor parameter is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	active, err := h.Store.ListActiveInWindow(ctx, now, now.Add(seatMapWindow))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	bySeat := make(map[string][]seatBookingBrief)
	for _, b := range active {
		bySeat[b.SeatID] = append(bySeat[b.SeatID], seatBookingBrief{
			ID:        b.ID,
			UserID:    b.UserID,
			UserName:  b.UserName,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    b.Status,
		})
	}

	layout := catalog.ListSeats(floor)
	seats := make([]seatView, 0, len(layout))
	for _, s := range layout {
		briefs := bySeat[s.ID]
		if briefs == nil {
			briefs = []seatBookingBrief{}
		}
		seats = append(seats, seatView{
			Seat:     s,
			IsBooked: len(briefs) > 0,
			Bookings: briefs,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"floor": floor,
		"seats": seats,
	})
}
