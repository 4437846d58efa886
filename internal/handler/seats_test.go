package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/workstation-booking/internal/model"
	"github.com/iliyamo/workstation-booking/internal/workflow"
)

func TestSeatMapRequiresFloor(t *testing.T) {
	h := NewSeatHandler(newMemStore())

	rec := doRequest(t, http.MethodGet, "/v1/seats", "", 1, workflow.RoleUser, h.List)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Floor parameter is required")

	rec = doRequest(t, http.MethodGet, "/v1/seats?floor=abc", "", 1, workflow.RoleUser, h.List)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeatMapMergesBookings(t *testing.T) {
	store := newMemStore()
	h := NewSeatHandler(store)

	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), &model.Booking{
		UserID: 1, SeatID: "5-1-2", Floor: 5, Status: model.StatusApproved,
		UserName:  "Dana",
		StartTime: now.Add(time.Hour), EndTime: now.Add(25 * time.Hour),
	}))
	// Outside the seven-day window; must not appear.
	require.NoError(t, store.Create(context.Background(), &model.Booking{
		UserID: 2, SeatID: "5-1-3", Floor: 5, Status: model.StatusApproved,
		StartTime: now.Add(10 * 24 * time.Hour), EndTime: now.Add(11 * 24 * time.Hour),
	}))

	rec := doRequest(t, http.MethodGet, "/v1/seats?floor=5", "", 1, workflow.RoleUser, h.List)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Floor int        `json:"floor"`
		Seats []seatView `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Floor)
	require.Len(t, resp.Seats, 36)

	bySeat := make(map[string]seatView, len(resp.Seats))
	for _, s := range resp.Seats {
		bySeat[s.ID] = s
	}

	booked := bySeat["5-1-2"]
	assert.True(t, booked.IsBooked)
	require.Len(t, booked.Bookings, 1)
	assert.Equal(t, "Dana", booked.Bookings[0].UserName)

	assert.False(t, bySeat["5-1-3"].IsBooked, "booking outside the window must not occupy the seat")
	assert.False(t, bySeat["5-1-1"].IsBooked)

	// Reserved seats come through flagged so clients can render them.
	assert.True(t, bySeat["5-6-1"].Reserved)
	assert.Equal(t, "Other Departments", bySeat["5-6-1"].ReservedFor)
}

func TestSeatMapUnknownFloorIsEmpty(t *testing.T) {
	h := NewSeatHandler(newMemStore())

	rec := doRequest(t, http.MethodGet, "/v1/seats?floor=9", "", 1, workflow.RoleUser, h.List)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Seats []seatView `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Seats)
}
