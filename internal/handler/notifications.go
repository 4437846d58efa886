package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workstation-booking/internal/notifier"
)

// NotificationHandler exposes the in-memory cancellation log to polling
// clients.
type NotificationHandler struct {
	Notifier *notifier.Notifier
}

func NewNotificationHandler(n *notifier.Notifier) *NotificationHandler {
	return &NotificationHandler{Notifier: n}
}

type cancellationView struct {
	SeatID    string `json:"seat_id"`
	Label     string `json:"label"`
	Floor     int    `json:"floor"`
	Timestamp int64  `json:"timestamp"`
}

// Cancellations handles GET /v1/notifications/cancellations?since=<ms>.
// The since parameter is a Unix-millisecond watermark; events stamped
// strictly after it are returned, oldest first.  Clients must advance
// their watermark to the largest timestamp in the batch, not to the
// poll time, or they will miss or repeat events.  Omitting since
// returns the whole retained log.
func (h *NotificationHandler) Cancellations(c echo.Context) error {
	var since time.Time
	if v := c.QueryParam("since"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid since parameter"})
		}
		since = time.UnixMilli(ms).UTC()
	}

	events := h.Notifier.Since(since)
	out := make([]cancellationView, 0, len(events))
	for _, ev := range events {
		out = append(out, cancellationView{
			SeatID:    ev.SeatID,
			Label:     ev.Label,
			Floor:     ev.Floor,
			Timestamp: ev.Timestamp.UnixMilli(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"cancellations": out})
}
