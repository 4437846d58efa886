package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/workstation-booking/internal/notifier"
	"github.com/iliyamo/workstation-booking/internal/workflow"
)

func TestCancellationsPollingWithWatermark(t *testing.T) {
	n := notifier.New(10)
	h := NewNotificationHandler(n)

	n.Record("5-1-1", "PC1", 5)
	n.Record("5-1-2", "PC2", 5)

	rec := doRequest(t, http.MethodGet, "/v1/notifications/cancellations", "", 1, workflow.RoleUser, h.Cancellations)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cancellations []cancellationView `json:"cancellations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Cancellations, 2)
	assert.Equal(t, "PC1", resp.Cancellations[0].Label)
	assert.Equal(t, "PC2", resp.Cancellations[1].Label)

	// Poll again from the batch's max timestamp: nothing new.
	watermark := resp.Cancellations[1].Timestamp
	rec = doRequest(t, http.MethodGet,
		fmt.Sprintf("/v1/notifications/cancellations?since=%d", watermark),
		"", 1, workflow.RoleUser, h.Cancellations)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cancellations)
}

func TestCancellationsRejectsBadSince(t *testing.T) {
	h := NewNotificationHandler(notifier.New(10))

	rec := doRequest(t, http.MethodGet, "/v1/notifications/cancellations?since=later", "", 1, workflow.RoleUser, h.Cancellations)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancellationsEmptyLog(t *testing.T) {
	h := NewNotificationHandler(notifier.New(10))

	rec := doRequest(t, http.MethodGet, "/v1/notifications/cancellations", "", 1, workflow.RoleUser, h.Cancellations)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cancellations []cancellationView `json:"cancellations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Cancellations)
	assert.Empty(t, resp.Cancellations)
}

// Millisecond watermarks can collapse two events recorded within the
// same millisecond; the handler truncates since to the millisecond it
// was given, so an event stamped inside that same millisecond is
// redelivered rather than lost.
func TestCancellationsSinceGranularity(t *testing.T) {
	n := notifier.New(10)
	h := NewNotificationHandler(n)

	ev := n.Record("5-1-1", "PC1", 5)
	since := ev.Timestamp.UnixMilli() - 1

	rec := doRequest(t, http.MethodGet,
		fmt.Sprintf("/v1/notifications/cancellations?since=%d", since),
		"", 1, workflow.RoleUser, h.Cancellations)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cancellations []cancellationView `json:"cancellations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Cancellations, 1)
}
