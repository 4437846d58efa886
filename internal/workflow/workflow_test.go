package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/workstation-booking/internal/model"
)

var (
	admin = Actor{UserID: 1, Role: RoleAdmin}
	user  = Actor{UserID: 7, Role: RoleUser}
)

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	b := model.Booking{Status: model.StatusPending}
	err := Transition(&b, "cancelled", admin)
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, model.StatusPending, b.Status)
}

func TestTransitionRequiresAdmin(t *testing.T) {
	b := model.Booking{UserID: 7, Status: model.StatusPending}
	err := Transition(&b, model.StatusApproved, user)
	require.ErrorIs(t, err, ErrNotAllowed)
	assert.Equal(t, model.StatusPending, b.Status)
}

func TestTransitionAppliesStatus(t *testing.T) {
	b := model.Booking{Status: model.StatusPending, UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, Transition(&b, model.StatusApproved, admin))
	assert.Equal(t, model.StatusApproved, b.Status)
	assert.True(t, b.UpdatedAt.After(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTransitionAllowsReversal(t *testing.T) {
	// Admins may walk a booking back, including rejected -> approved.
	b := model.Booking{Status: model.StatusRejected}
	require.NoError(t, Transition(&b, model.StatusApproved, admin))
	assert.Equal(t, model.StatusApproved, b.Status)

	require.NoError(t, Transition(&b, model.StatusCompleted, admin))
	require.NoError(t, Transition(&b, model.StatusPending, admin))
}

func TestCanCancel(t *testing.T) {
	b := model.Booking{UserID: 7}
	assert.True(t, CanCancel(b, user), "owners cancel their own bookings")
	assert.True(t, CanCancel(b, admin), "admins cancel anyone's")
	assert.False(t, CanCancel(b, Actor{UserID: 8, Role: RoleUser}))
}
