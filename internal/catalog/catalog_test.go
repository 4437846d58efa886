package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainFloorLayout(t *testing.T) {
	seats := ListSeats(FloorMain)
	require.Len(t, seats, 36)

	// Labels run PC1..PC36 row-major.
	for i, s := range seats {
		assert.Equal(t, fmt.Sprintf("PC%d", i+1), s.Label)
		assert.Equal(t, FloorMain, s.Floor)
	}

	// Generating twice yields the same layout.
	assert.Equal(t, seats, ListSeats(FloorMain))
}

func TestMainFloorReservedRow(t *testing.T) {
	seats := ListSeats(FloorMain)

	for _, s := range seats {
		if s.Row < 6 {
			assert.False(t, s.Reserved, "seat %s in row %d must be bookable", s.Label, s.Row)
			assert.Empty(t, s.ReservedFor)
			continue
		}
		assert.True(t, s.Reserved, "seat %s in the last row must be reserved", s.Label)
		if s.SeatNumber <= 3 {
			assert.Equal(t, "Other Departments", s.ReservedFor)
		} else {
			assert.Equal(t, "SCAAI", s.ReservedFor)
		}
	}
}

func TestGPUFloorLayout(t *testing.T) {
	seats := ListSeats(FloorGPU)
	require.Len(t, seats, 6)
	for i, s := range seats {
		assert.Equal(t, fmt.Sprintf("NVIDIA-%d", i+1), s.Label)
		assert.Equal(t, 1, s.Row)
		assert.False(t, s.Reserved)
	}
}

func TestUnknownFloorIsEmpty(t *testing.T) {
	assert.Empty(t, ListSeats(3))
	assert.Empty(t, ListSeats(0))
}

func TestLookupKnownSeat(t *testing.T) {
	c := New()

	got := c.Lookup("5-1-2", FloorMain)
	require.True(t, got.Known)
	assert.Equal(t, "PC2", got.Seat.Label)
	assert.False(t, got.Seat.Reserved)

	last := c.Lookup("5-6-6", FloorMain)
	require.True(t, last.Known)
	assert.True(t, last.Seat.Reserved)
	assert.Equal(t, "SCAAI", last.Seat.ReservedFor)
}

func TestLookupVirtualSeat(t *testing.T) {
	c := New()

	got := c.Lookup("desk-42", 5)
	assert.False(t, got.Known)
	assert.Equal(t, "desk-42", got.Seat.ID)
	assert.Equal(t, "desk-42", got.Seat.Label)
	assert.Equal(t, 5, got.Seat.Floor)
	assert.False(t, got.Seat.Reserved)

	// An id following the floor-row-n convention keeps its encoded floor.
	enc := c.Lookup("7-1-1", 5)
	assert.False(t, enc.Known)
	assert.Equal(t, 7, enc.Seat.Floor)
}
