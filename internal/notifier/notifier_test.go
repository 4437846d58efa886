package notifier

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndSince(t *testing.T) {
	n := New(10)
	ev := n.Record("5-1-1", "PC1", 5)

	assert.Equal(t, "5-1-1", ev.SeatID)
	assert.Equal(t, "PC1", ev.Label)
	assert.Equal(t, 5, ev.Floor)
	assert.False(t, ev.Timestamp.IsZero())
	assert.Equal(t, 1, n.Len())

	got := n.Since(time.Time{})
	require.Len(t, got, 1)
	assert.Equal(t, ev, got[0])
}

func TestSinceIsStrictlyAfter(t *testing.T) {
	n := New(10)
	ev := n.Record("5-1-1", "PC1", 5)

	// The event's own timestamp is the watermark after consuming it.
	assert.Empty(t, n.Since(ev.Timestamp))
	assert.Len(t, n.Since(ev.Timestamp.Add(-time.Nanosecond)), 1)
}

func TestWatermarkDrains(t *testing.T) {
	n := New(10)
	for i := 0; i < 3; i++ {
		n.Record(fmt.Sprintf("5-1-%d", i+1), fmt.Sprintf("PC%d", i+1), 5)
	}

	batch := n.Since(time.Time{})
	require.Len(t, batch, 3)

	// Oldest first, so the last entry carries the max timestamp.
	watermark := batch[len(batch)-1].Timestamp
	assert.Empty(t, n.Since(watermark))

	// A later event shows up on the next poll.
	late := n.Record("4-1-1", "NVIDIA-1", 4)
	next := n.Since(watermark)
	require.Len(t, next, 1)
	assert.Equal(t, late, next[0])
}

func TestTimestampsSurviveMillisecondWatermarks(t *testing.T) {
	// Clients hand the watermark back as Unix milliseconds, so a stamp
	// must round-trip through UnixMilli without losing precision.
	n := New(10)
	ev := n.Record("5-1-1", "PC1", 5)

	require.True(t, ev.Timestamp.Equal(time.UnixMilli(ev.Timestamp.UnixMilli())),
		"stamp must carry no sub-millisecond remainder")

	// Advancing to the returned batch's max millisecond timestamp
	// drains the log.
	watermark := time.UnixMilli(ev.Timestamp.UnixMilli()).UTC()
	assert.Empty(t, n.Since(watermark))
}

func TestCapacityEvictsOldest(t *testing.T) {
	n := New(3)
	for i := 0; i < 5; i++ {
		n.Record(fmt.Sprintf("5-1-%d", i+1), fmt.Sprintf("PC%d", i+1), 5)
	}
	assert.Equal(t, 3, n.Len())

	got := n.Since(time.Time{})
	require.Len(t, got, 3)
	assert.Equal(t, "PC3", got[0].Label)
	assert.Equal(t, "PC5", got[2].Label)
}

func TestZeroCapacityFallsBack(t *testing.T) {
	n := New(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		n.Record("5-1-1", "PC1", 5)
	}
	assert.Equal(t, DefaultCapacity, n.Len())
}
