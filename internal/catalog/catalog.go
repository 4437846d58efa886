// Package catalog produces the fixed workstation layout for each floor
// and answers seat lookups.  The layout is defined entirely by static
// rules, so the same floor number always yields the same seat set; no
// seat is ever created or destroyed at runtime.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/workstation-booking/internal/model"
)

// Floor numbers of the two bookable levels.  The fifth floor holds the
// regular PC workstations; the fourth holds the small NVIDIA pool.
const (
	FloorMain = 5
	FloorGPU  = 4
)

// Layout rules.  The main floor is a grid of mainRows x mainCols seats
// labelled PC1..PC36 row-major.  Its last row is split in half: the
// left half belongs to Other Departments, the right half to SCAAI.
// Those seats never enter the general booking pool.  The GPU floor is
// a single row of NVIDIA machines with no carve-outs.
const (
	mainRows = 6
	mainCols = 6
	gpuSeats = 6
)

const (
	groupOtherDepartments = "Other Departments"
	groupSCAAI            = "SCAAI"
)

// Catalog resolves seat ids against the generated layouts.  Construct
// it once with New and share it; it is immutable and safe for
// concurrent use.
type Catalog struct {
	byID map[string]model.Seat
}

// New builds the catalog by generating every floor's layout and
// indexing the seats by id.
func New() *Catalog {
	c := &Catalog{byID: make(map[string]model.Seat)}
	for _, floor := range []int{FloorMain, FloorGPU} {
		for _, s := range ListSeats(floor) {
			c.byID[s.ID] = s
		}
	}
	return c
}

// ListSeats returns the full seat layout for a floor in row-major
// order.  The result is deterministic and regenerated on every call;
// callers may mutate the returned slice freely.  Unknown floors yield
// an empty slice.
func ListSeats(floor int) []model.Seat {
	switch floor {
	case FloorMain:
		seats := make([]model.Seat, 0, mainRows*mainCols)
		for row := 1; row <= mainRows; row++ {
			for n := 1; n <= mainCols; n++ {
				lastRow := row == mainRows
				leftSide := n <= mainCols/2
				s := model.Seat{
					ID:         seatID(FloorMain, row, n),
					Floor:      FloorMain,
					Row:        row,
					SeatNumber: n,
					Label:      fmt.Sprintf("PC%d", (row-1)*mainCols+n),
				}
				if lastRow {
					s.Reserved = true
					if leftSide {
						s.ReservedFor = groupOtherDepartments
					} else {
						s.ReservedFor = groupSCAAI
					}
				}
				seats = append(seats, s)
			}
		}
		return seats
	case FloorGPU:
		seats := make([]model.Seat, 0, gpuSeats)
		for n := 1; n <= gpuSeats; n++ {
			seats = append(seats, model.Seat{
				ID:         seatID(FloorGPU, 1, n),
				Floor:      FloorGPU,
				Row:        1,
				SeatNumber: n,
				Label:      fmt.Sprintf("NVIDIA-%d", n),
			})
		}
		return seats
	}
	return []model.Seat{}
}

// Lookup resolves a seat id.  When the id belongs to the generated
// layout the result is Known; otherwise the lookup carries a virtual
// seat built from the raw id so a booking request can still proceed.
// Accepting unknown ids is deliberate leniency toward clients whose
// layout drifted from the server's, not an error condition.  The
// provided floor is used for the virtual seat when the id itself does
// not encode one.
func (c *Catalog) Lookup(seatID string, floor int) model.SeatLookup {
	if s, ok := c.byID[seatID]; ok {
		return model.SeatLookup{Seat: s, Known: true}
	}
	return model.SeatLookup{Seat: virtualSeat(seatID, floor)}
}

// seatID composes the stable "<floor>-<row>-<n>" identifier.
func seatID(floor, row, n int) string {
	return fmt.Sprintf("%d-%d-%d", floor, row, n)
}

// virtualSeat builds the fallback seat for an id absent from the
// catalog.  The label is the raw id and the seat is never reserved.
// If the id happens to follow the "<floor>-<row>-<n>" convention, the
// encoded floor wins over the caller-supplied one.
func virtualSeat(id string, floor int) model.Seat {
	s := model.Seat{ID: id, Floor: floor, Label: id}
	parts := strings.Split(id, "-")
	if len(parts) == 3 {
		if f, err := strconv.Atoi(parts[0]); err == nil {
			s.Floor = f
		}
	}
	return s
}
