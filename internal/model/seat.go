package model

// Seat describes a physical workstation on one of the building's
// floors.  Seats are identified by a composite id of the form
// "<floor>-<row>-<number>" and carry a human friendly label such as
// "PC9" or "NVIDIA-2".  Reserved seats are permanently carved out for
// a named group and never enter the general booking pool.
//
// Fields:
//  ID          – stable identifier, e.g. "5-2-3".
//  Floor       – building level the seat belongs to.
//  Row         – row within the floor layout (1-based).
//  SeatNumber  – position within the row (1-based).
//  Label       – display name shown to users.
//  Reserved    – true when the seat is carved out for a group.
//  ReservedFor – owning group; only meaningful when Reserved is true.
type Seat struct {
	ID          string `json:"id"`
	Floor       int    `json:"floor"`
	Row         int    `json:"row"`
	SeatNumber  int    `json:"seat_number"`
	Label       string `json:"label"`
	Reserved    bool   `json:"reserved"`
	ReservedFor string `json:"reserved_for,omitempty"`
}

// SeatLookup is the result of resolving a seat id against the catalog.
// Known is true when the id matched a seat in the static layout.  When
// a client supplies an id the catalog does not know (id drift between
// client and server layouts), the lookup still carries a usable virtual
// seat whose label falls back to the raw id.  Keeping the flag explicit
// prevents callers from conflating the known and virtual cases.
type SeatLookup struct {
	Seat  Seat
	Known bool
}
