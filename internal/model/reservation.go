package model

import "time"

// Reservation records a user's stay at a room over a half-open date
// range: nights from CheckIn (inclusive) to CheckOut (exclusive).  The
// reservation_code is the external handle used on every API path; the
// numeric ID never leaves the service.
//
// Fields:
//  ID              – primary key identifier.
//  ReservationCode – opaque unique token generated at creation.
//  UserID          – user who owns the reservation.
//  RoomID          – room being reserved.
//  CheckIn         – first night of the stay (date, UTC midnight).
//  CheckOut        – morning of departure (date, UTC midnight).
//  Days            – derived: whole days between CheckOut and CheckIn.
//                    Recomputed on every bound change, never set directly.
//  Adult           – number of adults in the party.
//  Children        – number of children in the party.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
//  DeletedAt       – present in the schema for parity with the other
//                    tables; cancellation hard-deletes the row, so this
//                    is never populated.
type Reservation struct {
	ID              uint64     // reservations.id
	ReservationCode string     // reservations.reservation_code
	UserID          uint64     // reservations.user_id
	RoomID          uint64     // reservations.room_id
	CheckIn         time.Time  // reservations.check_in (DATE)
	CheckOut        time.Time  // reservations.check_out (DATE)
	Days            int        // reservations.days
	Adult           int        // reservations.adult
	Children        int        // reservations.children
	CreatedAt       time.Time  // reservations.created_at
	UpdatedAt       time.Time  // reservations.updated_at
	DeletedAt       *time.Time // reservations.deleted_at (nullable, unused)
}
