// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values let handlers map failure
// scenarios onto the API's machine-readable codes.  ErrMultipleReservations
// in particular must never be folded into a not-found: two rows for one
// (user, reservation_code) pair means a code collision upstream and is
// surfaced as its own error so it can be diagnosed.
package repository

import "errors"

// ErrRoomNotFound is returned when a room id does not resolve.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when no reservation matches the
// (user, reservation_code) pair.  Ownership is part of the lookup key,
// so another user's code also yields this error.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrMultipleReservations is returned when more than one reservation
// matches a (user, reservation_code) pair.  This signals a
// data-integrity violation and is reported distinctly.
var ErrMultipleReservations = errors.New("multiple reservations match")

// ErrEmailExists is returned when signing up with an email that is
// already registered.
var ErrEmailExists = errors.New("email already exists")
