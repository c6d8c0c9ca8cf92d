// Package availability implements the reservation date-range overlap
// model and the room listing filter pipeline: excluding rooms with an
// overlapping stay, narrowing by search facets, sorting, pagination and
// projection into the list-view shape.  Everything here is pure; the
// handlers load rows through the repository layer and run them through
// these functions.
package availability

import (
	"errors"
	"time"
)

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned when a date window cannot be parsed or
// is not strictly ordered (check_in must precede check_out).
var ErrInvalidRange = errors.New("availability: invalid date range")

// DateRange is a half-open stay window: nights from CheckIn (inclusive)
// up to CheckOut (exclusive).  A guest leaving on the same day another
// arrives does not block that arrival.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseRange parses a check_in/check_out pair into a DateRange.  Both
// values must be calendar dates in DateLayout and check_in must be
// strictly before check_out; anything else yields ErrInvalidRange.
func ParseRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	if !in.Before(out) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{CheckIn: in, CheckOut: out}, nil
}

// Days returns the number of nights covered by the range.
func (r DateRange) Days() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one
// night.  This is the canonical interval test: a.in < b.out AND
// b.in < a.out.  Back-to-back stays (one check-out equal to the next
// check-in) do not overlap; nested and containing ranges do.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(r.CheckOut)
}

// Overlapping is the same predicate over bare bounds, for callers that
// hold check-in/check-out pairs rather than a DateRange.
func Overlapping(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}
