package availability

import (
	"net/url"
	"sort"
	"strconv"

	"github.com/minjbak/wearebnb-server/internal/model"
)

// DefaultPageSize is the page size applied when pagination parameters
// are supplied without an explicit limit.
const DefaultPageSize = 15

// Pagination is an explicit offset/limit window over the filtered set.
type Pagination struct {
	Offset int
	Limit  int
}

// Options is the parsed form of a room search request.  The optional
// parts are pointers: a nil Window disables availability exclusion and
// a nil Page returns the full filtered set unpaginated.
type Options struct {
	Window *DateRange
	Facets FacetSet
	Sort   string
	Page   *Pagination
}

// sortKeys lists the accepted sort parameters.  A leading '-' flips
// the direction.  Anything else falls back to the default id order.
var sortKeys = map[string]bool{
	"id":          true,
	"-id":         true,
	"price":       true,
	"-price":      true,
	"created_at":  true,
	"-created_at": true,
}

// ParseOptions reads the recognized query parameters into an Options
// struct.  check_in and check_out must be supplied together as ordered
// calendar dates; a half-supplied or malformed window is the only
// parse failure, every other unrecognized or malformed parameter is
// simply ignored.
func ParseOptions(q url.Values) (Options, error) {
	opts := Options{Sort: "id", Facets: parseFacets(q)}

	checkIn := q.Get("check_in")
	checkOut := q.Get("check_out")
	if checkIn != "" || checkOut != "" {
		window, err := ParseRange(checkIn, checkOut)
		if err != nil {
			return Options{}, err
		}
		opts.Window = &window
	}

	if s := q.Get("sort"); sortKeys[s] {
		opts.Sort = s
	}

	_, hasOffset := q["offset"]
	_, hasLimit := q["limit"]
	if hasOffset || hasLimit {
		page := Pagination{Offset: 0, Limit: DefaultPageSize}
		if n, err := strconv.Atoi(q.Get("offset")); err == nil && n >= 0 {
			page.Offset = n
		}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
			page.Limit = n
		}
		opts.Page = &page
	}
	return opts, nil
}

// FilterAvailable removes every room that has at least one reservation
// overlapping the window.  All reservations are tested, not just one
// per room, and the relative order of the surviving rooms is kept.  A
// nil window applies no exclusion.
func FilterAvailable(rooms []model.RoomListing, reservations []model.Reservation, window *DateRange) []model.RoomListing {
	if window == nil {
		return rooms
	}
	blocked := make(map[uint64]bool)
	for _, res := range reservations {
		if window.Overlaps(DateRange{CheckIn: res.CheckIn, CheckOut: res.CheckOut}) {
			blocked[res.RoomID] = true
		}
	}
	out := make([]model.RoomListing, 0, len(rooms))
	for _, room := range rooms {
		if !blocked[room.Room.ID] {
			out = append(out, room)
		}
	}
	return out
}

// ApplyFacets keeps the rooms matching every supplied facet,
// preserving order.
func ApplyFacets(rooms []model.RoomListing, f FacetSet) []model.RoomListing {
	out := make([]model.RoomListing, 0, len(rooms))
	for _, room := range rooms {
		if f.Match(room) {
			out = append(out, room)
		}
	}
	return out
}

// SortAndPaginate orders the rooms by the given key and slices out the
// requested page.  A nil page returns the whole sorted set.
func SortAndPaginate(rooms []model.RoomListing, sortKey string, page *Pagination) []model.RoomListing {
	sorted := make([]model.RoomListing, len(rooms))
	copy(sorted, rooms)

	desc := false
	key := sortKey
	if len(key) > 0 && key[0] == '-' {
		desc = true
		key = key[1:]
	}
	less := func(a, b model.RoomListing) bool { return a.Room.ID < b.Room.ID }
	switch key {
	case "price":
		less = func(a, b model.RoomListing) bool {
			if a.Room.Price != b.Room.Price {
				return a.Room.Price < b.Room.Price
			}
			return a.Room.ID < b.Room.ID
		}
	case "created_at":
		less = func(a, b model.RoomListing) bool {
			if !a.Room.CreatedAt.Equal(b.Room.CreatedAt) {
				return a.Room.CreatedAt.Before(b.Room.CreatedAt)
			}
			return a.Room.ID < b.Room.ID
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	if page == nil {
		return sorted
	}
	if page.Offset >= len(sorted) {
		return []model.RoomListing{}
	}
	end := page.Offset + page.Limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[page.Offset:end]
}
