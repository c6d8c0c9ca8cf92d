package availability

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/minjbak/wearebnb-server/internal/model"
)

// predicateKind enumerates how a recognized query parameter narrows
// the room set.  The mapping from parameter name to kind is fixed in
// facetTable; parameters outside that table are ignored, never
// rejected.
type predicateKind int

const (
	matchSubstring predicateKind = iota // case-insensitive containment
	matchGTE                            // numeric lower bound, inclusive
	matchLTE                            // numeric upper bound, inclusive
	matchAnyOf                          // at least one value must match
)

// facetTable is the full set of recognized facet parameters.  Each
// facet is independently optional and all supplied facets are AND'ed
// together; repeatable parameters (room_type, room_option) use any-of
// semantics within the facet.
var facetTable = map[string]predicateKind{
	"location":    matchSubstring, // against room_locations.address
	"guest":       matchGTE,       // against rooms.max_guest
	"price_min":   matchGTE,       // against rooms.price
	"price_max":   matchLTE,       // against rooms.price
	"room_type":   matchAnyOf,     // against room_types.name
	"room_option": matchAnyOf,     // against option names
}

// FacetSet holds the parsed facet values.  Zero values mean the facet
// was not supplied and applies no restriction.
type FacetSet struct {
	Location  string
	Guest     int
	PriceMin  *float64
	PriceMax  *float64
	RoomTypes []string
	Options   []string
}

// parseFacets extracts the recognized facets from raw query values.
// Values that fail to parse numerically are treated as absent, in
// keeping with the ignore-don't-reject contract.
func parseFacets(q url.Values) FacetSet {
	var f FacetSet
	for name := range facetTable {
		if _, ok := q[name]; !ok {
			continue
		}
		switch name {
		case "location":
			f.Location = q.Get(name)
		case "guest":
			if n, err := strconv.Atoi(q.Get(name)); err == nil && n > 0 {
				f.Guest = n
			}
		case "price_min":
			if v, err := strconv.ParseFloat(q.Get(name), 64); err == nil {
				f.PriceMin = &v
			}
		case "price_max":
			if v, err := strconv.ParseFloat(q.Get(name), 64); err == nil {
				f.PriceMax = &v
			}
		case "room_type":
			f.RoomTypes = append(f.RoomTypes, q[name]...)
		case "room_option":
			f.Options = append(f.Options, q[name]...)
		}
	}
	return f
}

// Match reports whether a listing satisfies every supplied facet.
func (f FacetSet) Match(l model.RoomListing) bool {
	if f.Location != "" &&
		!strings.Contains(strings.ToLower(l.Address), strings.ToLower(f.Location)) {
		return false
	}
	if f.Guest > 0 && l.Room.MaxGuest < f.Guest {
		return false
	}
	if f.PriceMin != nil && l.Room.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && l.Room.Price > *f.PriceMax {
		return false
	}
	if len(f.RoomTypes) > 0 && !containsAny(f.RoomTypes, []string{l.RoomType}) {
		return false
	}
	if len(f.Options) > 0 && !containsAny(f.Options, l.Options) {
		return false
	}
	return true
}

// containsAny reports whether any wanted value appears in have.
func containsAny(wanted, have []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}
