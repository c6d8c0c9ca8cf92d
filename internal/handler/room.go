package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minjbak/wearebnb-server/internal/availability"
	"github.com/minjbak/wearebnb-server/internal/repository"
)

// RoomHandler serves the public room search and detail endpoints.  The
// search pipeline is: load listings, drop rooms with a stay overlapping
// the requested window, apply the facets, sort and paginate, project
// into the list-view shape.
type RoomHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Reviews      *repository.ReviewRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, reviews *repository.ReviewRepo) *RoomHandler {
	if rooms == nil || reservations == nil || reviews == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Reservations: reservations, Reviews: reviews}
}

// List handles GET /rooms.  Recognized query parameters: check_in and
// check_out (together), the facet set (location, guest, price_min,
// price_max, room_type, room_option), sort, offset and limit.  Unknown
// parameters are ignored.
func (h *RoomHandler) List(c echo.Context) error {
	opts, err := availability.ParseOptions(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidDate})
	}
	ctx := c.Request().Context()

	listings, err := h.Rooms.ListListings(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}

	if opts.Window != nil {
		reservations, err := h.Reservations.ListAll(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
		}
		listings = availability.FilterAvailable(listings, reservations, opts.Window)
	}
	listings = availability.ApplyFacets(listings, opts.Facets)
	listings = availability.SortAndPaginate(listings, opts.Sort, opts.Page)

	return c.JSON(http.StatusOK, echo.Map{
		"results": availability.RenderAll(listings, opts.Window),
	})
}

// Detail handles GET /rooms/:room_id.  It returns the room info block
// together with the booked-date calendar, the image list and the
// reviews, so the detail page renders from a single request.
func (h *RoomHandler) Detail(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("room_id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgInvalidRooms})
	}
	ctx := c.Request().Context()

	listing, err := h.Rooms.GetListing(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgInvalidRooms})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	calendar, err := h.Reservations.ListByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	reviews, err := h.Reviews.ListByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}

	var rating *float64
	if listing.ReviewCount > 0 {
		r := listing.ReviewRating
		rating = &r
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": echo.Map{
			"room_info": echo.Map{
				"host":        listing.HostName,
				"room_type":   listing.RoomType,
				"title":       listing.Room.Title,
				"description": listing.Room.Description,
				"price":       listing.Room.Price,
				"room_detail": availability.CapacityDetail{
					MaxGuest: listing.Room.MaxGuest,
					Bedroom:  listing.Room.Bedroom,
					Bed:      listing.Room.Bed,
					Bath:     listing.Room.Bath,
				},
				"room_options": listing.Options,
				"address":      listing.Address,
				"latitude":     listing.Latitude,
				"longitude":    listing.Longitude,
				"rating":       rating,
				"review_count": listing.ReviewCount,
			},
			"reservation_date": calendar,
			"images":           listing.Images,
			"reviews":          reviews,
		},
	})
}
