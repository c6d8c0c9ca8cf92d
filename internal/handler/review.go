package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minjbak/wearebnb-server/internal/middleware"
	"github.com/minjbak/wearebnb-server/internal/repository"
)

// ReviewHandler serves the review listings: per room for the detail
// page and per user for the profile.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
	Rooms   *repository.RoomRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo, rooms *repository.RoomRepo) *ReviewHandler {
	if reviews == nil || rooms == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reviews: reviews, Rooms: rooms}
}

// ListByRoom handles GET /reviews/:room_id.  The room must exist; its
// review aggregate rides along so the client renders the header from
// one call.
func (h *ReviewHandler) ListByRoom(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("room_id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgDoesNotExistRoom})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgDoesNotExistRoom})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}

	avg, count, err := h.Reviews.AverageAndCount(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	reviews, err := h.Reviews.ListByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": echo.Map{
			"average_rating": avg,
			"review_count":   count,
			"review_info":    reviews,
		},
	})
}

// ListMine handles GET /reviews: the authenticated user's own reviews.
func (h *ReviewHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidToken})
	}
	reviews, err := h.Reviews.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": echo.Map{"reviews": reviews},
	})
}
