package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minjbak/wearebnb-server/internal/availability"
	"github.com/minjbak/wearebnb-server/internal/middleware"
	"github.com/minjbak/wearebnb-server/internal/model"
	"github.com/minjbak/wearebnb-server/internal/queue"
	"github.com/minjbak/wearebnb-server/internal/repository"
	publisher "github.com/minjbak/wearebnb-server/internal/service"
	"github.com/minjbak/wearebnb-server/internal/utils"
)

// codeAttempts bounds the reservation-code generation loop.  With 128
// random bits a second round is already vanishingly unlikely.
const codeAttempts = 5

// ReservationHandler implements the reservation lifecycle: create,
// modify, cancel, the owner's trip list and the public per-room
// calendar.  Every mutation runs its ownership lookup and its write in
// one transaction; creation additionally holds the room's overlapping
// reservation rows locked so two concurrent bookings for the same
// nights serialize and the loser is rejected.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
}

func NewReservationHandler(reservations *repository.ReservationRepo, rooms *repository.RoomRepo) *ReservationHandler {
	if reservations == nil || rooms == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Rooms: rooms}
}

// ----- DTOs -----

// Pointer fields distinguish "absent" from zero so a missing field is
// reported as KEY_ERROR rather than silently defaulting.
type createReservationReq struct {
	Room     *uint64 `json:"room"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Adult    *int    `json:"adult"`
	Children *int    `json:"children"`
}

type modifyReservationReq struct {
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Adult    *int    `json:"adult"`
	Children *int    `json:"children"`
}

// Create handles POST /reservations.  Preconditions: the dates parse
// and are strictly ordered, check-in lies in the future, the party
// fits the room.  The overlap check and the insert share a transaction
// so a room can never be double-booked for the same night.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidToken})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	if req.Room == nil || req.CheckIn == nil || req.CheckOut == nil || req.Adult == nil || req.Children == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	if *req.Adult < 0 || *req.Children < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}

	window, err := availability.ParseRange(*req.CheckIn, *req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidDate})
	}
	if !window.CheckIn.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidDate})
	}

	ctx := c.Request().Context()
	room, err := h.Rooms.GetByID(ctx, *req.Room)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgDoesNotExistRoom})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if *req.Adult+*req.Children > room.MaxGuest {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgExceedQuantity})
	}

	code, err := h.freshCode(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}

	res := &model.Reservation{
		ReservationCode: code,
		UserID:          userID,
		RoomID:          room.ID,
		CheckIn:         window.CheckIn,
		CheckOut:        window.CheckOut,
		Days:            window.Days(),
		Adult:           *req.Adult,
		Children:        *req.Children,
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	overlapping, err := h.Reservations.CountOverlappingTx(ctx, tx, room.ID, 0, window.CheckIn, window.CheckOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if overlapping > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgAlreadyReserved})
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	committed = true

	// Fire-and-forget: a broker outage must not fail the booking.
	go func(ev queue.ReservationConfirmedEvent) {
		if err := publisher.PublishReservationConfirmed(context.Background(), ev); err != nil {
			log.Printf("reservation: publish confirmed event failed: %v", err)
		}
	}(queue.ReservationConfirmedEvent{
		ReservationCode: res.ReservationCode,
		UserID:          res.UserID,
		RoomID:          res.RoomID,
		RoomTitle:       room.Title,
		CheckIn:         res.CheckIn.Format(availability.DateLayout),
		CheckOut:        res.CheckOut.Format(availability.DateLayout),
		Days:            res.Days,
		Adult:           res.Adult,
		Children:        res.Children,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"reservation_code": res.ReservationCode})
}

// Modify handles PATCH /reservations/:reservation_code.  The lookup
// key is (owner, code): another user's code reads as not found.  The
// party size is re-checked against the room's current capacity, the
// new window is re-checked for overlaps against every other
// reservation on the room, and days is recomputed from the bounds.
// The code and the room are never changed.
func (h *ReservationHandler) Modify(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidToken})
	}
	code := c.Param("reservation_code")
	var req modifyReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	if req.CheckIn == nil || req.CheckOut == nil || req.Adult == nil || req.Children == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	if *req.Adult < 0 || *req.Children < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	window, err := availability.ParseRange(*req.CheckIn, *req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidDate})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByCodeForUserTx(ctx, tx, userID, code)
	if err != nil {
		return h.lookupError(c, err)
	}
	room, err := h.Rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if *req.Adult+*req.Children > room.MaxGuest {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgExceedQuantity})
	}
	overlapping, err := h.Reservations.CountOverlappingTx(ctx, tx, res.RoomID, res.ID, window.CheckIn, window.CheckOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if overlapping > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgAlreadyReserved})
	}

	res.CheckIn = window.CheckIn
	res.CheckOut = window.CheckOut
	res.Days = window.Days()
	res.Adult = *req.Adult
	res.Children = *req.Children
	if err := h.Reservations.UpdateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"message": msgSuccess})
}

// Cancel handles DELETE /reservations/:reservation_code.  Cancellation
// is a hard delete and is irreversible.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidToken})
	}
	code := c.Param("reservation_code")

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByCodeForUserTx(ctx, tx, userID, code)
	if err != nil {
		return h.lookupError(c, err)
	}
	if err := h.Reservations.DeleteTx(ctx, tx, res.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"message": msgSuccess})
}

// ListMine handles GET /reservations: the authenticated user's trip
// list with denormalized room display fields.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidToken})
	}
	trips, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": echo.Map{"reservations": trips},
	})
}

// Calendar handles GET /reservations/detail/:room_id.  Intentionally
// public: prospective guests must see blocked dates without signing
// in.
func (h *ReservationHandler) Calendar(c echo.Context) error {
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
	dates, err := h.Reservations.ListByRoom(ctx, roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": echo.Map{"reservation_date": dates},
	})
}

// freshCode generates a reservation code that is not yet in use.
func (h *ReservationHandler) freshCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := utils.NewReservationCode()
		if err != nil {
			return "", err
		}
		exists, err := h.Reservations.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("reservation code space exhausted")
}

// lookupError maps the repository's ownership-lookup sentinels onto
// API responses.  A multiple match is a distinct integrity signal and
// is never reported as not-found.
func (h *ReservationHandler) lookupError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgDoesNotExistReservation})
	case errors.Is(err, repository.ErrMultipleReservations):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgMultipleReservation})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
}
