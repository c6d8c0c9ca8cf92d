// Package router maps the HTTP surface of the booking API onto the
// handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/minjbak/wearebnb-server/internal/handler"
	"github.com/minjbak/wearebnb-server/internal/middleware"
)

// Handlers bundles the handler set the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Rooms        *handler.RoomHandler
	Reservations *handler.ReservationHandler
	Reviews      *handler.ReviewHandler
}

// Register attaches every route.  Browse endpoints (room search, room
// detail, the per-room calendar and per-room reviews) are public so
// guests can look before signing up; everything touching a user's own
// data requires a valid access token.
//
// The response cache is attached per route, to the public browse
// endpoints only.  User-scoped routes must never sit behind it: its
// key carries no user identity, so a shared entry would replay one
// user's data to the next.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	e.GET("/healthz", handler.Health)

	users := e.Group("/users")
	users.POST("/signup", h.Auth.SignUp)
	users.POST("/signin", h.Auth.SignIn)
	users.POST("/refresh", h.Auth.Refresh)
	users.GET("/mypage", h.Auth.MyPage, middleware.JWTAuth(jwtSecret))

	e.GET("/rooms", h.Rooms.List, cache)
	e.GET("/rooms/:room_id", h.Rooms.Detail, cache)

	auth := middleware.JWTAuth(jwtSecret)
	// The static "detail" segment wins over :reservation_code, so the
	// public calendar route coexists with the owner-scoped ones.
	e.GET("/reservations/detail/:room_id", h.Reservations.Calendar, cache)
	e.GET("/reservations", h.Reservations.ListMine, auth)
	e.POST("/reservations", h.Reservations.Create, auth)
	e.PATCH("/reservations/:reservation_code", h.Reservations.Modify, auth)
	e.DELETE("/reservations/:reservation_code", h.Reservations.Cancel, auth)

	e.GET("/reviews", h.Reviews.ListMine, auth)
	e.GET("/reviews/:room_id", h.Reviews.ListByRoom, cache)
}
