package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minjbak/wearebnb-server/internal/config"
	"github.com/minjbak/wearebnb-server/internal/middleware"
	"github.com/minjbak/wearebnb-server/internal/repository"
	"github.com/minjbak/wearebnb-server/internal/utils"
)

// AuthHandler bundles dependencies for the signup/signin endpoints and
// the authenticated profile view.
type AuthHandler struct {
	Cfg          config.Config
	Users        *repository.UserRepo
	Tokens       *repository.TokenRepo
	Reservations *repository.ReservationRepo
	Reviews      *repository.ReviewRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, res *repository.ReservationRepo, rev *repository.ReviewRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Reservations: res, Reviews: rev}
}

// ----- DTOs -----

type signUpReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// SignUp handles POST /users/signup.  Email and password shapes are
// validated before hashing; a duplicate email is a client error, not a
// server fault.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	if !utils.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgEmailNotValid})
	}
	if !utils.ValidPassword(req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgPasswordNotValid})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if _, err := h.Users.Create(ctx, req.Name, req.Email, hash); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": msgDuplicateEmail})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": msgSuccess})
}

// SignIn handles POST /users/signin.  On success the client receives a
// short-lived access token plus a refresh token whose hash is stored
// server-side.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgInvalidUser})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if user.DeletedAt != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": msgUnactivatedUser})
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgInvalidPassword})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if err := h.Tokens.StoreRefresh(ctx, user.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       msgSuccess,
		"access_token":  access.Token,
		"refresh_token": refresh.Raw,
	})
}

// Refresh handles POST /users/refresh.  The presented refresh token is
// rotated: its hash is revoked and a new pair is issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgKeyError})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	oldHash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, oldHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidToken})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	if err := h.Tokens.Rotate(ctx, userID, oldHash, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       msgSuccess,
		"access_token":  access.Token,
		"refresh_token": refresh.Raw,
	})
}

// MyPage handles GET /users/mypage.  It assembles the profile view:
// account fields, the user's trip list and the reviews they have
// written.
func (h *AuthHandler) MyPage(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidToken})
	}
	ctx := c.Request().Context()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": msgInvalidUser})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	trips, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	reviews, err := h.Reviews.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgDatabaseError})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"results": echo.Map{
			"user": echo.Map{
				"name":              user.Name,
				"email":             user.Email,
				"phone":             user.Phone,
				"profile_image_url": user.ProfileImageURL,
			},
			"reservations": trips,
			"reviews":      reviews,
		},
	})
}
