package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/minjbak/wearebnb-server/internal/config"
	"github.com/minjbak/wearebnb-server/internal/database"
	"github.com/minjbak/wearebnb-server/internal/handler"
	"github.com/minjbak/wearebnb-server/internal/middleware"
	"github.com/minjbak/wearebnb-server/internal/queue"
	"github.com/minjbak/wearebnb-server/internal/repository"
	"github.com/minjbak/wearebnb-server/internal/router"
)

func main() {
	// .env is a local convenience; in production the variables come
	// from the environment itself.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	reviews := repository.NewReviewRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis is optional: with no client the cache and rate limiter
	// pass requests straight through.  The limiter is global; the
	// response cache goes only on the public browse routes, where the
	// router attaches it.
	rdb := config.NewRedisClient()
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens, reservations, reviews),
		Rooms:        handler.NewRoomHandler(rooms, reservations, reviews),
		Reservations: handler.NewReservationHandler(reservations, rooms),
		Reviews:      handler.NewReviewHandler(reviews, rooms),
	}, cfg.JWTSecret, middleware.ResponseCache(config.LoadCacheConfig(), rdb))

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
