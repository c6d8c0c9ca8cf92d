package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/minjbak/wearebnb-server/internal/config"
)

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rooms?location=seoul", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/rooms")

	// httptest requests come from 192.0.2.1.
	want := "rl:192.0.2.1:GET /rooms"
	if got := rateKey("rl", c); got != want {
		t.Errorf("rateKey = %q, want %q", got, want)
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}
	e := echo.New()
	e.GET("/rooms", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(cfg, rdb))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))
		statuses = append(statuses, rec.Code)
		if i == 2 {
			if rec.Header().Get("Retry-After") == "" {
				t.Error("rejected request is missing Retry-After")
			}
		}
	}
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("burst requests got %v, want the first two allowed", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request got %d, want 429", statuses[2])
	}
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, Prefix: "rl"}
	e := echo.New()
	e.GET("/rooms", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(cfg, nil))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d got %d, want 200 with no limiter backend", i, rec.Code)
		}
	}
}
