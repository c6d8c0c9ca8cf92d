package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/minjbak/wearebnb-server/internal/config"
)

func cacheTestClient(t *testing.T) *redis.Client {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestResponseCachePublicRouteHit(t *testing.T) {
	rdb := cacheTestClient(t)
	e := echo.New()

	calls := 0
	e.GET("/rooms", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"results": []string{"river view loft"}})
	}, ResponseCache(cacheTestConfig(), rdb))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/rooms", nil))
	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	if calls != 1 {
		t.Errorf("handler ran %d times, want 1 (second request should hit the cache)", calls)
	}
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q, want HIT", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestResponseCacheDistinctQueriesDistinctEntries(t *testing.T) {
	rdb := cacheTestClient(t)
	e := echo.New()

	e.GET("/rooms", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"location": c.QueryParam("location")})
	}, ResponseCache(cacheTestConfig(), rdb))

	seoul := httptest.NewRecorder()
	e.ServeHTTP(seoul, httptest.NewRequest(http.MethodGet, "/rooms?location=seoul", nil))
	busan := httptest.NewRecorder()
	e.ServeHTTP(busan, httptest.NewRequest(http.MethodGet, "/rooms?location=busan", nil))

	if busan.Header().Get("X-Cache") == "HIT" {
		t.Error("a different query string must not share a cache entry")
	}
	if !strings.Contains(busan.Body.String(), "busan") {
		t.Errorf("body = %s, want the busan response", busan.Body.String())
	}
}

// A request carrying an Authorization header is per-user and must
// bypass the cache entirely: its response is never stored and never
// served from a stored entry, so one caller's data cannot be replayed
// to another.
func TestResponseCacheBypassesAuthorizedRequests(t *testing.T) {
	rdb := cacheTestClient(t)
	e := echo.New()

	e.GET("/reservations", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"owner": c.Request().Header.Get("Authorization"),
		})
	}, ResponseCache(cacheTestConfig(), rdb))

	serve := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	first := serve("user-a")
	second := serve("user-b")

	if second.Header().Get("X-Cache") == "HIT" {
		t.Fatal("authorized request served from cache")
	}
	if !strings.Contains(second.Body.String(), "user-b") {
		t.Errorf("body = %s, want user-b's own response", second.Body.String())
	}
	if strings.Contains(second.Body.String(), "user-a") {
		t.Errorf("body = %s, leaked the first user's response", second.Body.String())
	}
	if strings.Contains(first.Body.String(), "user-b") {
		t.Errorf("body = %s, first user got the wrong response", first.Body.String())
	}
}

func TestResponseCacheDisabledPassThrough(t *testing.T) {
	rdb := cacheTestClient(t)
	e := echo.New()

	cfg := cacheTestConfig()
	cfg.Enabled = false
	calls := 0
	e.GET("/rooms", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"results": []string{}})
	}, ResponseCache(cfg, rdb))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))
		if rec.Header().Get("X-Cache") != "" {
			t.Errorf("disabled cache set X-Cache = %q", rec.Header().Get("X-Cache"))
		}
	}
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}
