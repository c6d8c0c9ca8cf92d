package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/minjbak/wearebnb-server/internal/config"
)

// bodyRecorder tees the response body into a buffer, up to a limit,
// while forwarding everything to the client.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
}

func (br *bodyRecorder) WriteHeader(code int) {
	br.status = code
	br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
	if br.limit <= 0 || br.buf.Len()+len(b) <= br.limit {
		br.buf.Write(b)
	} else {
		// over budget: drop the capture, the response is too big to cache
		br.buf.Reset()
		br.limit = -1
	}
	return br.ResponseWriter.Write(b)
}

// ResponseCache returns a middleware that serves successful responses
// for the configured methods out of Redis.  It belongs on public
// routes only: the key carries no user identity, so the router
// attaches it to the anonymous browse endpoints where every caller
// sees the same body.  Requests carrying an Authorization header are
// never cached or served from cache, so a per-user response cannot
// leak through a misattached instance.  With a nil client or caching
// disabled, the middleware is a pass-through.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			if c.Request().Header.Get("Authorization") != "" {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			rec := &bodyRecorder{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          cfg.MaxBodyBytes,
			}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if rec.status == http.StatusOK && rec.buf.Len() > 0 {
				// context.Background: the request context may already be done
				_ = rdb.SetEx(context.Background(), key, rec.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// cacheKey builds a stable key from the route path and raw query.
// There is deliberately no user component; anything user-scoped must
// not reach this middleware.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}
