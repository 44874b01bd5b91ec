package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Beatrizfernan/front-formatura/internal/config"
)

// NewRateLimiter applies a fixed-window per-IP limit backed by Redis.
// The window key is INCRed per request and expires after the window; when
// Redis is unreachable the limiter fails open so the tool stays usable.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	// A sub-second window would zero the divisor below; one second is the
	// finest granularity the windowing key supports.
	windowSecs := int64(cfg.Window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
		cfg.Window = time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			window := time.Now().Unix() / windowSecs
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, c.RealIP(), window)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window/time.Second)))
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":       "too_many_requests",
					"message":     "rate limit exceeded",
					"retry_after": int(cfg.Window / time.Second),
				})
			}
			return next(c)
		}
	}
}
