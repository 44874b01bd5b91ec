package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Beatrizfernan/front-formatura/internal/config"
)

func invokeLimiter(t *testing.T, cfg config.RateLimitConfig, rdb *redis.Client) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/locais", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewRateLimiter(cfg, rdb)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestRateLimiterSubSecondWindow(t *testing.T) {
	// An unreachable Redis makes Incr fail, so the limiter must fail open.
	// The window below one second used to zero the key divisor and panic
	// before the Redis call was even made.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	cfg := config.RateLimitConfig{Enabled: true, Limit: 10, Window: 500 * time.Millisecond, Prefix: "rl"}

	rec := invokeLimiter(t, cfg, rdb)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	rec := invokeLimiter(t, config.RateLimitConfig{Enabled: false}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestLoadRateLimitConfigClampsWindow(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "500ms")
	cfg := config.LoadRateLimitConfig()
	if cfg.Window < time.Second {
		t.Fatalf("window = %s, want at least one second", cfg.Window)
	}
}
