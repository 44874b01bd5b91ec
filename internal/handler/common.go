package handler // handler package contains the HTTP handlers of the seat-map service

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/backend"
)

// SessionStore persists locally modified seat maps between requests.  The
// MySQL repository implements it; tests substitute an in-memory fake.
type SessionStore interface {
	Save(ctx context.Context, formaturaID string, snapshot []byte) error
	Get(ctx context.Context, formaturaID string) ([]byte, error)
	Delete(ctx context.Context, formaturaID string) error
}

// backendError translates a failed backend call into a response: the
// backend's own status and error text when available, a 502 with a
// generic message otherwise.  Local state is never replaced on failure,
// so callers simply return this.
func backendError(c echo.Context, err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.Status, map[string]string{"error": apiErr.Message})
	}
	return c.JSON(http.StatusBadGateway, map[string]string{"error": "allocation backend unreachable"})
}
