package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/backend"
)

// VenueHandler proxies venue queries to the allocation backend.
type VenueHandler struct {
	Backend *backend.Client
}

// ListVenues handles GET /v1/locais and relays the backend's venue
// listing.  The route is normally wrapped in the Redis response cache
// since the listing changes rarely.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	venues, err := h.Backend.ListVenues(c.Request().Context())
	if err != nil {
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, venues)
}
