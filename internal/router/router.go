package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Beatrizfernan/front-formatura/internal/config"
	"github.com/Beatrizfernan/front-formatura/internal/handler"
	"github.com/Beatrizfernan/front-formatura/internal/middleware"
)

// RegisterRoutes wires every endpoint of the seat-map service onto the
// provided Echo instance.  The rate limiter applies to the whole /v1
// surface; the response cache wraps only the venue listing, since every
// seat-map view can change after a local move and must stay fresh.
func RegisterRoutes(e *echo.Echo, venues *handler.VenueHandler, uploads *handler.UploadHandler, maps *handler.MapHandler, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	v1.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	// Venue listing, cached: the backend's venue set changes rarely.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	v1.GET("/locais", venues.ListVenues, cache)

	// Spreadsheet upload -> allocation.
	v1.POST("/planilha", uploads.ProcessSpreadsheet)

	// Seat map: view, local/remote move, reorder, reset, PDF export.
	v1.GET("/mapa/:formatura_id", maps.GetSeatMap)
	v1.PUT("/mapa/:formatura_id/mover", maps.MoveCourse)
	v1.PUT("/mapa/:formatura_id/reordenar", maps.ReorderCourses)
	v1.POST("/mapa/:formatura_id/reset", maps.ResetSeatMap)
	v1.GET("/mapa/:formatura_id/pdf", maps.DownloadPDF)
}
