package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/queue"
	"github.com/Beatrizfernan/front-formatura/internal/seatmap"
	queue_publisher "github.com/Beatrizfernan/front-formatura/internal/service"
)

// MoveCourse handles PUT /v1/mapa/:formatura_id/mover.  By default the
// move is applied locally: the reallocator shifts the course's block to
// the target position, cascades displaced courses forward, and the
// resulting layout is persisted as a session without touching the
// backend.  With "confirmar": true the move is relayed to the backend
// instead and whatever it echoes back replaces local state wholesale.
func (h *MapHandler) MoveCourse(c echo.Context) error {
	formaturaID := c.Param("formatura_id")

	var body struct {
		CursoID        string `json:"curso_id"`
		FilaDestino    string `json:"fila_destino"`
		AssentoDestino int    `json:"assento_destino"`
		Confirmar      bool   `json:"confirmar"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.CursoID == "" || body.FilaDestino == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "curso_id and fila_destino are required"})
	}
	if body.AssentoDestino < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "assento_destino must be at least 1"})
	}

	if body.Confirmar {
		resp, err := h.Backend.MoveCourse(c.Request().Context(), formaturaID, body.CursoID, body.FilaDestino, body.AssentoDestino)
		if err != nil {
			return backendError(c, err)
		}
		// The backend's allocation is authoritative now; any stale local
		// session would shadow it on the next view.
		_ = h.Sessions.Delete(c.Request().Context(), formaturaID)

		go func() {
			_ = queue_publisher.PublishCourseMoved(context.Background(), queue.CourseMovedEvent{
				FormaturaID:    formaturaID,
				CursoID:        body.CursoID,
				FilaDestino:    body.FilaDestino,
				AssentoDestino: body.AssentoDestino,
				Confirmado:     true,
			})
		}()
		return c.JSON(http.StatusOK, resp)
	}

	resp, layout, _, err := h.loadLayout(c)
	if err != nil {
		return backendError(c, err)
	}

	unplaced, err := layout.MoveCourse(body.CursoID, body.FilaDestino, body.AssentoDestino)
	if err != nil {
		switch {
		case errors.Is(err, seatmap.ErrCourseNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "course not found"})
		case errors.Is(err, seatmap.ErrInvalidDestination):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid destination row"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "move failed"})
		}
	}

	snap, err := json.Marshal(layout.Snapshot())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not serialize seat map"})
	}
	if err := h.Sessions.Save(c.Request().Context(), formaturaID, snap); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not persist seat map"})
	}

	go func() {
		_ = queue_publisher.PublishCourseMoved(context.Background(), queue.CourseMovedEvent{
			FormaturaID:    formaturaID,
			CursoID:        body.CursoID,
			FilaDestino:    body.FilaDestino,
			AssentoDestino: body.AssentoDestino,
			NaoAlocados:    unplaced,
		})
	}()

	return c.JSON(http.StatusOK, map[string]any{
		"nao_alocados": unplaced,
		"filas":        layout.CourseRanges(body.CursoID),
		"mapa":         h.buildView(resp, layout, true),
	})
}

// ReorderCourses handles PUT /v1/mapa/:formatura_id/reordenar.  The new
// legend ordering is relayed to the backend, which alone decides what
// reordering means for the stored allocation; its response replaces local
// state and any local session is dropped.  There is no local variant.
func (h *MapHandler) ReorderCourses(c echo.Context) error {
	formaturaID := c.Param("formatura_id")

	var body struct {
		Ordem []string `json:"ordem"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(body.Ordem) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ordem is required"})
	}

	resp, err := h.Backend.ReorderCourses(c.Request().Context(), formaturaID, body.Ordem)
	if err != nil {
		return backendError(c, err)
	}
	_ = h.Sessions.Delete(c.Request().Context(), formaturaID)

	go func() {
		_ = queue_publisher.PublishCoursesReordered(context.Background(), queue.CoursesReorderedEvent{
			FormaturaID: formaturaID,
			Ordem:       body.Ordem,
		})
	}()

	return c.JSON(http.StatusOK, resp)
}

// ResetSeatMap handles POST /v1/mapa/:formatura_id/reset.  It discards
// the local session so the next view rebuilds from the original backend
// allocation; resetting an unmodified map is a no-op.
func (h *MapHandler) ResetSeatMap(c echo.Context) error {
	if err := h.Sessions.Delete(c.Request().Context(), c.Param("formatura_id")); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not reset seat map"})
	}
	return c.NoContent(http.StatusNoContent)
}
