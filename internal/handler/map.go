package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/backend"
	"github.com/Beatrizfernan/front-formatura/internal/model"
	"github.com/Beatrizfernan/front-formatura/internal/seatmap"
)

// MapHandler serves the seat-map view and the operations that edit it.
// The backend allocation is the source of truth; a persisted session
// snapshot overrides it when local (unconfirmed) moves exist.
type MapHandler struct {
	Backend  *backend.Client
	Sessions SessionStore
	AisleRow int
}

// seatMapView is the render-ready seat map: the legend in course order,
// the row sections on either side of the aisle, and the allocation stats.
type seatMapView struct {
	Formatura    *model.Formatura `json:"formatura,omitempty"`
	Cursos       []seatmap.Course `json:"cursos"`
	Antes        []seatmap.Line   `json:"antes"`
	Depois       []seatmap.Line   `json:"depois"`
	TotalAlocado int              `json:"total_alocado"`
	TotalVazios  int              `json:"total_vazios"`
	TaxaOcupacao string           `json:"taxa_ocupacao"`
	Modificado   bool             `json:"modificado"`
}

// GetSeatMap handles GET /v1/mapa/:formatura_id.
func (h *MapHandler) GetSeatMap(c echo.Context) error {
	resp, layout, modified, err := h.loadLayout(c)
	if err != nil {
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, h.buildView(resp, layout, modified))
}

// loadLayout fetches the current allocation and reconstructs the working
// layout: the persisted local session when one exists, otherwise a fresh
// build from the backend's answer.  A snapshot that fails to decode is
// discarded in favor of the backend data rather than failing the request.
func (h *MapHandler) loadLayout(c echo.Context) (*model.AllocationResponse, *seatmap.Layout, bool, error) {
	ctx := c.Request().Context()
	formaturaID := c.Param("formatura_id")

	resp, err := h.Backend.GetAllocation(ctx, formaturaID)
	if err != nil {
		return nil, nil, false, err
	}
	if resp.Alocacao == nil {
		return nil, nil, false, &backend.APIError{Status: http.StatusBadGateway, Message: "allocation missing from backend response"}
	}

	if bs, err := h.Sessions.Get(ctx, formaturaID); err == nil {
		var snap seatmap.Snapshot
		if json.Unmarshal(bs, &snap) == nil {
			return resp, seatmap.FromSnapshot(snap), true, nil
		}
	}

	layout := seatmap.Build(resp.Alocacao.Detalhes, resp.Alocacao.AssentosVazios, nil)
	return resp, layout, false, nil
}

func (h *MapHandler) buildView(resp *model.AllocationResponse, layout *seatmap.Layout, modified bool) seatMapView {
	antes, depois := layout.Sections(h.AisleRow)
	view := seatMapView{
		Formatura:   resp.Formatura,
		Cursos:      layout.Courses(),
		Antes:       antes,
		Depois:      depois,
		TotalVazios: layout.EmptyCount(),
		Modificado:  modified,
	}
	if resp.Alocacao != nil {
		view.TotalAlocado = resp.Alocacao.TotalAlocado
		view.TaxaOcupacao = resp.Alocacao.TaxaOcupacao
	}
	return view
}

// DownloadPDF handles GET /v1/mapa/:formatura_id/pdf and streams the
// backend-rendered seat map through.
func (h *MapHandler) DownloadPDF(c echo.Context) error {
	body, contentType, err := h.Backend.SeatMapPDF(c.Request().Context(), c.Param("formatura_id"))
	if err != nil {
		return backendError(c, err)
	}
	defer body.Close()
	return c.Stream(http.StatusOK, contentType, body)
}
