package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/backend"
)

// UploadHandler relays spreadsheet uploads to the allocation backend.
type UploadHandler struct {
	Backend  *backend.Client
	MaxBytes int64
}

// allowedUploadExts mirrors the file types the old upload form accepted.
var allowedUploadExts = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xls":  true,
	".xlsx": true,
}

// ProcessSpreadsheet handles POST /v1/planilha.  It validates the
// multipart upload (field "arquivo" plus "local_id") before relaying it,
// so obviously bad requests fail fast without a backend round trip.  The
// backend's allocation response is returned unchanged.
func (h *UploadHandler) ProcessSpreadsheet(c echo.Context) error {
	localID := strings.TrimSpace(c.FormValue("local_id"))
	if localID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "local_id is required"})
	}

	fh, err := c.FormFile("arquivo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "arquivo is required"})
	}
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); !allowedUploadExts[ext] {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "arquivo must be a CSV or Excel file"})
	}
	if h.MaxBytes > 0 && fh.Size > h.MaxBytes {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "arquivo exceeds the size limit"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read arquivo"})
	}
	defer f.Close()

	resp, err := h.Backend.ProcessSpreadsheet(c.Request().Context(), fh.Filename, localID, f)
	if err != nil {
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
