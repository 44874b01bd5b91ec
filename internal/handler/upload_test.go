package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/backend"
)

func multipartRequest(t *testing.T, localID, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if localID != "" {
		mw.WriteField("local_id", localID)
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("arquivo", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		io.WriteString(fw, content)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/planilha", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func TestProcessSpreadsheetRelays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/planilha/processar" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("local_id"); got != "3" {
			t.Errorf("local_id = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"alocacao":{"id":"al-2","detalhes":[]}}`)
	}))
	defer srv.Close()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(multipartRequest(t, "3", "turma.csv", "nome,curso\n"), rec)
	h := &UploadHandler{Backend: backend.New(srv.URL), MaxBytes: 1 << 20}

	if err := h.ProcessSpreadsheet(c); err != nil {
		t.Fatalf("ProcessSpreadsheet: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"al-2"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestProcessSpreadsheetValidation(t *testing.T) {
	backendCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalled = true
	}))
	defer srv.Close()

	cases := []struct {
		name    string
		localID string
		file    string
		size    int64
		wantErr string
	}{
		{"missing local_id", "", "turma.csv", 1 << 20, "local_id"},
		{"missing file", "3", "", 1 << 20, "arquivo"},
		{"bad extension", "3", "turma.pdf", 1 << 20, "CSV or Excel"},
		{"oversized file", "3", "turma.csv", 4, "size limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(multipartRequest(t, tc.localID, tc.file, "nome,curso\n"), rec)
			h := &UploadHandler{Backend: backend.New(srv.URL), MaxBytes: tc.size}

			if err := h.ProcessSpreadsheet(c); err != nil {
				t.Fatalf("ProcessSpreadsheet: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
			if !strings.Contains(rec.Body.String(), tc.wantErr) {
				t.Errorf("body = %s, want mention of %q", rec.Body, tc.wantErr)
			}
		})
	}
	if backendCalled {
		t.Error("invalid uploads must not reach the backend")
	}
}

func TestListVenuesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listar_locais/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"1","nome":"Teatro Municipal","capacidade":420}]`)
	}))
	defer srv.Close()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/locais", nil), rec)
	h := &VenueHandler{Backend: backend.New(srv.URL)}

	if err := h.ListVenues(c); err != nil {
		t.Fatalf("ListVenues: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Teatro Municipal") {
		t.Errorf("body = %s", rec.Body)
	}
}
