// Package backend is the HTTP client for the external allocation service.
// The service owns the actual allocation algorithm, persistence and PDF
// rendering; this client only preserves its wire contract and relays its
// error text on failures.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Beatrizfernan/front-formatura/internal/model"
)

// APIError carries a non-OK backend response: its HTTP status and the
// error text the backend provided (or a generic fallback).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// Client talks to the allocation backend at a fixed base URL, resolved
// once at startup from configuration.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New builds a Client.  The base URL may carry a trailing slash.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

// ListVenues fetches the registered venues (GET /listar_locais/).
func (c *Client) ListVenues(ctx context.Context) ([]model.Venue, error) {
	var out []model.Venue
	if err := c.getJSON(ctx, "/listar_locais/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessSpreadsheet uploads a student spreadsheet for allocation
// (POST /api/planilha/processar, multipart fields "arquivo" and "local_id").
func (c *Client) ProcessSpreadsheet(ctx context.Context, filename, localID string, file io.Reader) (*model.AllocationResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("arquivo", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.WriteField("local_id", localID); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/planilha/processar", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out model.AllocationResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAllocation fetches a stored allocation (GET /api/alocacao/{id}).
func (c *Client) GetAllocation(ctx context.Context, formaturaID string) (*model.AllocationResponse, error) {
	var out model.AllocationResponse
	if err := c.getJSON(ctx, "/api/alocacao/"+formaturaID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReorderCourses submits a new legend ordering
// (PUT /api/alocacao/{id}/reordenar).  What reordering means for the
// stored allocation is entirely the backend's call; the echoed allocation
// replaces local state wholesale.
func (c *Client) ReorderCourses(ctx context.Context, formaturaID string, ordem []string) (*model.AllocationResponse, error) {
	body := map[string]any{"ordem": ordem}
	var out model.AllocationResponse
	if err := c.putJSON(ctx, "/api/alocacao/"+formaturaID+"/reordenar", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MoveCourse asks the backend to apply a course move authoritatively
// (PUT /api/alocacao/{id}/mover-curso).
func (c *Client) MoveCourse(ctx context.Context, formaturaID, cursoID, filaDestino string, assentoDestino int) (*model.AllocationResponse, error) {
	body := map[string]any{
		"curso_id":        cursoID,
		"fila_destino":    filaDestino,
		"assento_destino": assentoDestino,
	}
	var out model.AllocationResponse
	if err := c.putJSON(ctx, "/api/alocacao/"+formaturaID+"/mover-curso", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SeatMapPDF streams the rendered seat-map PDF
// (GET /api/pdf/mapa-assentos/{id}).  The caller must close the reader.
func (c *Client) SeatMapPDF(ctx context.Context, formaturaID string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/pdf/mapa-assentos/"+formaturaID, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", decodeError(resp)
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/pdf"
	}
	return resp.Body, ct, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	bs, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(bs))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request and decodes the JSON body into out.  Non-2xx
// responses become an *APIError carrying the backend's error text.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

// decodeError extracts {"error": "..."} from a failed response, falling
// back to the HTTP status text when the body is not in that shape.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else if body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
