package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Beatrizfernan/front-formatura/internal/backend"
)

// memStore is the in-memory SessionStore used across handler tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Save(_ context.Context, id string, snap []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = snap
	return nil
}

func (m *memStore) Get(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bs, ok := m.data[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return bs, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

// allocationJSON is a small two-course allocation: 1A holds engenharia
// 1-10 plus two empty seats, 1B holds direito 1-3 with 4-5 empty.
const allocationJSON = `{
	"formatura": {"id":"f-1","nome":"Turma 2026","local":"Teatro"},
	"alocacao": {
		"id":"al-1","total_alocado":13,"taxa_ocupacao":"76%",
		"detalhes":[
			{"curso":"Engenharia","curso_id":"eng","abreviacao":"ENG","total_assentos":10,
			 "filas":[{"fila":"1A","assentos":10,"range":"1-10"}]},
			{"curso":"Direito","curso_id":"dir","abreviacao":"DIR","total_assentos":3,
			 "filas":[{"fila":"1B","assentos":3,"range":"1-3"}]}
		],
		"assentos_vazios":[
			{"fila":"1A","assentos_vazios":[11,12],"total_vazios":2},
			{"fila":"1B","assentos_vazios":[4,5],"total_vazios":2}
		]
	}
}`

func newBackendStub(t *testing.T) (*httptest.Server, *backend.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/alocacao/missing"):
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":"formatura não encontrada"}`)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/alocacao/"):
			io.WriteString(w, allocationJSON)
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/mover-curso"):
			io.WriteString(w, allocationJSON)
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/reordenar"):
			io.WriteString(w, allocationJSON)
		default:
			t.Errorf("unexpected backend call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, backend.New(srv.URL)
}

func newMapContext(method, target, body string, sessions SessionStore, client *backend.Client) (echo.Context, *httptest.ResponseRecorder, *MapHandler) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("formatura_id")
	c.SetParamValues("f-1")
	h := &MapHandler{Backend: client, Sessions: sessions, AisleRow: 12}
	return c, rec, h
}

func TestGetSeatMapBuildsView(t *testing.T) {
	_, client := newBackendStub(t)
	c, rec, h := newMapContext(http.MethodGet, "/v1/mapa/f-1", "", newMemStore(), client)

	if err := h.GetSeatMap(c); err != nil {
		t.Fatalf("GetSeatMap: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var view struct {
		Formatura struct {
			Nome string `json:"nome"`
		} `json:"formatura"`
		Cursos []struct {
			ID    string `json:"id"`
			Abrev string `json:"abrev"`
		} `json:"cursos"`
		Antes        []json.RawMessage `json:"antes"`
		Depois       []json.RawMessage `json:"depois"`
		TotalAlocado int               `json:"total_alocado"`
		TotalVazios  int               `json:"total_vazios"`
		Modificado   bool              `json:"modificado"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Formatura.Nome != "Turma 2026" {
		t.Errorf("formatura = %+v", view.Formatura)
	}
	if len(view.Cursos) != 2 || view.Cursos[0].ID != "eng" || view.Cursos[1].ID != "dir" {
		t.Errorf("cursos = %+v", view.Cursos)
	}
	if len(view.Antes) != 1 || len(view.Depois) != 0 {
		t.Errorf("antes/depois lines = %d/%d, want 1/0", len(view.Antes), len(view.Depois))
	}
	if view.TotalAlocado != 13 || view.TotalVazios != 4 {
		t.Errorf("totals = %d alocado, %d vazios", view.TotalAlocado, view.TotalVazios)
	}
	if view.Modificado {
		t.Error("fresh map must not be marked modified")
	}
}

func TestGetSeatMapSurfacesBackendError(t *testing.T) {
	_, client := newBackendStub(t)
	c, rec, h := newMapContext(http.MethodGet, "/v1/mapa/missing", "", newMemStore(), client)
	c.SetParamValues("missing")

	if err := h.GetSeatMap(c); err != nil {
		t.Fatalf("GetSeatMap: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "formatura não encontrada") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestMoveCourseLocallyPersistsSession(t *testing.T) {
	_, client := newBackendStub(t)
	store := newMemStore()
	c, rec, h := newMapContext(http.MethodPut, "/v1/mapa/f-1/mover",
		`{"curso_id":"dir","fila_destino":"1A","assento_destino":1}`, store, client)

	if err := h.MoveCourse(c); err != nil {
		t.Fatalf("MoveCourse: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp struct {
		NaoAlocados int `json:"nao_alocados"`
		Filas       []struct {
			Fila  string `json:"fila"`
			Range string `json:"range"`
		} `json:"filas"`
		Mapa struct {
			Modificado bool `json:"modificado"`
		} `json:"mapa"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.NaoAlocados != 0 {
		t.Errorf("nao_alocados = %d, want 0", resp.NaoAlocados)
	}
	// The moved course's spans are recomputed from the new occupancy.
	if len(resp.Filas) != 1 || resp.Filas[0].Fila != "1A" || resp.Filas[0].Range != "1-3" {
		t.Errorf("filas = %+v, want [{1A 1-3}]", resp.Filas)
	}
	if !resp.Mapa.Modificado {
		t.Error("locally moved map must be marked modified")
	}
	if _, err := store.Get(context.Background(), "f-1"); err != nil {
		t.Error("local move must persist a session snapshot")
	}

	// A second view must be served from the session, still marked modified.
	c2, rec2, h2 := newMapContext(http.MethodGet, "/v1/mapa/f-1", "", store, client)
	if err := h2.GetSeatMap(c2); err != nil {
		t.Fatalf("GetSeatMap after move: %v", err)
	}
	if !strings.Contains(rec2.Body.String(), `"modificado":true`) {
		t.Errorf("follow-up view not modified: %s", rec2.Body)
	}
}

func TestMoveCourseValidation(t *testing.T) {
	_, client := newBackendStub(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing curso_id", `{"fila_destino":"1A","assento_destino":1}`, http.StatusBadRequest},
		{"missing fila", `{"curso_id":"dir","assento_destino":1}`, http.StatusBadRequest},
		{"seat below one", `{"curso_id":"dir","fila_destino":"1A","assento_destino":0}`, http.StatusBadRequest},
		{"unknown course", `{"curso_id":"med","fila_destino":"1A","assento_destino":1}`, http.StatusNotFound},
		{"unknown row", `{"curso_id":"dir","fila_destino":"9Z","assento_destino":1}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			c, rec, h := newMapContext(http.MethodPut, "/v1/mapa/f-1/mover", tc.body, store, client)
			if err := h.MoveCourse(c); err != nil {
				t.Fatalf("MoveCourse: %v", err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body)
			}
			if _, err := store.Get(context.Background(), "f-1"); err == nil {
				t.Error("rejected move must not persist a session")
			}
		})
	}
}

func TestMoveCourseConfirmedDropsSession(t *testing.T) {
	_, client := newBackendStub(t)
	store := newMemStore()
	store.Save(context.Background(), "f-1", []byte(`{"cursos":[],"filas":[]}`))

	c, rec, h := newMapContext(http.MethodPut, "/v1/mapa/f-1/mover",
		`{"curso_id":"dir","fila_destino":"1A","assento_destino":1,"confirmar":true}`, store, client)
	if err := h.MoveCourse(c); err != nil {
		t.Fatalf("MoveCourse: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if _, err := store.Get(context.Background(), "f-1"); err == nil {
		t.Error("confirmed move must drop the local session")
	}
}

func TestReorderCoursesDropsSession(t *testing.T) {
	_, client := newBackendStub(t)
	store := newMemStore()
	store.Save(context.Background(), "f-1", []byte(`{"cursos":[],"filas":[]}`))

	c, rec, h := newMapContext(http.MethodPut, "/v1/mapa/f-1/reordenar",
		`{"ordem":["dir","eng"]}`, store, client)
	if err := h.ReorderCourses(c); err != nil {
		t.Fatalf("ReorderCourses: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if _, err := store.Get(context.Background(), "f-1"); err == nil {
		t.Error("reorder must drop the local session")
	}

	c2, rec2, h2 := newMapContext(http.MethodPut, "/v1/mapa/f-1/reordenar", `{"ordem":[]}`, store, client)
	if err := h2.ReorderCourses(c2); err != nil {
		t.Fatalf("ReorderCourses empty: %v", err)
	}
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("empty ordem status = %d, want 400", rec2.Code)
	}
}

func TestResetSeatMap(t *testing.T) {
	_, client := newBackendStub(t)
	store := newMemStore()
	store.Save(context.Background(), "f-1", []byte(`{"cursos":[],"filas":[]}`))

	c, rec, h := newMapContext(http.MethodPost, "/v1/mapa/f-1/reset", "", store, client)
	if err := h.ResetSeatMap(c); err != nil {
		t.Fatalf("ResetSeatMap: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if _, err := store.Get(context.Background(), "f-1"); err == nil {
		t.Error("reset must delete the session")
	}

	// Resetting again is a no-op, not an error.
	c2, rec2, h2 := newMapContext(http.MethodPost, "/v1/mapa/f-1/reset", "", store, client)
	if err := h2.ResetSeatMap(c2); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if rec2.Code != http.StatusNoContent {
		t.Errorf("second reset status = %d", rec2.Code)
	}
}

func TestCorruptSessionFallsBackToBackend(t *testing.T) {
	_, client := newBackendStub(t)
	store := newMemStore()
	store.Save(context.Background(), "f-1", []byte(`{not json`))

	c, rec, h := newMapContext(http.MethodGet, "/v1/mapa/f-1", "", store, client)
	if err := h.GetSeatMap(c); err != nil {
		t.Fatalf("GetSeatMap: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"modificado":false`) {
		t.Errorf("corrupt session must not mark the map modified: %s", rec.Body)
	}
}
