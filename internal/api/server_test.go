package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckdraw/pkg/pipeline"
	"github.com/matzehuels/deckdraw/pkg/store"
)

const testDeck = `
slides:
  - id: arch
    components:
      - tool: component_diagram
        data:
          nodes:
            - id: a
              pos: {x: 0, y: 40, w: 20, h: 20}
            - id: b
              pos: {x: 60, y: 40, w: 20, h: 20}
          connectors:
            - from: a
              to: b
`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, log.New(io.Discard))
	opts = append(opts, WithLogger(log.New(io.Discard)))
	return NewServer(runner, opts...)
}

func postRender(t *testing.T, srv *Server, req RenderRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(body)))
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	rec := postRender(t, srv, RenderRequest{Deck: testDeck})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Slides) != 1 || resp.Slides[0].SlideID != "arch" {
		t.Fatalf("slides = %+v, want one slide 'arch'", resp.Slides)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Slides[0].Artifacts["svg"])
	if err != nil {
		t.Fatalf("artifact not base64: %v", err)
	}
	if !strings.HasPrefix(string(raw), "<svg") {
		t.Errorf("artifact is not svg: %.60s", raw)
	}
	if resp.DeckHash == "" {
		t.Error("missing deck hash")
	}
}

func TestRender_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	rec := postRender(t, srv, RenderRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty deck status = %d, want 400", rec.Code)
	}

	rec = postRender(t, srv, RenderRequest{
		Deck:    testDeck,
		Options: pipeline.Options{Formats: []string{"bmp"}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad format status = %d, want 400", rec.Code)
	}

	rec = postRender(t, srv, RenderRequest{
		Deck:    testDeck,
		Options: pipeline.Options{SlideID: "ghost"},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing slide status = %d, want 404", rec.Code)
	}
}

func TestRender_PersistAndFetch(t *testing.T) {
	st := store.NewMemoryStore()
	srv := newTestServer(t, WithStore(st))

	rec := postRender(t, srv, RenderRequest{
		Deck:    testDeck,
		Options: pipeline.Options{Formats: []string{"json"}},
		Persist: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	id, ok := resp.SceneIDs["arch"]
	if !ok {
		t.Fatalf("scene ids = %v, want entry for 'arch'", resp.SceneIDs)
	}

	get := httptest.NewRecorder()
	srv.Handler().ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/scenes/"+id, nil))
	if get.Code != http.StatusOK {
		t.Fatalf("get scene status = %d", get.Code)
	}
	var stored store.Record
	if err := json.Unmarshal(get.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if len(stored.Scene.Shapes) != 2 {
		t.Errorf("stored scene shapes = %d, want 2", len(stored.Scene.Shapes))
	}

	list := httptest.NewRecorder()
	srv.Handler().ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/decks/"+resp.DeckHash+"/scenes", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("list status = %d", list.Code)
	}
	var recs []store.Record
	if err := json.Unmarshal(list.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("records = %d, want 1", len(recs))
	}
}

func TestRender_PersistWithoutJSONFormat(t *testing.T) {
	srv := newTestServer(t, WithStore(store.NewMemoryStore()))
	rec := postRender(t, srv, RenderRequest{Deck: testDeck, Persist: true})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 when json format missing", rec.Code)
	}
}

func TestGetScene_NotFound(t *testing.T) {
	srv := newTestServer(t, WithStore(store.NewMemoryStore()))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scenes/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
