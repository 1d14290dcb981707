package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/james-see/pianopad/pkg/audio"
	"github.com/james-see/pianopad/pkg/notepad"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockEngine implements notepad.Engine
type mockEngine struct {
	mu     sync.Mutex
	next   audio.SoundID
	played []audio.SoundID
}

func (e *mockEngine) Load(ctx context.Context, asset audio.Asset) (audio.SoundID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	return e.next, nil
}

func (e *mockEngine) Play(id audio.SoundID, params audio.PlayParams) audio.StreamID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.played = append(e.played, id)
	return audio.StreamID(len(e.played))
}

func (e *mockEngine) AutoPause()     {}
func (e *mockEngine) Release() error { return nil }

func newTestServer(t *testing.T, preload bool) (*Server, *mockEngine) {
	t.Helper()
	engine := &mockEngine{}
	screen := notepad.NewScreen(notepad.New(engine))
	if preload {
		screen.Open(context.Background())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := screen.Pad.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	return NewServer(screen, nil), engine
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, false)

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := do(t, s, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
	}
}

func TestListNotes(t *testing.T) {
	s, _ := newTestServer(t, true)

	w := do(t, s, http.MethodGet, "/api/v1/notes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Notes []NoteView `json:"notes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	expected := []string{"Do", "Re", "Mi", "Fa", "Sol", "La", "Si"}
	if len(body.Notes) != len(expected) {
		t.Fatalf("notes = %d, want %d", len(body.Notes), len(expected))
	}
	for i, n := range body.Notes {
		if n.Index != i || n.Label != expected[i] || !n.Ready {
			t.Errorf("notes[%d] = %+v, want index %d label %s ready", i, n, i, expected[i])
		}
	}
}

func TestTapNote(t *testing.T) {
	s, engine := newTestServer(t, true)

	w := do(t, s, http.MethodPost, "/api/v1/notes/4/tap", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	handles := s.screen.Pad.Handles()
	if len(engine.played) != 1 || engine.played[0] != handles[4] {
		t.Errorf("played = %v, want [%d]", engine.played, handles[4])
	}
}

func TestTapNoteErrors(t *testing.T) {
	s, engine := newTestServer(t, true)

	tests := []struct {
		path     string
		expected int
	}{
		{"/api/v1/notes/abc/tap", http.StatusBadRequest},
		{"/api/v1/notes/7/tap", http.StatusNotFound},
		{"/api/v1/notes/-1/tap", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, s, http.MethodPost, tt.path, "")
			if w.Code != tt.expected {
				t.Errorf("status = %d, want %d", w.Code, tt.expected)
			}
		})
	}
	if len(engine.played) != 0 {
		t.Errorf("failed taps played %v", engine.played)
	}
}

func TestTapBeforeReady(t *testing.T) {
	s, engine := newTestServer(t, false)

	w := do(t, s, http.MethodPost, "/api/v1/notes/0/tap", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ready":false`) {
		t.Errorf("body = %s, want ready false", w.Body.String())
	}
	if len(engine.played) != 0 {
		t.Error("tap before preload should not play")
	}
}

func TestOctave(t *testing.T) {
	s, _ := newTestServer(t, false)

	w := do(t, s, http.MethodGet, "/api/v1/octave", "")
	if !strings.Contains(w.Body.String(), `"octave":4`) {
		t.Errorf("GET body = %s, want octave 4", w.Body.String())
	}

	w = do(t, s, http.MethodPut, "/api/v1/octave", `{"octave":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if s.screen.Octave() != 5 {
		t.Errorf("Octave() = %d, want 5", s.screen.Octave())
	}
}

func TestOctaveInvalid(t *testing.T) {
	s, _ := newTestServer(t, false)

	for _, body := range []string{`{"octave":9}`, `{"octave":"high"}`, `{}`, `not json`} {
		w := do(t, s, http.MethodPut, "/api/v1/octave", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("PUT %s status = %d, want 400", body, w.Code)
		}
	}
	if s.screen.Octave() != 4 {
		t.Errorf("Octave() = %d, want 4", s.screen.Octave())
	}
}

func TestSession(t *testing.T) {
	s, _ := newTestServer(t, true)

	w := do(t, s, http.MethodGet, "/api/v1/session", "")
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["id"] != s.screen.ID() {
		t.Errorf("id = %v, want %s", body["id"], s.screen.ID())
	}
	if body["ready"] != float64(7) {
		t.Errorf("ready = %v, want 7", body["ready"])
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, false)

	w := do(t, s, http.MethodOptions, "/api/v1/notes", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
