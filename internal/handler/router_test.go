package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/service/catalog"
	quizService "github.com/zhouzirui/pawmatch/backend/internal/service/quiz"
)

func newTestRouter() http.Handler {
	source := catalog.NewStatic(breed.NewMemoryStore(breed.Seed()))
	return NewRouter(source, quizService.NewService(source, quizService.Config{}, nil), nil)
}

func TestHealthz(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["catalogReady"] != true {
		t.Fatalf("expected catalog ready, got %v", body)
	}
}

func TestAPIRoutesMounted(t *testing.T) {
	r := newTestRouter()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/breeds", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for breeds, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/quiz/sessions", nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for session, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS header")
	}
}

func TestMetricsExposed(t *testing.T) {
	r := newTestRouter()

	create := httptest.NewRecorder()
	r.ServeHTTP(create, httptest.NewRequest(http.MethodPost, "/api/quiz/sessions", nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "quiz_sessions_started_total") {
		t.Fatal("expected session counter in metrics output")
	}
}
