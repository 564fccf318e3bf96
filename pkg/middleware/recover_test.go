package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestRecover(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	Recover(zap.NewNop().Sugar(), panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected %v but was %v", http.StatusInternalServerError, w.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "internal server error" {
		t.Errorf("expected %v but was %v", "internal server error", resp.Message)
	}
}

func TestRecoverPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	Recover(zap.NewNop().Sugar(), next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("expected %v but was %v", http.StatusTeapot, w.Code)
	}
}
