package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mamadbah2/terafetch/internal/domain/models"
	"github.com/mamadbah2/terafetch/internal/render"
	"github.com/mamadbah2/terafetch/internal/server/handlers"
)

type noopService struct{ calls int }

func (s *noopService) HandleMessage(context.Context, models.InboundMessage) error {
	s.calls++
	return nil
}

func TestRoutes(t *testing.T) {
	svc := &noopService{}
	r := New(handlers.NewWebhookHandler(svc, render.MustNewRenderer(), nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"update_id":1,"message":{"message_id":1,"chat":{"id":1,"type":"private"},"text":"/start"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || svc.calls != 1 {
		t.Fatalf("webhook: status %d, calls %d", w.Code, svc.calls)
	}

	for _, path := range []string{"/player", "/healthz"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := New(handlers.NewWebhookHandler(&noopService{}, render.MustNewRenderer(), nil), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("expected generated uuid request id, got %q", w.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected propagated request id, got %q", got)
	}
}
