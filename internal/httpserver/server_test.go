package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ticket-triage/internal/httpserver"
	"ticket-triage/internal/middleware"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type noopHandler struct{}

func (h *noopHandler) ProcessTicket(c *gin.Context) { c.Status(http.StatusOK) }
func (h *noopHandler) ProcessBatch(c *gin.Context)  { c.Status(http.StatusOK) }

func newServer(t *testing.T) *httpserver.HTTPServer {
	t.Helper()
	l := &mockLogger{}
	srv, err := httpserver.New(l, httpserver.Config{
		Logger:        l,
		Port:          8080,
		Mode:          gin.TestMode,
		Environment:   "development",
		Middleware:    middleware.New(l, 0),
		TriageHandler: &noopHandler{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return srv
}

func TestNewValidation(t *testing.T) {
	l := &mockLogger{}

	t.Run("missing port", func(t *testing.T) {
		_, err := httpserver.New(l, httpserver.Config{
			Logger: l, Mode: gin.TestMode, TriageHandler: &noopHandler{},
		})
		if err == nil {
			t.Fatal("expected error for missing port")
		}
	})

	t.Run("missing triage handler", func(t *testing.T) {
		_, err := httpserver.New(l, httpserver.Config{
			Logger: l, Port: 8080, Mode: gin.TestMode,
		})
		if err == nil {
			t.Fatal("expected error for missing handler")
		}
	})
}

func TestHealthRoutes(t *testing.T) {
	srv := newServer(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			srv.Engine().ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}

			var resp struct {
				Data struct {
					Service string `json:"service"`
					Status  string `json:"status"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Data.Service != httpserver.ServiceName {
				t.Errorf("unexpected service %q", resp.Data.Service)
			}
			if resp.Data.Status == "" {
				t.Error("status should not be empty")
			}
		})
	}
}

func TestDomainRoutesRegistered(t *testing.T) {
	srv := newServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/process", nil)
	srv.Engine().ServeHTTP(w, req)

	// The noop handler answers 200; a 404 would mean the route is missing.
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from registered route, got %d", w.Code)
	}
}
