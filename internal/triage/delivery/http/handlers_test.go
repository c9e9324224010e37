package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ticket-triage/internal/middleware"
	"ticket-triage/internal/model"
	"ticket-triage/internal/triage"
	triageHTTP "ticket-triage/internal/triage/delivery/http"
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

type mockUseCase struct {
	processFunc func(ctx context.Context, t model.Ticket) (model.Result, error)
	batchFunc   func(ctx context.Context, tickets []model.Ticket) []model.Record
}

func (m *mockUseCase) ProcessTicket(ctx context.Context, t model.Ticket) (model.Result, error) {
	return m.processFunc(ctx, t)
}

func (m *mockUseCase) ProcessBatch(ctx context.Context, tickets []model.Ticket) []model.Record {
	return m.batchFunc(ctx, tickets)
}

func newTestRouter(uc triage.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := triageHTTP.New(&mockLogger{}, uc)
	mw := middleware.New(&mockLogger{}, 0) // rate limiting off
	triageHTTP.RegisterRoutes(engine.Group("/api/v1"), h, mw)
	return engine
}

func solvedResult() model.Result {
	return model.Result{
		TicketID: "T1",
		RoutingSlip: model.RoutingSlip{
			Category: model.CategoryBugs,
			Urgency:  model.UrgencyHigh,
			Summary:  "User cannot log in.",
		},
		Solver: model.SolverOutput{
			Category: model.CategoryBugs,
			Solver:   "BugSolver",
			Payload: model.BugReport{
				Title:             "Login button unresponsive",
				Description:       "Button does nothing on tap.",
				ReproductionSteps: []string{"Tap login"},
				Severity:          model.SeverityHigh,
				AssignedTeam:      model.TeamFrontend,
			},
		},
	}
}

func TestProcessTicket(t *testing.T) {
	uc := &mockUseCase{processFunc: func(ctx context.Context, ticket model.Ticket) (model.Result, error) {
		if ticket.ID != "T1" {
			t.Errorf("unexpected ticket id %q", ticket.ID)
		}
		return solvedResult(), nil
	}}
	engine := newTestRouter(uc)

	body := `{"ticket_id":"T1","subject":"Login button broken","message":"Nothing happens on tap."}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ErrorCode int          `json:"error_code"`
		Data      model.Result `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ErrorCode != 0 {
		t.Errorf("unexpected error_code %d", resp.ErrorCode)
	}
	if resp.Data.TicketID != "T1" {
		t.Errorf("unexpected ticket id %q", resp.Data.TicketID)
	}
	if resp.Data.Solver.Category != model.CategoryBugs {
		t.Errorf("unexpected solver category %s", resp.Data.Solver.Category)
	}
}

func TestProcessTicketBadRequest(t *testing.T) {
	uc := &mockUseCase{processFunc: func(ctx context.Context, ticket model.Ticket) (model.Result, error) {
		t.Error("usecase should not be called for a malformed request")
		return model.Result{}, nil
	}}
	engine := newTestRouter(uc)

	cases := []struct {
		name string
		body string
	}{
		{"missing ticket_id", `{"subject":"s","message":"m"}`},
		{"missing subject and message", `{"ticket_id":"T1"}`},
		{"not json", `not json at all`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/process", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestProcessTicketPipelineFailure(t *testing.T) {
	uc := &mockUseCase{processFunc: func(ctx context.Context, ticket model.Ticket) (model.Result, error) {
		return model.Result{}, triage.NewError(triage.StageRouting, triage.KindTimeout, errors.New("deadline exceeded"))
	}}
	engine := newTestRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/process",
		strings.NewReader(`{"ticket_id":"T1","subject":"s"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Stage string `json:"stage"`
			Kind  string `json:"kind"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Stage != "routing" || resp.Data.Kind != "timeout" {
		t.Errorf("unexpected stage/kind %s/%s", resp.Data.Stage, resp.Data.Kind)
	}
}

func TestProcessTicketUnexpectedError(t *testing.T) {
	uc := &mockUseCase{processFunc: func(ctx context.Context, ticket model.Ticket) (model.Result, error) {
		return model.Result{}, errors.New("panic-adjacent weirdness")
	}}
	engine := newTestRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/process",
		strings.NewReader(`{"ticket_id":"T1","subject":"s"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestProcessBatch(t *testing.T) {
	uc := &mockUseCase{batchFunc: func(ctx context.Context, tickets []model.Ticket) []model.Record {
		if len(tickets) != 2 {
			t.Errorf("expected 2 tickets, got %d", len(tickets))
		}
		records := make([]model.Record, len(tickets))
		for i, ticket := range tickets {
			records[i] = model.Record{Ticket: ticket}
		}
		return records
	}}
	engine := newTestRouter(uc)

	body := `{"tickets":[{"ticket_id":"T1","subject":"a"},{"ticket_id":"T2","message":"b"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/process-batch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProcessBatchEmptyList(t *testing.T) {
	uc := &mockUseCase{batchFunc: func(ctx context.Context, tickets []model.Ticket) []model.Record {
		t.Error("usecase should not be called for an empty batch")
		return nil
	}}
	engine := newTestRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/process-batch",
		strings.NewReader(`{"tickets":[]}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
