package usecase_test

import (
	"context"
	"strings"
	"testing"

	"ticket-triage/internal/model"
	"ticket-triage/internal/router"
	"ticket-triage/internal/solver"
	"ticket-triage/internal/triage"
	"ticket-triage/internal/triage/usecase"
	"ticket-triage/pkg/llmprovider"
)

// scriptedGenerator serves canned responses keyed by prompt content, so
// the full pipeline (real router, real solvers) runs against a
// deterministic model.
type scriptedGenerator struct {
	routerText map[string]string // ticket id -> classification JSON
	solverText map[string]string // ticket id -> payload JSON
}

func (g *scriptedGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	prompt := req.Messages[0].Content

	isRouterCall := strings.Contains(req.SystemInstruction, "support ticket analysis")
	table := g.solverText
	if isRouterCall {
		table = g.routerText
	}
	for id, text := range table {
		if strings.Contains(prompt, "Ticket ID: "+id+"\n") {
			return &llmprovider.Response{Text: text}, nil
		}
	}
	return &llmprovider.Response{Text: "{}"}, nil
}

func buildUseCase(t *testing.T, gen *scriptedGenerator) triage.UseCase {
	t.Helper()
	l := &mockLogger{}
	cfg := solver.Config{}
	uc, err := usecase.New(l, router.New(gen, l, router.Config{}), usecase.Solvers{
		Bug:            solver.NewBugSolver(gen, l, cfg),
		Query:          solver.NewQuerySolver(gen, l, cfg),
		FeatureRequest: solver.NewFeatureRequestSolver(gen, l, cfg),
		Security:       solver.NewSecuritySolver(gen, l, cfg),
		Correctness:    solver.NewCorrectnessSolver(gen, l, cfg),
		Misc:           solver.NewMiscSolver(gen, l, cfg),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return uc
}

func TestPipelineBugScenario(t *testing.T) {
	gen := &scriptedGenerator{
		routerText: map[string]string{
			"T1": `{"category":"BUGS","urgency":"High","summary":"Login button does nothing on mobile."}`,
		},
		solverText: map[string]string{
			"T1": `{"title":"Login button unresponsive on iOS","description":"Tapping the login button has no effect since the morning release.","reproduction_steps":["Open the iOS app","Tap the login button"],"severity":"High","assigned_team":"Frontend"}`,
		},
	}
	uc := buildUseCase(t, gen)

	result, err := uc.ProcessTicket(context.Background(), model.Ticket{
		ID:      "T1",
		Subject: "Login button broken",
		Message: "Since this morning the login button does nothing when tapped.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RoutingSlip.Category != model.CategoryBugs || result.RoutingSlip.Urgency != model.UrgencyHigh {
		t.Errorf("unexpected routing slip %+v", result.RoutingSlip)
	}
	if result.Solver.Solver != solver.NameBugSolver {
		t.Errorf("expected %s, got %s", solver.NameBugSolver, result.Solver.Solver)
	}
	bug, ok := result.Solver.Payload.(model.BugReport)
	if !ok {
		t.Fatalf("expected BugReport, got %T", result.Solver.Payload)
	}
	if bug.AssignedTeam != model.TeamFrontend {
		t.Errorf("unexpected team %s", bug.AssignedTeam)
	}
	if len(bug.ReproductionSteps) == 0 {
		t.Error("reproduction steps should not be empty")
	}
}

func TestPipelineQueryScenario(t *testing.T) {
	gen := &scriptedGenerator{
		routerText: map[string]string{
			"T2": `{"category":"QUERY","urgency":"Low","summary":"User asks how to export project data."}`,
		},
		solverText: map[string]string{
			"T2": `{"body_text":"You can export your data from Settings > Export as CSV.","is_resolved":true,"assigned_team":"Customer Support"}`,
		},
	}
	uc := buildUseCase(t, gen)

	result, err := uc.ProcessTicket(context.Background(), model.Ticket{
		ID:      "T2",
		Subject: "How do I export my data?",
		Message: "I would like to download my project data as CSV.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Solver.Solver != solver.NameQuerySolver {
		t.Errorf("expected %s, got %s", solver.NameQuerySolver, result.Solver.Solver)
	}
	draft, ok := result.Solver.Payload.(model.DraftResponse)
	if !ok {
		t.Fatalf("expected DraftResponse, got %T", result.Solver.Payload)
	}
	if draft.AssignedTeam != model.TeamCustomerSupport {
		t.Errorf("unexpected team %s", draft.AssignedTeam)
	}
	if !draft.Resolved {
		t.Error("expected is_resolved true")
	}
}
