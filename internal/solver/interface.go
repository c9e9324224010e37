package solver

import (
	"context"

	"ticket-triage/internal/model"
)

// Solver generates the category-specific structured payload for a
// ticket. One implementation exists per category; each issues exactly
// one LLM call per ticket.
type Solver interface {
	// Name identifies the solver in results and logs.
	Name() string

	// Category is the single category this solver handles.
	Category() model.Category

	// Solve produces a validated payload from the ticket and the
	// router's one-sentence summary.
	Solve(ctx context.Context, t model.Ticket, summary string) (model.SolverPayload, error)
}
