package triage

import (
	"context"

	"ticket-triage/internal/model"
	"ticket-triage/pkg/llmprovider"
)

// UseCase is the caller-facing triage pipeline.
type UseCase interface {
	// ProcessTicket runs one ticket through Router -> Orchestrator -> Solver.
	// On failure it returns a *triage.Error carrying the stage and kind.
	ProcessTicket(ctx context.Context, t model.Ticket) (model.Result, error)

	// ProcessBatch processes tickets strictly sequentially. A failure on
	// one ticket terminates that ticket only; the batch continues.
	ProcessBatch(ctx context.Context, tickets []model.Ticket) []model.Record
}

// Generator is the narrow model-invocation boundary shared by the router
// and the solvers. *llmprovider.Manager satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
