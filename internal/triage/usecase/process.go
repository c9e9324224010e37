package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-triage/internal/model"
	"ticket-triage/internal/solver"
	"ticket-triage/internal/triage"
)

// ProcessTicket runs one ticket through the three stages. Each stage
// blocks on its remote call; a failure at any stage terminates that
// ticket's processing with a typed error.
func (uc *implUseCase) ProcessTicket(ctx context.Context, t model.Ticket) (model.Result, error) {
	slip, out, err := uc.process(ctx, t)
	if err != nil {
		return model.Result{}, err
	}
	return model.Result{
		TicketID:    t.ID,
		RoutingSlip: *slip,
		Solver:      *out,
	}, nil
}

// ProcessBatch processes tickets strictly sequentially; each ticket's
// pipeline is independent, so one ticket's failure never affects the
// rest of the batch.
func (uc *implUseCase) ProcessBatch(ctx context.Context, tickets []model.Ticket) []model.Record {
	records := make([]model.Record, 0, len(tickets))

	for _, t := range tickets {
		start := time.Now()
		rec := model.Record{Ticket: t}

		slip, out, err := uc.process(ctx, t)
		rec.RoutingSlip = slip
		if err != nil {
			rec.Failure = failureFrom(err)
			uc.l.Warnf(ctx, "internal.triage.ProcessBatch: ticket %s failed: %v", t.ID, err)
		} else {
			rec.Solver = out
		}

		rec.ProcessingSecs = time.Since(start).Seconds()
		records = append(records, rec)
	}

	return records
}

// process is the Received -> Routed -> Solved state machine. It returns
// the routing slip even when the solver stage fails, so batch records
// keep the partial routing information.
func (uc *implUseCase) process(ctx context.Context, t model.Ticket) (*model.RoutingSlip, *model.SolverOutput, error) {
	if err := t.Validate(); err != nil {
		return nil, nil, triage.NewError(triage.StageRouting, triage.KindClassification, err)
	}

	// Received -> Routed
	slip, err := uc.router.Classify(ctx, t)
	if err != nil {
		return nil, nil, err
	}

	// Routed: select the solver
	s, err := uc.solverFor(slip.Category)
	if err != nil {
		return &slip, nil, err
	}
	uc.l.Infof(ctx, "internal.triage.process: ticket %s routed to %s", t.ID, s.Name())

	// Routed -> Solved
	payload, err := s.Solve(ctx, t, slip.Summary)
	if err != nil {
		return &slip, nil, err
	}

	out := model.SolverOutput{
		Category: slip.Category,
		Solver:   s.Name(),
		Payload:  payload,
	}
	if err := out.Validate(); err != nil {
		return &slip, nil, triage.NewError(triage.StageGeneration, triage.KindGeneration, err)
	}

	return &slip, &out, nil
}

// solverFor is the total mapping from the closed category set to its
// designated solver. The default branch is unreachable given a valid
// routing slip; seeing it signals a logic bug.
func (uc *implUseCase) solverFor(category model.Category) (solver.Solver, error) {
	switch category {
	case model.CategoryBugs:
		return uc.solvers.Bug, nil
	case model.CategoryQuery:
		return uc.solvers.Query, nil
	case model.CategoryRequest:
		return uc.solvers.FeatureRequest, nil
	case model.CategorySecurity:
		return uc.solvers.Security, nil
	case model.CategoryCorrectness:
		return uc.solvers.Correctness, nil
	case model.CategoryMiscellaneous:
		return uc.solvers.Misc, nil
	default:
		return nil, triage.NewError(triage.StageDispatch, triage.KindDispatch,
			fmt.Errorf("no solver for category %q", category))
	}
}

// failureFrom converts a pipeline error into the serializable failure record.
func failureFrom(err error) *model.Failure {
	if te, ok := triage.AsError(err); ok {
		return &model.Failure{
			Stage: string(te.Stage),
			Kind:  string(te.Kind),
			Error: te.Err.Error(),
		}
	}
	return &model.Failure{
		Stage: string(triage.StageRouting),
		Kind:  string(triage.KindUpstream),
		Error: err.Error(),
	}
}
