package usecase

import (
	"errors"

	"ticket-triage/internal/router"
	"ticket-triage/internal/solver"
	"ticket-triage/pkg/log"
)

// Solvers is the static category-to-solver mapping. One designated
// solver per category; the struct shape makes a missing solver a
// construction-time error rather than a runtime lookup miss.
type Solvers struct {
	Bug            solver.Solver
	Query          solver.Solver
	FeatureRequest solver.Solver
	Security       solver.Solver
	Correctness    solver.Solver
	Misc           solver.Solver
}

func (s Solvers) validate() error {
	if s.Bug == nil || s.Query == nil || s.FeatureRequest == nil ||
		s.Security == nil || s.Correctness == nil || s.Misc == nil {
		return errors.New("every category requires a solver")
	}
	return nil
}

type implUseCase struct {
	l       log.Logger
	router  router.Router
	solvers Solvers
}

// New creates the triage UseCase.
func New(l log.Logger, r router.Router, solvers Solvers) (*implUseCase, error) {
	if err := solvers.validate(); err != nil {
		return nil, err
	}
	return &implUseCase{
		l:       l,
		router:  r,
		solvers: solvers,
	}, nil
}
