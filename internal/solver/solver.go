package solver

import (
	"context"
	"encoding/json"
	"fmt"

	"ticket-triage/internal/model"
	"ticket-triage/internal/triage"
	"ticket-triage/pkg/llmprovider"
	"ticket-triage/pkg/log"
)

// Config holds generation tuning shared by all solvers.
type Config struct {
	Temperature     float64
	MaxOutputTokens int
}

func (c Config) withDefaults() Config {
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return c
}

// llmSolver is the shared implementation behind every category solver:
// one generation call, then decode and validate against the expected
// payload shape. Invalid shape is a generation error, surfaced to the
// caller, never swallowed.
type llmSolver struct {
	llm      triage.Generator
	l        log.Logger
	name     string
	category model.Category
	system   string
	cfg      Config
	decode   func(data []byte) (model.SolverPayload, error)
}

var _ Solver = (*llmSolver)(nil)

func (s *llmSolver) Name() string             { return s.name }
func (s *llmSolver) Category() model.Category { return s.category }

func (s *llmSolver) Solve(ctx context.Context, t model.Ticket, summary string) (model.SolverPayload, error) {
	s.l.Infof(ctx, "internal.solver.%s: generating payload for ticket %s", s.name, t.ID)

	prompt := fmt.Sprintf("TICKET:\n%s\nROUTER SUMMARY: %s\n\nBased on the ticket and summary, generate the JSON object described in your system instructions.",
		triage.RenderTicketContext(t.ID, t.Subject, t.Message, t.Metadata), summary)

	resp, err := s.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: s.system,
		Messages: []llmprovider.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxOutputTokens,
	})
	if err != nil {
		return nil, triage.NewError(triage.StageGeneration, triage.UpstreamKind(err), err)
	}

	cleaned := triage.ExtractJSON(resp.Text)

	payload, err := s.decode([]byte(cleaned))
	if err != nil {
		s.l.Errorf(ctx, "internal.solver.%s: undecodable model response for ticket %s: %q", s.name, t.ID, resp.Text)
		return nil, triage.NewError(triage.StageGeneration, triage.KindGeneration,
			fmt.Errorf("failed to decode %s payload: %w", s.name, err))
	}

	if err := payload.Validate(); err != nil {
		s.l.Errorf(ctx, "internal.solver.%s: invalid payload for ticket %s: %v", s.name, t.ID, err)
		return nil, triage.NewError(triage.StageGeneration, triage.KindGeneration,
			fmt.Errorf("invalid %s payload: %w", s.name, err))
	}

	s.l.Infof(ctx, "internal.solver.%s: payload generated for ticket %s, team=%s", s.name, t.ID, payload.Team())
	return payload, nil
}

// decodeInto decodes raw JSON into a concrete payload type.
func decodeInto[P model.SolverPayload](data []byte) (model.SolverPayload, error) {
	var p P
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// NewBugSolver handles BUGS tickets.
func NewBugSolver(llm triage.Generator, l log.Logger, cfg Config) Solver {
	return &llmSolver{
		llm: llm, l: l,
		name:     NameBugSolver,
		category: model.CategoryBugs,
		system:   promptBugSystem,
		cfg:      cfg.withDefaults(),
		decode:   decodeInto[model.BugReport],
	}
}

// NewQuerySolver handles QUERY tickets.
func NewQuerySolver(llm triage.Generator, l log.Logger, cfg Config) Solver {
	return &llmSolver{
		llm: llm, l: l,
		name:     NameQuerySolver,
		category: model.CategoryQuery,
		system:   promptQuerySystem,
		cfg:      cfg.withDefaults(),
		decode:   decodeInto[model.DraftResponse],
	}
}

// NewFeatureRequestSolver handles REQUEST tickets.
func NewFeatureRequestSolver(llm triage.Generator, l log.Logger, cfg Config) Solver {
	return &llmSolver{
		llm: llm, l: l,
		name:     NameFeatureRequestSolver,
		category: model.CategoryRequest,
		system:   promptRequestSystem,
		cfg:      cfg.withDefaults(),
		decode:   decodeInto[model.FeatureRequestReport],
	}
}

// NewSecuritySolver handles SECURITY tickets.
func NewSecuritySolver(llm triage.Generator, l log.Logger, cfg Config) Solver {
	return &llmSolver{
		llm: llm, l: l,
		name:     NameSecuritySolver,
		category: model.CategorySecurity,
		system:   promptSecuritySystem,
		cfg:      cfg.withDefaults(),
		decode:   decodeInto[model.SecurityAlert],
	}
}

// NewCorrectnessSolver handles CORRECTNESS tickets.
func NewCorrectnessSolver(llm triage.Generator, l log.Logger, cfg Config) Solver {
	return &llmSolver{
		llm: llm, l: l,
		name:     NameCorrectnessSolver,
		category: model.CategoryCorrectness,
		system:   promptCorrectnessSystem,
		cfg:      cfg.withDefaults(),
		decode:   decodeInto[model.CorrectnessReview],
	}
}

// NewMiscSolver handles MISCELLANEOUS tickets.
func NewMiscSolver(llm triage.Generator, l log.Logger, cfg Config) Solver {
	return &llmSolver{
		llm: llm, l: l,
		name:     NameMiscSolver,
		category: model.CategoryMiscellaneous,
		system:   promptMiscSystem,
		cfg:      cfg.withDefaults(),
		decode:   decodeInto[model.GeneralTriage],
	}
}
