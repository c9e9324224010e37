package router

import (
	"context"

	"ticket-triage/internal/model"
	"ticket-triage/internal/triage"
	"ticket-triage/pkg/log"
)

// Router is the interface for ticket classification.
type Router interface {
	Classify(ctx context.Context, t model.Ticket) (model.RoutingSlip, error)
}

// Config holds classifier tuning.
type Config struct {
	Temperature     float64
	MaxOutputTokens int
}

// Classifier routes tickets by issuing one LLM classification call per
// ticket. No retries, no caching: each call is independent.
type Classifier struct {
	llm triage.Generator
	l   log.Logger
	cfg Config
}

var _ Router = (*Classifier)(nil)

// New creates a new Classifier.
func New(llm triage.Generator, l log.Logger, cfg Config) *Classifier {
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return &Classifier{
		llm: llm,
		l:   l,
		cfg: cfg,
	}
}
