package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"ticket-triage/config"
	"ticket-triage/internal/eval"
	"ticket-triage/internal/model"
	"ticket-triage/internal/router"
	"ticket-triage/internal/solver"
	"ticket-triage/internal/triage"
	"ticket-triage/internal/triage/usecase"
	"ticket-triage/pkg/llmprovider"
	"ticket-triage/pkg/log"
)

// fileTicket is one entry of the input file. Ground-truth labels sit at
// the top level next to the ticket fields; they are folded into metadata
// for evaluation and stripped before the ticket enters the pipeline.
type fileTicket struct {
	ID                  string            `json:"ticket_id"`
	Subject             string            `json:"subject"`
	Message             string            `json:"message"`
	Metadata            map[string]string `json:"metadata,omitempty"`
	GroundTruthCategory string            `json:"ground_truth_category,omitempty"`
	GroundTruthUrgency  string            `json:"ground_truth_urgency,omitempty"`
	GroundTruthTeam     string            `json:"ground_truth_team,omitempty"`
}

// split returns the ticket to process (no ground truth) and the ticket
// to record (ground truth folded into metadata).
func (ft fileTicket) split() (clean, labeled model.Ticket) {
	clean = model.Ticket{ID: ft.ID, Subject: ft.Subject, Message: ft.Message, Metadata: ft.Metadata}

	labeled = clean
	labeled.Metadata = make(map[string]string, len(ft.Metadata)+3)
	for k, v := range ft.Metadata {
		labeled.Metadata[k] = v
	}
	if ft.GroundTruthCategory != "" {
		labeled.Metadata[eval.KeyGroundTruthCategory] = ft.GroundTruthCategory
	}
	if ft.GroundTruthUrgency != "" {
		labeled.Metadata[eval.KeyGroundTruthUrgency] = ft.GroundTruthUrgency
	}
	if ft.GroundTruthTeam != "" {
		labeled.Metadata[eval.KeyGroundTruthTeam] = ft.GroundTruthTeam
	}
	return clean, labeled
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "Batch run failed: ", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	raw, err := os.ReadFile(cfg.Batch.InputFile)
	if err != nil {
		return fmt.Errorf("read input %q: %w", cfg.Batch.InputFile, err)
	}
	var fileTickets []fileTicket
	if err := json.Unmarshal(raw, &fileTickets); err != nil {
		return fmt.Errorf("parse input %q: %w", cfg.Batch.InputFile, err)
	}
	logger.Infof(ctx, "Found %d tickets in %q", len(fileTickets), cfg.Batch.InputFile)

	uc, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	// Pace batches so the provider's per-minute quota is respected; the
	// burst allows one full batch through at a time.
	var limiter *rate.Limiter
	if cfg.Batch.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Batch.RequestsPerMinute)/60, cfg.Batch.BatchSize)
	}

	batches := createBatches(fileTickets, cfg.Batch.BatchSize)
	records := make([]model.Record, 0, len(fileTickets))

	for i, batch := range batches {
		logger.Infof(ctx, "Processing batch %d of %d (%d tickets)", i+1, len(batches), len(batch))

		if limiter != nil {
			if err := limiter.WaitN(ctx, len(batch)); err != nil {
				return fmt.Errorf("wait for batch %d: %w", i+1, err)
			}
		}

		clean := make([]model.Ticket, len(batch))
		labeled := make([]model.Ticket, len(batch))
		for j, ft := range batch {
			clean[j], labeled[j] = ft.split()
		}

		batchRecords := uc.ProcessBatch(ctx, clean)
		for j := range batchRecords {
			// Records keep the labeled ticket so evaluation can read
			// the ground truth the pipeline never saw.
			batchRecords[j].Ticket = labeled[j]
		}
		records = append(records, batchRecords...)
	}

	if err := writeJSON(cfg.Batch.OutputFile, records); err != nil {
		return err
	}
	logger.Infof(ctx, "Processing complete. Results saved to %q", cfg.Batch.OutputFile)

	metrics := eval.CalculateMetrics(records)
	if err := writeJSON(cfg.Batch.EvaluationFile, metrics); err != nil {
		return err
	}
	logger.Infof(ctx, "Routing accuracy: %s", metrics.Router.RoutingAccuracy)
	logger.Infof(ctx, "Urgency accuracy: %s", metrics.Router.UrgencyAccuracy)
	logger.Infof(ctx, "Team assignment accuracy: %s", metrics.Solver.TeamAssignmentAccuracy)
	logger.Infof(ctx, "Solver success rate: %.2f%%", metrics.Solver.SuccessRatePercent)
	logger.Infof(ctx, "Evaluation metrics saved to %q", cfg.Batch.EvaluationFile)
	return nil
}

func buildPipeline(cfg *config.Config, logger log.Logger) (triage.UseCase, error) {
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initialize providers: %w", err)
	}

	var perCallTimeout time.Duration
	if cfg.LLM.PerCallTimeout != "" {
		perCallTimeout, err = time.ParseDuration(cfg.LLM.PerCallTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid llm.per_call_timeout %q: %w", cfg.LLM.PerCallTimeout, err)
		}
	}
	manager := llmprovider.NewManager(providers, &llmprovider.Config{PerCallTimeout: perCallTimeout}, logger)

	classifier := router.New(manager, logger, router.Config{
		Temperature:     cfg.Triage.RouterTemperature,
		MaxOutputTokens: cfg.Triage.MaxOutputTokens,
	})
	solverCfg := solver.Config{
		Temperature:     cfg.Triage.SolverTemperature,
		MaxOutputTokens: cfg.Triage.MaxOutputTokens,
	}
	return usecase.New(logger, classifier, usecase.Solvers{
		Bug:            solver.NewBugSolver(manager, logger, solverCfg),
		Query:          solver.NewQuerySolver(manager, logger, solverCfg),
		FeatureRequest: solver.NewFeatureRequestSolver(manager, logger, solverCfg),
		Security:       solver.NewSecuritySolver(manager, logger, solverCfg),
		Correctness:    solver.NewCorrectnessSolver(manager, logger, solverCfg),
		Misc:           solver.NewMiscSolver(manager, logger, solverCfg),
	})
}

func createBatches(tickets []fileTicket, size int) [][]fileTicket {
	if size <= 0 {
		size = 1
	}
	var batches [][]fileTicket
	for i := 0; i < len(tickets); i += size {
		end := i + size
		if end > len(tickets) {
			end = len(tickets)
		}
		batches = append(batches, tickets[i:end])
	}
	return batches
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
