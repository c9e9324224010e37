package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ticket-triage/config"
	_ "ticket-triage/docs" // Swagger docs
	"ticket-triage/internal/httpserver"
	"ticket-triage/internal/middleware"
	"ticket-triage/internal/model"
	"ticket-triage/internal/router"
	"ticket-triage/internal/solver"
	triageHTTP "ticket-triage/internal/triage/delivery/http"
	"ticket-triage/internal/triage/usecase"
	"ticket-triage/pkg/llmprovider"
	"ticket-triage/pkg/log"
)

// @title       Ticket Triage API
// @description LLM-driven support ticket classification and resolution drafting.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Ticket Triage API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider layer
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}

	var perCallTimeout time.Duration
	if cfg.LLM.PerCallTimeout != "" {
		perCallTimeout, err = time.ParseDuration(cfg.LLM.PerCallTimeout)
		if err != nil {
			logger.Errorf(ctx, "Invalid llm.per_call_timeout %q: %v", cfg.LLM.PerCallTimeout, err)
			return
		}
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		PerCallTimeout: perCallTimeout,
	}, logger)
	logger.Infof(ctx, "Active LLM provider: %s (%s)", manager.Provider().Name(), manager.Provider().Model())

	// 4. Triage pipeline: router + solvers + usecase
	classifier := router.New(manager, logger, router.Config{
		Temperature:     cfg.Triage.RouterTemperature,
		MaxOutputTokens: cfg.Triage.MaxOutputTokens,
	})

	solverCfg := solver.Config{
		Temperature:     cfg.Triage.SolverTemperature,
		MaxOutputTokens: cfg.Triage.MaxOutputTokens,
	}
	triageUC, err := usecase.New(logger, classifier, usecase.Solvers{
		Bug:            solver.NewBugSolver(manager, logger, solverCfg),
		Query:          solver.NewQuerySolver(manager, logger, solverCfg),
		FeatureRequest: solver.NewFeatureRequestSolver(manager, logger, solverCfg),
		Security:       solver.NewSecuritySolver(manager, logger, solverCfg),
		Correctness:    solver.NewCorrectnessSolver(manager, logger, solverCfg),
		Misc:           solver.NewMiscSolver(manager, logger, solverCfg),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize triage usecase: ", err)
		return
	}

	// 5. HTTP server
	mw := middleware.New(logger, cfg.Triage.RateLimitPerMin)
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:        logger,
		Port:          cfg.HTTPServer.Port,
		Mode:          cfg.HTTPServer.Mode,
		Environment:   model.Environment(cfg.Environment.Name),
		Middleware:    mw,
		TriageHandler: triageHTTP.New(logger, triageUC),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
