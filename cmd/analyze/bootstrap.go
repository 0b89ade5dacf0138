package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"stock-sentiment-analyzer/internal/indicators"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/metrics"
	"stock-sentiment-analyzer/internal/pipeline"
	"stock-sentiment-analyzer/internal/pipeline/pipelineobs"
	"stock-sentiment-analyzer/internal/render"
	"stock-sentiment-analyzer/internal/store"
	"stock-sentiment-analyzer/internal/trace"
)

// initializeSystem loads .env, then starts the logger and tracer.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func shutdownSystem(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := trace.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush traces: %v\n", err)
	}
	_ = logger.Sync()
}

func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", configPath)
		return nil, err
	}
	return cfg, nil
}

// buildOrchestrator wires the engines from cfg. A nil workbook renders nothing.
func buildOrchestrator(cfg *store.Config, wb *render.Workbook) (interfaces.Orchestrator, error) {
	ind, err := indicators.New(cfg.IndicatorParams())
	if err != nil {
		return nil, err
	}
	backend, err := metrics.BackendByName(cfg.Metrics.Backend)
	if err != nil {
		return nil, err
	}
	risk := metrics.New(
		metrics.WithBackend(backend),
		metrics.WithRiskFreeRate(cfg.Metrics.RiskFreeRate),
		metrics.WithPriceColumn(cfg.Metrics.PriceColumn),
	)

	var renderer interfaces.Renderer = render.Noop{}
	if wb != nil {
		renderer = wb
	}
	orch := pipeline.New(
		pipeline.WithIndicators(ind),
		pipeline.WithRiskEngine(risk),
		pipeline.WithRenderer(renderer),
		pipeline.WithPriceColumn(cfg.Metrics.PriceColumn),
		pipeline.WithTextField(cfg.Sentiment.TextField),
	)
	return pipelineobs.Wrap(orch), nil
}

func newWorkbook(cfg *store.Config) *render.Workbook {
	if cfg.Output.Workbook == "" {
		return nil
	}
	return render.NewWorkbook()
}

func saveWorkbook(ctx context.Context, cfg *store.Config, wb *render.Workbook) error {
	if wb == nil {
		return nil
	}
	defer wb.Close()
	if wb.Empty() {
		logger.Warn(ctx, "Nothing rendered; workbook not written")
		return nil
	}
	path := filepath.Join(cfg.Output.Dir, cfg.Output.Workbook)
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	if err := wb.Save(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	logger.Info(ctx, "Workbook written", "path", path)
	return nil
}
