package main

import (
	"context"
	"fmt"
	"os"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-reporter/internal/config"
	"github.com/garyjia/invoice-reporter/internal/extraction"
	"github.com/garyjia/invoice-reporter/internal/processing"
	"github.com/garyjia/invoice-reporter/internal/report"
	"github.com/garyjia/invoice-reporter/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "invoice-reporter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Credentials may live in a local .env file.
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting invoice report generation",
		zap.String("invoices_dir", cfg.Report.InvoicesDir),
		zap.String("output_path", cfg.Report.OutputPath),
		zap.String("company", cfg.Company.Name))

	rasterizer := extraction.NewFitzRasterizer(logger)
	extractor := extraction.NewVisionExtractor(extraction.VisionExtractorConfig{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		CompanyName: cfg.Company.Name,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
	}, logger)
	orchestrator := extraction.NewOrchestrator(
		rasterizer, extractor,
		cfg.OpenAI.MaxConcurrent, cfg.OpenAI.Timeout,
		logger)

	validator, err := processing.NewValidator(logger)
	if err != nil {
		return err
	}

	results, err := orchestrator.ExtractDirectory(context.Background(), cfg.Report.InvoicesDir)
	if err != nil {
		return err
	}

	dataset, rejections := validator.BuildDataset(results)
	total, monthly := report.Summarize(dataset)

	renderer := report.NewExcelRenderer(logger)
	if err := renderer.Render(dataset, total, monthly, cfg.Report.OutputPath); err != nil {
		return err
	}

	logger.Info("Report generated",
		zap.Int("documents", len(results)),
		zap.Int("accepted", len(dataset.Rows)),
		zap.Int("rejected", len(rejections)),
		zap.String("period", total.Period))

	return nil
}
