package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/minhtde/lecture-insight/internal/aggregator"
	"github.com/minhtde/lecture-insight/internal/config"
	"github.com/minhtde/lecture-insight/internal/evaluator"
	"github.com/minhtde/lecture-insight/internal/logger"
	"github.com/minhtde/lecture-insight/internal/processor"
	"github.com/minhtde/lecture-insight/internal/rubric"
	"github.com/minhtde/lecture-insight/internal/segmenter"
	"github.com/minhtde/lecture-insight/internal/tokenizer"
	"github.com/minhtde/lecture-insight/internal/watcher"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Lecture Insight Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Max concurrent evaluations: %d", cfg.Analysis.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	proc, err := buildProcessor(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	// One-shot mode: analyze the given file and exit
	if len(os.Args) > 1 && os.Args[1] != "" {
		if err := proc.Process(ctx, os.Args[1]); err != nil {
			log.Error(ctx, "Analysis failed: %v", err)
			os.Exit(1)
		}
		return
	}

	// Watch mode: monitor the input directory until interrupted
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Lecture Insight is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Lecture Insight stopped")
}

func configPath() string {
	if path := os.Getenv("LECTURE_INSIGHT_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// buildProcessor wires the full pipeline from configuration: tokenizer,
// segmenter, retrying Gemini evaluator, aggregator.
func buildProcessor(cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	counter, err := tokenizer.New(cfg.Analysis.TokenizerModel)
	if err != nil {
		return nil, fmt.Errorf("initialize tokenizer: %w", err)
	}

	r, err := loadRubric(cfg)
	if err != nil {
		return nil, fmt.Errorf("load rubric: %w", err)
	}

	seg := segmenter.New(counter, log, cfg.Analysis.BlockDurationMinutes, cfg.Analysis.MaxTokensPerBlock)

	gem := evaluator.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	policy := evaluator.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.Analysis.RetryMaxAttempts
	eval := evaluator.WithRetry(gem, policy, log)

	agg := aggregator.New(r, gem, log)

	return processor.New(cfg, r, seg, eval, agg, log), nil
}

// loadRubric builds the rubric from config when one is declared,
// otherwise falls back to the built-in lecture rubric.
func loadRubric(cfg *config.Config) (rubric.Rubric, error) {
	if len(cfg.Rubric) == 0 {
		return rubric.Default(), nil
	}

	criteria := make([]rubric.Criterion, 0, len(cfg.Rubric))
	for _, c := range cfg.Rubric {
		criteria = append(criteria, rubric.Criterion{
			Key:    c.Key,
			Name:   c.Name,
			Levels: c.Levels,
		})
	}
	return rubric.New(criteria)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
