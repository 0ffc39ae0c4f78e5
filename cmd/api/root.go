package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/llm"
	"alfredoptarigan/interview-coach/internal/logz"
	"alfredoptarigan/interview-coach/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "interview-coach",
	Short: "AI interview coach API",
	Long:  "Generates interview questions from a resume and critiques spoken answers with LLMs.",
	// Without a subcommand the API server starts.
	RunE:         runServe,
	SilenceUsage: true,
}

// loadConfig reads the configuration and installs the global logger.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	logz.Init(cfg.Log.Level, cfg.Server.Name)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newCompleter(ctx context.Context, cfg *config.Config) (llm.Completer, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return llm.NewGeminiClient(ctx, cfg.LLM.GeminiAPIKey)
	default:
		return llm.NewOpenRouterClient(llm.OpenRouterConfig{
			BaseURL: cfg.LLM.OpenRouterBaseURL,
			APIKey:  cfg.LLM.OpenRouterAPIKey,
			AppURL:  cfg.Server.AppURL,
		})
	}
}

// newGateway builds the one LLM gateway shared by every request.
func newGateway(ctx context.Context, cfg *config.Config) (*llm.Gateway, error) {
	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}

	gateway, err := llm.NewGateway(completer,
		llm.WithCandidates(cfg.LLM.Models...),
		llm.WithBackoff(cfg.LLM.Backoff),
		llm.WithAttemptTimeout(cfg.LLM.AttemptTimeout),
		llm.WithLogger(zap.L().Named("llm")),
	)
	if err != nil {
		return nil, err
	}

	zap.L().Info("llm gateway ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.Strings("candidates", gateway.Candidates()),
	)
	return gateway, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (services.StorageService, error) {
	if cfg.Storage.Driver == config.StorageS3 {
		client, err := services.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		zap.L().Info("using s3 storage", zap.String("bucket", cfg.S3.Bucket))
		return services.NewS3Storage(client, cfg.S3.Bucket), nil
	}

	zap.L().Info("using local storage", zap.String("path", cfg.Storage.UploadPath))
	return services.NewLocalStorage(cfg.Storage.UploadPath)
}
