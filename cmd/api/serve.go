package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/handlers"
	"alfredoptarigan/interview-coach/internal/logz"
	"alfredoptarigan/interview-coach/internal/middleware"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
	"alfredoptarigan/interview-coach/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logz.Drop()
	logger := zap.L()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	gateway, err := newGateway(ctx, cfg)
	if err != nil {
		return err
	}
	coach := services.NewCoachService(gateway)

	h := &handlers.Handlers{
		User: handlers.NewUserHandler(services.NewUserService(userRepo)),
		Resume: handlers.NewResumeHandler(
			services.NewResumeService(resumeRepo, storage, services.NewPDFParserService(), cfg.Storage.MaxFileSize),
			cfg.Storage.MaxFileSize,
		),
		Interview: handlers.NewInterviewHandler(
			services.NewInterviewService(interviewRepo, resumeRepo, coach, storage),
			cfg.Storage.MaxFileSize,
		),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(interviewRepo)),
	}

	// Each LLM call may walk every candidate, so the write timeout covers the worst case.
	llmBudget := time.Duration(len(cfg.LLM.Models)) * (cfg.LLM.AttemptTimeout + cfg.LLM.Backoff)

	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Coach API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30*time.Second + llmBudget,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.OTelFiberMiddleware(cfg.Server.Name))
	app.Use(middleware.AuditLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.UserIDHeader,
	}))

	handlers.SetupRoutes(app, h)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
