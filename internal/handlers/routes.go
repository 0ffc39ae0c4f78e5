package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/middleware"
)

type Handlers struct {
	User      *UserHandler
	Resume    *ResumeHandler
	Interview *InterviewHandler
	Dashboard *DashboardHandler
}

func SetupRoutes(app *fiber.App, h *Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := middleware.Identity()
	api.Post("/users/sync", auth, h.User.HandleSync)
	api.Post("/resumes", auth, h.Resume.HandleUpload)
	api.Post("/interviews", auth, h.Interview.HandleStart)
	api.Get("/interviews/:id", auth, h.Interview.HandleGet)
	api.Post("/interviews/:id/answers", auth, h.Interview.HandleSubmitAnswer)
	api.Post("/interviews/:id/finalize", auth, h.Interview.HandleFinalize)
	api.Get("/dashboard", auth, h.Dashboard.HandleGet)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Coach API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/users/sync",
				"POST /api/v1/resumes",
				"POST /api/v1/interviews",
				"GET /api/v1/interviews/:id",
				"POST /api/v1/interviews/:id/answers",
				"POST /api/v1/interviews/:id/finalize",
				"GET /api/v1/dashboard",
			},
		})
	})
}
