package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/middleware"
	"alfredoptarigan/interview-coach/internal/services"
)

type ResumeHandler struct {
	resumeService services.ResumeService
	maxFileSize   int64
}

func NewResumeHandler(resumeService services.ResumeService, maxFileSize int64) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		maxFileSize:   maxFileSize,
	}
}

func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}

	file, err := readUpload(fileHeader, h.maxFileSize)
	if err != nil {
		return err
	}

	resp, err := h.resumeService.SaveResume(c.UserContext(), middleware.UserID(c), file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
