package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/middleware"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	maxFileSize      int64
}

func NewInterviewHandler(interviewService services.InterviewService, maxFileSize int64) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		maxFileSize:      maxFileSize,
	}
}

func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	resumeID, err := uuid.Parse(strings.TrimSpace(req.ResumeID))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid resume ID format")
	}

	resp, err := h.interviewService.StartInterview(c.UserContext(), middleware.UserID(c), resumeID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	interviewID, err := interviewIDParam(c)
	if err != nil {
		return err
	}

	interview, err := h.interviewService.GetInterview(c.UserContext(), middleware.UserID(c), interviewID)
	if err != nil {
		return err
	}

	return c.JSON(interview)
}

func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	interviewID, err := interviewIDParam(c)
	if err != nil {
		return err
	}

	questionIndex, err := strconv.Atoi(strings.TrimSpace(c.FormValue("question_index")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Bad payload: question_index must be an integer")
	}

	input := services.SubmitAnswerInput{
		InterviewID:   interviewID,
		QuestionIndex: questionIndex,
		Transcript:    c.FormValue("transcript"),
	}

	if audioHeader, err := c.FormFile("audio"); err == nil {
		audio, err := readUpload(audioHeader, h.maxFileSize)
		if err != nil {
			return err
		}
		input.Audio = audio
	}

	answer, err := h.interviewService.SubmitAnswer(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.AnswerResponse{
		ID:         answer.ID.String(),
		Transcript: answer.Transcript,
		AIFeedback: answer.AIFeedback,
	})
}

func (h *InterviewHandler) HandleFinalize(c *fiber.Ctx) error {
	interviewID, err := interviewIDParam(c)
	if err != nil {
		return err
	}

	feedback, err := h.interviewService.FinalizeInterview(c.UserContext(), middleware.UserID(c), interviewID)
	if err != nil {
		return err
	}

	return c.JSON(feedback)
}

func interviewIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid interview ID format")
	}
	return id, nil
}
