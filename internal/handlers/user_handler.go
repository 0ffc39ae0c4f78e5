package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/middleware"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// HandleSync stores the profile the identity provider handed to the client.
func (h *UserHandler) HandleSync(c *fiber.Ctx) error {
	var req models.SyncUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	user, err := h.userService.SyncUser(c.UserContext(), services.Identity{
		ExternalID: middleware.UserID(c),
		Email:      req.Email,
		Name:       req.Name,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(user)
}
