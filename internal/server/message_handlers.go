package server

import (
	"gatherly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessage sends a direct message to :userId
func (s *Server) SendMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	receiverID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	var body struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Send(ctx, userID, receiverID, body.Body)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetThread returns the full conversation between the current user and :userId,
// oldest first
func (s *Server) GetThread(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	counterpartID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.Thread(ctx, userID, counterpartID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(messages)
}
