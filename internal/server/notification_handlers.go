package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications lists the current user's notifications, newest first
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	list, err := s.notificationService.ListFor(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(list)
}

// MarkNotificationRead marks one of the current user's notifications as read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	notificationID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(ctx, userID, notificationID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "read"})
}
