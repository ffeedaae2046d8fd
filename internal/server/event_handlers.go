package server

import (
	"gatherly/internal/models"

	"github.com/gofiber/fiber/v2"
)

func parseEventBody(c *fiber.Ctx) (uint, bool) {
	var body struct {
		EventID uint `json:"event_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.EventID == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid event ID"))
		return 0, false
	}
	return body.EventID, true
}

// AddToWishlist adds an event to the current user's wishlist
func (s *Server) AddToWishlist(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	eventID, ok := parseEventBody(c)
	if !ok {
		return nil
	}

	if err := s.eventService.AddToWishlist(ctx, userID, eventID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "wishlisted"})
}

// GetWishlist returns the current user's wishlisted events
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	list, err := s.eventService.Wishlist(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(list)
}

// MarkAttended records that the current user attended an event
func (s *Server) MarkAttended(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	eventID, ok := parseEventBody(c)
	if !ok {
		return nil
	}

	if err := s.eventService.MarkAttended(ctx, userID, eventID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "attended"})
}

// GetAttended returns the events the current user has attended
func (s *Server) GetAttended(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	list, err := s.eventService.Attended(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(list)
}

// DiscoverEvents suggests public events the user has not wishlisted or attended.
// Anonymous callers get the public catalog.
func (s *Server) DiscoverEvents(c *fiber.Ctx) error {
	ctx := c.Context()

	var userID uint
	if uid, ok := c.Locals("userID").(uint); ok {
		userID = uid
	}

	list, err := s.eventService.Discover(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(list)
}
