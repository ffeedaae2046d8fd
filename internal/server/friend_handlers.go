package server

import (
	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest creates a pending friend request addressed to :userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	receiverID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.CreateRequest(ctx, userID, receiverID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetIncomingRequests lists pending requests addressed to the current user
func (s *Server) GetIncomingRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	requests, err := s.friendService.ListIncoming(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// AcceptFriendRequest accepts a pending request addressed to the current user
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	requestID, err := parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.Accept(ctx, userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(request)
}

// DeclineFriendRequest declines a pending request addressed to the current user
func (s *Server) DeclineFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	requestID, err := parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.Decline(ctx, userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(request)
}

// GetFriends lists the current user's friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	friends, err := s.friendService.ListFriends(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(friends)
}
