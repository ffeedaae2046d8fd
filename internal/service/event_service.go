package service

import (
	"context"

	"gatherly/internal/models"
	"gatherly/internal/repository"
)

// EventService provides event catalog, wishlist, and attendance logic.
type EventService struct {
	eventRepo repository.EventRepository
}

// NewEventService returns a new EventService.
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// AddToWishlist records interest in an event. Adding twice is a no-op.
func (s *EventService) AddToWishlist(ctx context.Context, userID, eventID uint) error {
	if _, err := s.eventRepo.GetEventByID(ctx, eventID); err != nil {
		return err
	}
	return s.eventRepo.AddToWishlist(ctx, userID, eventID)
}

// Wishlist returns the user's wishlisted events, newest first.
func (s *EventService) Wishlist(ctx context.Context, userID uint) ([]models.WishlistEvent, error) {
	return s.eventRepo.ListWishlist(ctx, userID)
}

// MarkAttended records that the user attended an event.
func (s *EventService) MarkAttended(ctx context.Context, userID, eventID uint) error {
	if _, err := s.eventRepo.GetEventByID(ctx, eventID); err != nil {
		return err
	}
	return s.eventRepo.MarkAttended(ctx, userID, eventID)
}

// Attended returns the user's attended events, newest first.
func (s *EventService) Attended(ctx context.Context, userID uint) ([]models.AttendedEvent, error) {
	return s.eventRepo.ListAttended(ctx, userID)
}

// Discover suggests public events the user has not interacted with yet.
func (s *EventService) Discover(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.eventRepo.Discover(ctx, userID, 10)
}
