package repository

import (
	"context"
	"errors"

	"gatherly/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines persistence operations for the event catalog,
// wishlists, and attendance records.
type EventRepository interface {
	CreateEvent(ctx context.Context, ev *models.Event) error
	GetEventByID(ctx context.Context, id uint) (*models.Event, error)
	AddToWishlist(ctx context.Context, userID, eventID uint) error
	ListWishlist(ctx context.Context, userID uint) ([]models.WishlistEvent, error)
	MarkAttended(ctx context.Context, userID, eventID uint) error
	ListAttended(ctx context.Context, userID uint) ([]models.AttendedEvent, error)
	// Discover returns public events the user has neither wishlisted nor
	// attended, newest first, capped at limit.
	Discover(ctx context.Context, userID uint, limit int) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(ctx context.Context, ev *models.Event) error {
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	var ev models.Event
	if err := r.db.WithContext(ctx).First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event")
		}
		return nil, models.NewInternalError(err)
	}
	return &ev, nil
}

func (r *eventRepository) AddToWishlist(ctx context.Context, userID, eventID uint) error {
	var existing models.WishlistEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&existing).Error
	if err == nil {
		return nil // already wishlisted, nothing to do
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	}

	entry := models.WishlistEvent{UserID: userID, EventID: eventID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) ListWishlist(ctx context.Context, userID uint) ([]models.WishlistEvent, error) {
	var entries []models.WishlistEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Event").
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *eventRepository) MarkAttended(ctx context.Context, userID, eventID uint) error {
	var existing models.AttendedEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	}

	entry := models.AttendedEvent{UserID: userID, EventID: eventID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) ListAttended(ctx context.Context, userID uint) ([]models.AttendedEvent, error) {
	var entries []models.AttendedEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Event").
		Order("attended_at DESC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *eventRepository) Discover(ctx context.Context, userID uint, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Where("id NOT IN (?)", r.db.Model(&models.WishlistEvent{}).Select("event_id").Where("user_id = ?", userID)).
		Where("id NOT IN (?)", r.db.Model(&models.AttendedEvent{}).Select("event_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}
