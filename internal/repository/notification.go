package repository

import (
	"context"

	"gatherly/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository
	Create(ctx context.Context, n *models.Notification) error
	ListFor(ctx context.Context, userID uint) ([]models.Notification, error)
	// MarkRead flips is_read for a notification owned by userID. It reports
	// false when no row matched: either the notification does not exist or
	// it belongs to someone else. Re-reading an already-read notification
	// still matches and succeeds.
	MarkRead(ctx context.Context, id, userID uint) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &notificationRepository{db: tx}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	defer dbMetrics.TrackQuery("insert", "notifications")()
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) ListFor(ctx context.Context, userID uint) ([]models.Notification, error) {
	defer dbMetrics.TrackQuery("select", "notifications")()
	var ns []models.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ns, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	defer dbMetrics.TrackQuery("update", "notifications")()
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
