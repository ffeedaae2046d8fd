package repository

import (
	"context"
	"errors"

	"gatherly/internal/models"

	"gorm.io/gorm"
)

// FriendRequestRepository defines persistence operations for friend requests.
type FriendRequestRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *gorm.DB) FriendRequestRepository
	Create(ctx context.Context, req *models.FriendRequest) error
	// GetForReceiver loads a request addressed to receiverID. A request that
	// exists but is addressed to someone else is reported as not found.
	GetForReceiver(ctx context.Context, id, receiverID uint) (*models.FriendRequest, error)
	GetPendingBetween(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error)
	ListIncoming(ctx context.Context, receiverID uint) ([]models.FriendRequest, error)
	// MarkStatus transitions the request from one status to another with a
	// conditional update. It reports false when no row matched, meaning a
	// concurrent actor already moved the request out of the expected status.
	MarkStatus(ctx context.Context, id uint, from, to models.FriendRequestStatus) (bool, error)
}

type friendRequestRepository struct {
	db *gorm.DB
}

// NewFriendRequestRepository returns a new FriendRequestRepository implementation.
func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) WithTx(tx *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: tx}
}

func (r *friendRequestRepository) Create(ctx context.Context, req *models.FriendRequest) error {
	defer dbMetrics.TrackQuery("insert", "friend_requests")()
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRequestRepository) GetForReceiver(ctx context.Context, id, receiverID uint) (*models.FriendRequest, error) {
	defer dbMetrics.TrackQuery("select", "friend_requests")()
	var req models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request")
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *friendRequestRepository) GetPendingBetween(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error) {
	defer dbMetrics.TrackQuery("select", "friend_requests")()
	var req models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND status = ?",
			senderID, receiverID, models.FriendRequestStatusPending).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *friendRequestRepository) ListIncoming(ctx context.Context, receiverID uint) ([]models.FriendRequest, error) {
	defer dbMetrics.TrackQuery("select", "friend_requests")()
	var reqs []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestStatusPending).
		Preload("Sender").
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRequestRepository) MarkStatus(ctx context.Context, id uint, from, to models.FriendRequestStatus) (bool, error) {
	defer dbMetrics.TrackQuery("update", "friend_requests")()
	res := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
