package repository

import (
	"context"

	"gatherly/internal/models"

	"gorm.io/gorm"
)

// FriendshipRepository defines persistence operations for friendships.
// A friendship is stored as two rows, one per direction; both are written
// in the same transaction so the relation is never observable half-built.
type FriendshipRepository interface {
	WithTx(tx *gorm.DB) FriendshipRepository
	Exists(ctx context.Context, userID, friendID uint) (bool, error)
	// CreatePair inserts both direction rows. A unique violation on either
	// row means the pair already exists and is reported as a conflict.
	CreatePair(ctx context.Context, userID, friendID uint) error
	ListFriendsOf(ctx context.Context, userID uint) ([]models.User, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository returns a new FriendshipRepository implementation.
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) WithTx(tx *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: tx}
}

func (r *friendshipRepository) Exists(ctx context.Context, userID, friendID uint) (bool, error) {
	defer dbMetrics.TrackQuery("select", "friendships")()
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendshipRepository) CreatePair(ctx context.Context, userID, friendID uint) error {
	defer dbMetrics.TrackQuery("insert", "friendships")()
	rows := []models.Friendship{
		{UserID: userID, FriendID: friendID},
		{UserID: friendID, FriendID: userID},
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		if models.IsUniqueViolation(err) {
			return models.NewConflictError("Users are already friends")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendshipRepository) ListFriendsOf(ctx context.Context, userID uint) ([]models.User, error) {
	defer dbMetrics.TrackQuery("select", "friendships")()
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON users.id = f.friend_id").
		Where("f.user_id = ?", userID).
		Order("f.id ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
