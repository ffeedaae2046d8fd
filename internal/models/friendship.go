package models

import "time"

// Friendship is one directed edge of a confirmed friendship. A confirmed
// friendship is always two rows, (A,B) and (B,A), created in the same
// transaction when a friend request is accepted. The composite unique
// index rejects duplicate edges regardless of which caller wins a race.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Friend User `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}
