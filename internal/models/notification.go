package models

import "time"

// Notification kinds emitted by the domain services.
const (
	NotificationKindFriendRequest  = "friend_request"
	NotificationKindFriendAccepted = "friend_accepted"
	NotificationKindMessage        = "message"
)

// Notification is a durable per-user record of a domain event. is_read
// only ever transitions false -> true, and only by the owning user.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Kind      string    `gorm:"type:varchar(40);not null" json:"kind"`
	Payload   string    `gorm:"type:text" json:"payload"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
