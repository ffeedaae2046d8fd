package models

import "time"

// FriendRequestStatus represents the lifecycle state of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestStatusPending indicates a request awaiting a decision.
	FriendRequestStatusPending FriendRequestStatus = "pending"
	// FriendRequestStatusAccepted indicates an accepted request.
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	// FriendRequestStatusDeclined indicates a declined request.
	FriendRequestStatusDeclined FriendRequestStatus = "declined"
)

// FriendRequest is a one-directional proposal from a sender to a receiver.
// Accepted and declined are terminal states; rows are kept as an audit
// trail and never deleted.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	SenderID   uint                `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint                `gorm:"not null;index" json:"receiver_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	// Relationships
	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}
