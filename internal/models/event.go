package models

import "time"

// Event is an entry in the event catalog. Only public events are exposed
// through discovery.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	IsPublic    bool      `gorm:"default:false;index" json:"is_public"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// WishlistEvent marks an event a user wants to attend.
type WishlistEvent struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;index" json:"user_id"`
	EventID uint      `gorm:"not null" json:"event_id"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`

	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// TableName specifies the table name for GORM
func (WishlistEvent) TableName() string {
	return "wishlist_events"
}

// AttendedEvent records that a user attended an event.
type AttendedEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	EventID    uint      `gorm:"not null" json:"event_id"`
	AttendedAt time.Time `gorm:"autoCreateTime" json:"attended_at"`

	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// TableName specifies the table name for GORM
func (AttendedEvent) TableName() string {
	return "attended_events"
}
