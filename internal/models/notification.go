package models

import "time"

// Notification types.
const (
	NotificationTypeSystem       = "system"
	NotificationTypeResource     = "resource"
	NotificationTypeReview       = "review"
	NotificationTypeComment      = "comment"
	NotificationTypeAnnouncement = "announcement"
)

// Notification is an in-app message. Delivery is best-effort; nothing in the
// write path depends on a notification row existing.
type Notification struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"user_id"`
	Type       string    `gorm:"size:20;not null;index" json:"type"`
	Title      string    `gorm:"size:255" json:"title,omitempty"`
	Content    string    `gorm:"type:text" json:"content,omitempty"`
	EntityType string    `gorm:"size:50;index:idx_notifications_entity" json:"entity_type,omitempty"`
	EntityID   uint64    `gorm:"index:idx_notifications_entity" json:"entity_id,omitempty"`
	IsRead     bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
