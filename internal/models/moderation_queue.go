package models

import "time"

// Moderation queue statuses. pending and pending_review are active; the
// other three are resolutions.
const (
	QueueStatusPending       = "pending"
	QueueStatusPendingReview = "pending_review"
	QueueStatusApproved      = "approved"
	QueueStatusRejected      = "rejected"
	QueueStatusRemoved       = "removed"
)

// ModerationQueueItem aggregates all reports against one entity. Exactly one
// row exists per (entity_type, entity_id); the unique index makes the
// find-or-create race safe.
type ModerationQueueItem struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityType  string     `gorm:"size:50;not null;uniqueIndex:idx_moderation_queue_entity" json:"entity_type"`
	EntityID    uint64     `gorm:"not null;uniqueIndex:idx_moderation_queue_entity" json:"entity_id"`
	ReportCount int        `gorm:"not null;default:0;index" json:"report_count"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	HandledBy   *uint64    `gorm:"index" json:"handled_by,omitempty"`
	HandledAt   *time.Time `json:"handled_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Handler     *User      `gorm:"foreignKey:HandledBy" json:"handler,omitempty"`
}

func (ModerationQueueItem) TableName() string {
	return "moderation_queue"
}
