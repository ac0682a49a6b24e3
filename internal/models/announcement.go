package models

import "time"

// Announcement statuses, derived from the schedule window.
const (
	AnnouncementStatusScheduled = "scheduled"
	AnnouncementStatusActive    = "active"
	AnnouncementStatusEnded     = "ended"
)

type Announcement struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Priority  int        `gorm:"not null;default:0;index" json:"priority"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Status    string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedBy uint64     `gorm:"index" json:"created_by"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserAnnouncementRead marks an announcement as seen by a user.
type UserAnnouncementRead struct {
	UserID         uint64    `gorm:"primaryKey" json:"user_id"`
	AnnouncementID uint64    `gorm:"primaryKey" json:"announcement_id"`
	ReadAt         time.Time `json:"read_at"`
}

func (UserAnnouncementRead) TableName() string {
	return "user_announcement_reads"
}
