package models

import (
	"time"

	"gorm.io/datatypes"
)

// Content visibility statuses. hidden applies to resources only; the
// moderation orchestrator is the sole writer of deleted and hidden.
const (
	ContentStatusNormal  = "normal"
	ContentStatusBlocked = "blocked"
	ContentStatusDeleted = "deleted"
	ContentStatusHidden  = "hidden"
)

// Resource kinds and visibility scopes.
const (
	ResourceTypeFile = "file"
	ResourceTypeLink = "link"
	ResourceTypeNote = "note"

	ResourceVisibilityPublic  = "public"
	ResourceVisibilityCourse  = "course"
	ResourceVisibilityPrivate = "private"
)

type Resource struct {
	ID          uint64               `gorm:"primaryKey;autoIncrement" json:"id"`
	UploaderID  uint64               `gorm:"not null;index" json:"uploader_id"`
	Title       string               `gorm:"size:255;not null" json:"title"`
	Description string               `gorm:"type:text" json:"description,omitempty"`
	Type        string               `gorm:"size:20;not null" json:"type"`
	URL         string               `gorm:"size:1024" json:"url,omitempty"`
	FileKey     string               `gorm:"size:512" json:"file_key,omitempty"`
	Visibility  string               `gorm:"size:20;not null;default:'public'" json:"visibility"`
	Status      string               `gorm:"size:20;not null;default:'normal';index" json:"status"`
	Tags        datatypes.JSON       `gorm:"type:jsonb;default:'[]'" json:"tags"`
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Uploader    *User                `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	CourseLinks []ResourceCourseLink `gorm:"foreignKey:ResourceID" json:"course_links,omitempty"`
	Stats       *ResourceStat        `gorm:"foreignKey:ResourceID" json:"stats,omitempty"`
}

// ResourceStat is the derived counter row for a resource. Counters never go
// below zero.
type ResourceStat struct {
	ResourceID       uint64     `gorm:"primaryKey" json:"resource_id"`
	ViewCount        int        `gorm:"not null;default:0;index" json:"view_count"`
	DownloadCount    int        `gorm:"not null;default:0;index" json:"download_count"`
	FavoriteCount    int        `gorm:"not null;default:0;index" json:"favorite_count"`
	LikeCount        int        `gorm:"not null;default:0;index" json:"like_count"`
	ReportCount      int        `gorm:"not null;default:0" json:"report_count"`
	LastInteractedAt *time.Time `json:"last_interacted_at,omitempty"`
}

func (ResourceStat) TableName() string {
	return "resource_stats"
}

type ResourceLike struct {
	UserID     uint64    `gorm:"primaryKey" json:"user_id"`
	ResourceID uint64    `gorm:"primaryKey" json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ResourceLike) TableName() string {
	return "resource_likes"
}

type ResourceFavorite struct {
	UserID     uint64    `gorm:"primaryKey" json:"user_id"`
	ResourceID uint64    `gorm:"primaryKey" json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ResourceFavorite) TableName() string {
	return "resource_favorites"
}
