package models

import "time"

// ResourceComment is a comment thread entry under a resource.
type ResourceComment struct {
	ID         uint64               `gorm:"primaryKey;autoIncrement" json:"id"`
	ResourceID uint64               `gorm:"not null;index" json:"resource_id"`
	UserID     uint64               `gorm:"not null;index" json:"user_id"`
	Content    string               `gorm:"type:text;not null" json:"content"`
	Status     string               `gorm:"size:20;not null;default:'normal';index" json:"status"`
	CreatedAt  time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
	User       *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Resource   *Resource            `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	Stats      *ResourceCommentStat `gorm:"foreignKey:CommentID" json:"stats,omitempty"`
}

func (ResourceComment) TableName() string {
	return "resource_comments"
}

// ReviewComment is a reply under a course review.
type ReviewComment struct {
	ID        uint64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ReviewID  uint64             `gorm:"not null;index" json:"review_id"`
	UserID    uint64             `gorm:"not null;index" json:"user_id"`
	Content   string             `gorm:"type:text;not null" json:"content"`
	Status    string             `gorm:"size:20;not null;default:'normal';index" json:"status"`
	CreatedAt time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	User      *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Review    *CourseReview      `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
	Stats     *ReviewCommentStat `gorm:"foreignKey:CommentID" json:"stats,omitempty"`
}

func (ReviewComment) TableName() string {
	return "review_comments"
}

type ResourceCommentStat struct {
	CommentID     uint64     `gorm:"primaryKey" json:"comment_id"`
	LikeCount     int        `gorm:"not null;default:0;index" json:"like_count"`
	DislikeCount  int        `gorm:"not null;default:0;index" json:"dislike_count"`
	NetScore      int        `gorm:"not null;default:0;index" json:"net_score"`
	LastReactedAt *time.Time `json:"last_reacted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ResourceCommentStat) TableName() string {
	return "resource_comment_stats"
}

type ReviewCommentStat struct {
	CommentID     uint64     `gorm:"primaryKey" json:"comment_id"`
	LikeCount     int        `gorm:"not null;default:0;index" json:"like_count"`
	DislikeCount  int        `gorm:"not null;default:0;index" json:"dislike_count"`
	NetScore      int        `gorm:"not null;default:0;index" json:"net_score"`
	LastReactedAt *time.Time `json:"last_reacted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ReviewCommentStat) TableName() string {
	return "review_comment_stats"
}

type ResourceCommentReaction struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	CommentID uint64    `gorm:"primaryKey" json:"comment_id"`
	Reaction  string    `gorm:"size:10;not null;index" json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ResourceCommentReaction) TableName() string {
	return "resource_comment_reactions"
}

type ReviewCommentReaction struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	CommentID uint64    `gorm:"primaryKey" json:"comment_id"`
	Reaction  string    `gorm:"size:10;not null;index" json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReviewCommentReaction) TableName() string {
	return "review_comment_reactions"
}
