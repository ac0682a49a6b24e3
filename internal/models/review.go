package models

import "time"

// Reaction kinds shared by reviews and both comment types.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// CourseReview is a user's review of a course offering. Rating is on a
// 1-10 scale.
type CourseReview struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID   uint64          `gorm:"not null;index" json:"author_id"`
	CourseID   uint64          `gorm:"not null;index" json:"course_id"`
	OfferingID *uint64         `gorm:"index" json:"offering_id,omitempty"`
	Rating     int             `gorm:"not null" json:"rating"`
	Content    string          `gorm:"type:text;not null" json:"content"`
	Status     string          `gorm:"size:20;not null;default:'normal';index" json:"status"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Author     *User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Course     *Course         `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Offering   *CourseOffering `gorm:"foreignKey:OfferingID" json:"offering,omitempty"`
	Stats      *ReviewStat     `gorm:"foreignKey:ReviewID" json:"stats,omitempty"`
}

func (CourseReview) TableName() string {
	return "course_reviews"
}

type ReviewStat struct {
	ReviewID      uint64     `gorm:"primaryKey" json:"review_id"`
	LikeCount     int        `gorm:"not null;default:0;index" json:"like_count"`
	DislikeCount  int        `gorm:"not null;default:0;index" json:"dislike_count"`
	NetScore      int        `gorm:"not null;default:0;index" json:"net_score"`
	LastReactedAt *time.Time `json:"last_reacted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ReviewStat) TableName() string {
	return "review_stats"
}

type ReviewReaction struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	ReviewID  uint64    `gorm:"primaryKey" json:"review_id"`
	Reaction  string    `gorm:"size:10;not null;index" json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReviewReaction) TableName() string {
	return "review_reactions"
}
