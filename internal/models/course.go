package models

import "time"

type Course struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string    `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name       string    `gorm:"size:255;not null;index" json:"name"`
	Department string    `gorm:"size:100;index" json:"department,omitempty"`
	Credits    float32   `json:"credits,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CourseOffering is one term's instance of a course.
type CourseOffering struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID   uint64    `gorm:"not null;index" json:"course_id"`
	Term       string    `gorm:"size:50;not null" json:"term"`
	Instructor string    `gorm:"size:255" json:"instructor,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Course     *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// ResourceCourseLink attaches a resource to a course offering.
type ResourceCourseLink struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ResourceID uint64          `gorm:"not null;uniqueIndex:idx_resource_course_link" json:"resource_id"`
	OfferingID uint64          `gorm:"not null;uniqueIndex:idx_resource_course_link" json:"offering_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Offering   *CourseOffering `gorm:"foreignKey:OfferingID" json:"offering,omitempty"`
}

func (ResourceCourseLink) TableName() string {
	return "resource_course_links"
}
