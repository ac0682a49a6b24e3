package models

import "time"

// Report reasons.
const (
	ReportReasonPlagiarism = "plagiarism"
	ReportReasonAbuse      = "abuse"
	ReportReasonSpam       = "spam"
	ReportReasonOther      = "other"
)

// Report statuses. A report is never re-opened once handled.
const (
	ReportStatusPending = "pending"
	ReportStatusHandled = "handled"
)

// Report is one user's complaint against a piece of content. At most one
// pending report may exist per (reporter, entity_type, entity_id).
type Report struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterID uint64    `gorm:"not null;index" json:"reporter_id"`
	EntityType string    `gorm:"size:50;not null;index:idx_reports_entity" json:"entity_type"`
	EntityID   uint64    `gorm:"not null;index:idx_reports_entity" json:"entity_id"`
	Reason     string    `gorm:"size:20;not null;index" json:"reason"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	Status     string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	Reporter   *User     `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}
