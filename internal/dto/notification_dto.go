package dto

import "time"

type CreateNotificationRequest struct {
	UserID     uint64   `json:"user_id"`
	UserIDs    []uint64 `json:"user_ids"`
	Type       string   `json:"type"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	EntityType string   `json:"entity_type,omitempty"`
	EntityID   uint64   `json:"entity_id,omitempty"`
}

type AnnouncementRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Priority int        `json:"priority"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}
