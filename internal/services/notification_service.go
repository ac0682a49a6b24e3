package services

import (
	"errors"
	"log/slog"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/metrics"
	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationInput is one message for the in-app sink.
type NotificationInput struct {
	UserID  uint64
	Type    string
	Title   string
	Content string
	Ref     *entity.Ref
}

// Notifier is the dispatch port the moderation flow talks to. Delivery is
// fire-and-forget: implementations log failures and never return them, so a
// dropped notification cannot fail the action that triggered it.
type Notifier interface {
	Notify(n NotificationInput)
	NotifyAll(ns []NotificationInput)
}

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(n NotificationInput) {
	if n.UserID == 0 || n.Type == "" {
		slog.Warn("notification skipped: missing user or type", "user_id", n.UserID, "type", n.Type)
		return
	}
	row := toNotificationRow(n)
	if err := s.db.Create(&row).Error; err != nil {
		slog.Error("notification create failed", "error", err, "user_id", n.UserID, "type", n.Type)
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.NotificationsTotal.WithLabelValues("ok").Inc()
}

func (s *NotificationService) NotifyAll(ns []NotificationInput) {
	rows := make([]models.Notification, 0, len(ns))
	for _, n := range ns {
		if n.UserID == 0 || n.Type == "" {
			continue
		}
		rows = append(rows, toNotificationRow(n))
	}
	if len(rows) == 0 {
		return
	}
	if err := s.db.Create(&rows).Error; err != nil {
		slog.Error("notification batch create failed", "error", err, "count", len(rows))
		metrics.NotificationsTotal.WithLabelValues("error").Add(float64(len(rows)))
		return
	}
	metrics.NotificationsTotal.WithLabelValues("ok").Add(float64(len(rows)))
}

func toNotificationRow(n NotificationInput) models.Notification {
	row := models.Notification{
		UserID:  n.UserID,
		Type:    n.Type,
		Title:   n.Title,
		Content: n.Content,
	}
	if n.Ref != nil {
		row.EntityType = string(n.Ref.Type)
		row.EntityID = n.Ref.ID
	}
	return row
}

// Create is the admin-facing variant: it verifies the target user and
// reports errors instead of swallowing them.
func (s *NotificationService) Create(n NotificationInput) (*models.Notification, error) {
	var user models.User
	if err := s.db.First(&user, n.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	row := toNotificationRow(n)
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateBatch fans one message out to several users; every target must exist.
func (s *NotificationService) CreateBatch(userIDs []uint64, n NotificationInput) ([]models.Notification, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id IN ?", userIDs).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != int64(len(userIDs)) {
		return nil, ErrUserNotFound
	}

	rows := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		m := n
		m.UserID = id
		rows = append(rows, toNotificationRow(m))
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *NotificationService) ListForUser(userID uint64, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = false")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Notification
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *NotificationService) UnreadCount(userID uint64) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) MarkRead(userID, id uint64) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint64) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (s *NotificationService) Delete(userID, id uint64) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
