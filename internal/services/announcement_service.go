package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidAnnouncement  = errors.New("invalid announcement payload")
)

// AnnouncementService owns platform-wide announcements. Status is derived
// from the schedule window and lazily re-synced on reads.
type AnnouncementService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewAnnouncementService(db *gorm.DB, notifier Notifier) *AnnouncementService {
	return &AnnouncementService{db: db, notifier: notifier}
}

// deriveStatus computes an announcement's status from its window at t.
// A nil StartsAt means immediately active; a nil EndsAt means no expiry.
func deriveStatus(startsAt, endsAt *time.Time, t time.Time) string {
	if startsAt != nil && t.Before(*startsAt) {
		return models.AnnouncementStatusScheduled
	}
	if endsAt != nil && !t.Before(*endsAt) {
		return models.AnnouncementStatusEnded
	}
	return models.AnnouncementStatusActive
}

func (s *AnnouncementService) Create(creatorID uint64, req *dto.AnnouncementRequest) (*models.Announcement, error) {
	if req.Title == "" || req.Content == "" {
		return nil, ErrInvalidAnnouncement
	}
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		return nil, ErrInvalidAnnouncement
	}

	announcement := models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Priority:  req.Priority,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Status:    deriveStatus(req.StartsAt, req.EndsAt, time.Now()),
		CreatedBy: creatorID,
	}
	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}

	slog.Info("announcement created",
		"announcement_id", announcement.ID, "status", announcement.Status, "priority", announcement.Priority)

	if announcement.Status == models.AnnouncementStatusActive {
		go s.fanOut(&announcement)
	}
	return &announcement, nil
}

// fanOut pushes an active announcement to every active user as an in-app
// notification. Best-effort and off the request path.
func (s *AnnouncementService) fanOut(a *models.Announcement) {
	var userIDs []uint64
	err := s.db.Model(&models.User{}).
		Where("status = ?", models.UserStatusActive).
		Pluck("id", &userIDs).Error
	if err != nil {
		slog.Error("announcement fan-out user query failed", "announcement_id", a.ID, "error", err)
		return
	}

	notifications := make([]NotificationInput, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, NotificationInput{
			UserID:  id,
			Type:    models.NotificationTypeAnnouncement,
			Title:   a.Title,
			Content: a.Content,
		})
	}
	s.notifier.NotifyAll(notifications)
	slog.Info("announcement fanned out", "announcement_id", a.ID, "recipients", len(userIDs))
}

func (s *AnnouncementService) Update(id uint64, req *dto.AnnouncementRequest) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := s.db.First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	if req.Title == "" || req.Content == "" {
		return nil, ErrInvalidAnnouncement
	}

	wasActive := announcement.Status == models.AnnouncementStatusActive

	announcement.Title = req.Title
	announcement.Content = req.Content
	announcement.Priority = req.Priority
	announcement.StartsAt = req.StartsAt
	announcement.EndsAt = req.EndsAt
	announcement.Status = deriveStatus(req.StartsAt, req.EndsAt, time.Now())

	if err := s.db.Save(&announcement).Error; err != nil {
		return nil, err
	}

	if !wasActive && announcement.Status == models.AnnouncementStatusActive {
		go s.fanOut(&announcement)
	}
	return &announcement, nil
}

func (s *AnnouncementService) Delete(id uint64) error {
	result := s.db.Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

// List returns announcements, highest priority first, statuses freshly
// re-derived. Non-admin callers only see active ones.
func (s *AnnouncementService) List(isAdmin bool, page, limit int) ([]models.Announcement, int64, error) {
	if err := s.syncStatuses(); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Announcement{})
	if !isAdmin {
		query = query.Where("status = ?", models.AnnouncementStatusActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var announcements []models.Announcement
	err := query.
		Order("priority DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&announcements).Error
	if err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}

// syncStatuses moves scheduled announcements whose window opened to active
// and active ones whose window closed to ended.
func (s *AnnouncementService) syncStatuses() error {
	now := time.Now()
	err := s.db.Model(&models.Announcement{}).
		Where("status = ? AND starts_at <= ?", models.AnnouncementStatusScheduled, now).
		Update("status", models.AnnouncementStatusActive).Error
	if err != nil {
		return err
	}
	return s.db.Model(&models.Announcement{}).
		Where("status = ? AND ends_at IS NOT NULL AND ends_at <= ?", models.AnnouncementStatusActive, now).
		Update("status", models.AnnouncementStatusEnded).Error
}

func (s *AnnouncementService) MarkRead(userID, announcementID uint64) error {
	var announcement models.Announcement
	if err := s.db.First(&announcement, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	read := models.UserAnnouncementRead{
		UserID:         userID,
		AnnouncementID: announcementID,
		ReadAt:         time.Now(),
	}
	err := s.db.Create(&read).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
