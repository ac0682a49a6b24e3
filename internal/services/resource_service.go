package services

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/campushare/campushare-backend/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrNotResourceOwner = errors.New("not the resource owner")
	ErrInvalidResource  = errors.New("invalid resource payload")
)

// ResourceService owns resource CRUD and the view/download counters. Content
// status writes stay with the moderation orchestrator, with one exception:
// an owner edit of a hidden resource pushes the queue item back to review.
type ResourceService struct {
	db    *gorm.DB
	queue repository.QueueRepository
}

func NewResourceService(db *gorm.DB, queue repository.QueueRepository) *ResourceService {
	return &ResourceService{db: db, queue: queue}
}

func validResourceType(t string) bool {
	return t == models.ResourceTypeFile || t == models.ResourceTypeLink || t == models.ResourceTypeNote
}

func validVisibility(v string) bool {
	return v == models.ResourceVisibilityPublic || v == models.ResourceVisibilityCourse || v == models.ResourceVisibilityPrivate
}

func (s *ResourceService) Create(uploaderID uint64, req *dto.CreateResourceRequest) (*models.Resource, error) {
	if req.Title == "" || !validResourceType(req.Type) {
		return nil, ErrInvalidResource
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.ResourceVisibilityPublic
	}
	if !validVisibility(visibility) {
		return nil, ErrInvalidResource
	}

	tags := datatypes.JSON([]byte("[]"))
	if len(req.Tags) > 0 {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, ErrInvalidResource
		}
		tags = datatypes.JSON(raw)
	}

	resource := models.Resource{
		UploaderID:  uploaderID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		FileKey:     req.FileKey,
		Visibility:  visibility,
		Status:      models.ContentStatusNormal,
		Tags:        tags,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resource).Error; err != nil {
			return err
		}
		for _, offeringID := range req.OfferingIDs {
			link := models.ResourceCourseLink{ResourceID: resource.ID, OfferingID: offeringID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		stat := models.ResourceStat{ResourceID: resource.ID}
		return tx.Create(&stat).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("resource created", "resource_id", resource.ID, "uploader_id", uploaderID, "type", resource.Type)
	return &resource, nil
}

// Get returns a resource and bumps its view counter. Non-admin callers only
// see normal content unless they own it.
func (s *ResourceService) Get(id, viewerID uint64, isAdmin bool) (*models.Resource, error) {
	var resource models.Resource
	err := s.db.
		Preload("Uploader").
		Preload("CourseLinks.Offering.Course").
		Preload("Stats").
		First(&resource, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	if !s.visibleTo(&resource, viewerID, isAdmin) {
		return nil, ErrResourceNotFound
	}

	s.bumpCounter(id, "view_count")
	return &resource, nil
}

func (s *ResourceService) visibleTo(r *models.Resource, viewerID uint64, isAdmin bool) bool {
	if isAdmin || r.UploaderID == viewerID {
		return true
	}
	if r.Status != models.ContentStatusNormal {
		return false
	}
	return r.Visibility != models.ResourceVisibilityPrivate
}

func (s *ResourceService) List(f dto.ResourceListFilter, viewerID uint64, isAdmin bool) ([]models.Resource, int64, error) {
	query := s.db.Model(&models.Resource{})
	if !isAdmin {
		query = query.Where(
			"(status = ? AND visibility <> ?) OR uploader_id = ?",
			models.ContentStatusNormal, models.ResourceVisibilityPrivate, viewerID,
		)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.UploaderID != 0 {
		query = query.Where("uploader_id = ?", f.UploaderID)
	}
	if f.OfferingID != 0 {
		query = query.
			Joins("JOIN resource_course_links ON resource_course_links.resource_id = resources.id").
			Where("resource_course_links.offering_id = ?", f.OfferingID)
	}
	if f.Search != "" {
		query = query.Where("title ILIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resources []models.Resource
	err := query.Preload("Uploader").Preload("Stats").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&resources).Error
	if err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

// Update edits a resource's own fields. Status is not editable here; when the
// owner edits a hidden resource it stays hidden and the moderation queue item
// is forced back to pending_review for a fresh look at the new content.
func (s *ResourceService) Update(id, editorID uint64, isAdmin bool, req *dto.UpdateResourceRequest) (*models.Resource, error) {
	var resource models.Resource
	if err := s.db.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if resource.Status == models.ContentStatusDeleted {
		return nil, ErrResourceNotFound
	}
	if resource.UploaderID != editorID && !isAdmin {
		return nil, ErrNotResourceOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrInvalidResource
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Visibility != nil {
		if !validVisibility(*req.Visibility) {
			return nil, ErrInvalidResource
		}
		updates["visibility"] = *req.Visibility
	}
	if req.Tags != nil {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, ErrInvalidResource
		}
		updates["tags"] = datatypes.JSON(raw)
	}
	if len(updates) == 0 {
		return &resource, nil
	}

	if err := s.db.Model(&resource).Updates(updates).Error; err != nil {
		return nil, err
	}

	if resource.Status == models.ContentStatusHidden {
		s.requeueHidden(id)
	}
	return &resource, nil
}

// requeueHidden forces the resource's queue item back to pending_review after
// an edit to hidden content. Missing queue items are tolerated: the hide may
// predate the queue row being cleaned up.
func (s *ResourceService) requeueHidden(resourceID uint64) {
	ref := entity.Ref{Type: entity.TypeResource, ID: resourceID}
	item, err := s.queue.FindByEntity(ref)
	if err != nil {
		if !repository.IsNotFound(err) {
			slog.Error("queue lookup failed after hidden edit", "entity", ref.String(), "error", err)
		}
		return
	}
	if item.Status == models.QueueStatusPendingReview {
		return
	}
	if err := s.queue.UpdateStatus(item.ID, models.QueueStatusPendingReview); err != nil {
		slog.Error("queue requeue failed after hidden edit", "entity", ref.String(), "error", err)
		return
	}
	slog.Info("hidden resource edited, queue item reopened", "entity", ref.String(), "item_id", item.ID)
}

// Delete removes a resource and every derived row in one transaction.
func (s *ResourceService) Delete(id, callerID uint64, isAdmin bool) error {
	var resource models.Resource
	if err := s.db.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	if resource.UploaderID != callerID && !isAdmin {
		return ErrNotResourceOwner
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&models.ResourceStat{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&models.ResourceLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&models.ResourceFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&models.ResourceCourseLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&resource).Error
	})
	if err != nil {
		return err
	}

	slog.Info("resource deleted", "resource_id", id, "caller_id", callerID)
	return nil
}

// RecordDownload bumps the download counter.
func (s *ResourceService) RecordDownload(id uint64) error {
	var resource models.Resource
	if err := s.db.Select("id", "status").First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	if resource.Status == models.ContentStatusDeleted {
		return ErrResourceNotFound
	}
	s.bumpCounter(id, "download_count")
	return nil
}

// bumpCounter increments a ResourceStat column atomically. Best-effort: a
// failed bump is logged, never surfaced.
func (s *ResourceService) bumpCounter(resourceID uint64, column string) {
	err := s.db.Model(&models.ResourceStat{}).
		Where("resource_id = ?", resourceID).
		Updates(map[string]interface{}{
			column:               gorm.Expr(column+" + 1"),
			"last_interacted_at": time.Now(),
		}).Error
	if err != nil {
		slog.Error("resource counter bump failed", "resource_id", resourceID, "column", column, "error", err)
	}
}
