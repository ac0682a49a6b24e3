package entity

import (
	"errors"

	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

type resourceStore struct {
	db *gorm.DB
}

func (s *resourceStore) Find(id uint64) (*Snapshot, error) {
	var res models.Resource
	err := s.db.Select("id", "status", "uploader_id").First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: res.ID, Status: res.Status, OwnerID: res.UploaderID}, nil
}

func (s *resourceStore) UpdateStatus(id uint64, status string) error {
	return s.db.Model(&models.Resource{}).Where("id = ?", id).Update("status", status).Error
}

func (s *resourceStore) ProjectDetail(id uint64) (*Detail, error) {
	var res models.Resource
	err := s.db.
		Preload("Uploader").
		Preload("CourseLinks.Offering.Course").
		Preload("Stats").
		First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Detail{
		Type:     TypeResource,
		ID:       res.ID,
		Status:   res.Status,
		OwnerID:  res.UploaderID,
		Resource: &res,
	}, nil
}

type reviewStore struct {
	db *gorm.DB
}

func (s *reviewStore) Find(id uint64) (*Snapshot, error) {
	var rev models.CourseReview
	err := s.db.Select("id", "status", "author_id").First(&rev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: rev.ID, Status: rev.Status, OwnerID: rev.AuthorID}, nil
}

func (s *reviewStore) UpdateStatus(id uint64, status string) error {
	return s.db.Model(&models.CourseReview{}).Where("id = ?", id).Update("status", status).Error
}

func (s *reviewStore) ProjectDetail(id uint64) (*Detail, error) {
	var rev models.CourseReview
	err := s.db.
		Preload("Author").
		Preload("Course").
		Preload("Offering.Course").
		Preload("Stats").
		First(&rev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Detail{
		Type:    TypeReview,
		ID:      rev.ID,
		Status:  rev.Status,
		OwnerID: rev.AuthorID,
		Review:  &rev,
	}, nil
}

type resourceCommentStore struct {
	db *gorm.DB
}

func (s *resourceCommentStore) Find(id uint64) (*Snapshot, error) {
	var cm models.ResourceComment
	err := s.db.Select("id", "status", "user_id").First(&cm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: cm.ID, Status: cm.Status, OwnerID: cm.UserID}, nil
}

func (s *resourceCommentStore) UpdateStatus(id uint64, status string) error {
	return s.db.Model(&models.ResourceComment{}).Where("id = ?", id).Update("status", status).Error
}

func (s *resourceCommentStore) ProjectDetail(id uint64) (*Detail, error) {
	var cm models.ResourceComment
	err := s.db.
		Preload("User").
		Preload("Resource.Uploader").
		Preload("Resource.Stats").
		Preload("Stats").
		First(&cm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	floor, err := commentFloor(s.db, &models.ResourceComment{}, "resource_id", cm.ResourceID, cm)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Type:            TypeResourceComment,
		ID:              cm.ID,
		Status:          cm.Status,
		OwnerID:         cm.UserID,
		FloorNumber:     floor,
		ResourceComment: &cm,
	}, nil
}

type reviewCommentStore struct {
	db *gorm.DB
}

func (s *reviewCommentStore) Find(id uint64) (*Snapshot, error) {
	var cm models.ReviewComment
	err := s.db.Select("id", "status", "user_id").First(&cm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: cm.ID, Status: cm.Status, OwnerID: cm.UserID}, nil
}

func (s *reviewCommentStore) UpdateStatus(id uint64, status string) error {
	return s.db.Model(&models.ReviewComment{}).Where("id = ?", id).Update("status", status).Error
}

func (s *reviewCommentStore) ProjectDetail(id uint64) (*Detail, error) {
	var cm models.ReviewComment
	err := s.db.
		Preload("User").
		Preload("Review.Author").
		Preload("Review.Course").
		Preload("Review.Offering.Course").
		Preload("Stats").
		First(&cm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	floor, err := commentFloor(s.db, &models.ReviewComment{}, "review_id", cm.ReviewID, cm)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Type:          TypeReviewComment,
		ID:            cm.ID,
		Status:        cm.Status,
		OwnerID:       cm.UserID,
		FloorNumber:   floor,
		ReviewComment: &cm,
	}, nil
}

// commentFloor computes the 1-based floor number: non-deleted comments on the
// same parent created at or before the target. Comments sharing a timestamp
// share a floor.
func commentFloor(db *gorm.DB, model interface{}, parentCol string, parentID uint64, target interface{}) (int, error) {
	var createdAt interface{}
	switch c := target.(type) {
	case models.ResourceComment:
		createdAt = c.CreatedAt
	case models.ReviewComment:
		createdAt = c.CreatedAt
	default:
		return 0, nil
	}

	var count int64
	err := db.Model(model).
		Where(parentCol+" = ?", parentID).
		Where("created_at <= ?", createdAt).
		Where("status <> ?", models.ContentStatusDeleted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
