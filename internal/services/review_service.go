package services

import (
	"errors"
	"log/slog"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrOfferingNotFound = errors.New("course offering not found")
	ErrNotReviewOwner   = errors.New("not the review author")
	ErrInvalidReview    = errors.New("invalid review payload")
)

// ReviewService owns course review CRUD. Reviews are soft-deleted through
// status, never removed as rows, so moderation history stays intact.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Create(authorID uint64, req *dto.CreateReviewRequest) (*models.CourseReview, error) {
	if req.Rating < 1 || req.Rating > 10 || req.Content == "" {
		return nil, ErrInvalidReview
	}

	courseID := req.CourseID
	var offeringID *uint64
	if req.OfferingID != 0 {
		var offering models.CourseOffering
		if err := s.db.First(&offering, req.OfferingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOfferingNotFound
			}
			return nil, err
		}
		courseID = offering.CourseID
		offeringID = &req.OfferingID
	} else {
		var course models.Course
		if err := s.db.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, err
		}
	}

	review := models.CourseReview{
		AuthorID:   authorID,
		CourseID:   courseID,
		OfferingID: offeringID,
		Rating:     req.Rating,
		Content:    req.Content,
		Status:     models.ContentStatusNormal,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		stat := models.ReviewStat{ReviewID: review.ID}
		return tx.Create(&stat).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("review created", "review_id", review.ID, "author_id", authorID, "course_id", courseID)
	return &review, nil
}

func (s *ReviewService) Get(id uint64, isAdmin bool) (*models.CourseReview, error) {
	var review models.CourseReview
	err := s.db.
		Preload("Author").
		Preload("Course").
		Preload("Offering.Course").
		Preload("Stats").
		First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.Status != models.ContentStatusNormal && !isAdmin {
		return nil, ErrReviewNotFound
	}
	return &review, nil
}

// ListByCourse returns a course's reviews, newest first. Non-admin callers
// only see normal reviews.
func (s *ReviewService) ListByCourse(courseID uint64, isAdmin bool, page, limit int) ([]models.CourseReview, int64, error) {
	query := s.db.Model(&models.CourseReview{}).Where("course_id = ?", courseID)
	if !isAdmin {
		query = query.Where("status = ?", models.ContentStatusNormal)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.CourseReview
	err := query.Preload("Author").Preload("Offering").Preload("Stats").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Delete soft-deletes a review by flipping its status.
func (s *ReviewService) Delete(id, callerID uint64, isAdmin bool) error {
	var review models.CourseReview
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.Status == models.ContentStatusDeleted {
		return ErrReviewNotFound
	}
	if review.AuthorID != callerID && !isAdmin {
		return ErrNotReviewOwner
	}

	return s.db.Model(&review).Update("status", models.ContentStatusDeleted).Error
}

func (s *ReviewService) Stats(id uint64) (*models.ReviewStat, error) {
	var review models.CourseReview
	if err := s.db.Select("id").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	var stat models.ReviewStat
	if err := s.db.FirstOrCreate(&stat, models.ReviewStat{ReviewID: id}).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}
