package services

import (
	"errors"
	"log/slog"

	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the comment author")
	ErrEmptyComment    = errors.New("comment content is required")
)

// CommentService owns the comment threads under resources and reviews.
// Comments are soft-deleted through status; the rows stay so floor numbers
// of later comments never shift.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) CreateOnResource(userID, resourceID uint64, content string) (*models.ResourceComment, error) {
	if content == "" {
		return nil, ErrEmptyComment
	}
	if err := ensureResourceLive(s.db, resourceID); err != nil {
		return nil, err
	}

	comment := models.ResourceComment{
		ResourceID: resourceID,
		UserID:     userID,
		Content:    content,
		Status:     models.ContentStatusNormal,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		stat := models.ResourceCommentStat{CommentID: comment.ID}
		return tx.Create(&stat).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("resource comment created", "comment_id", comment.ID, "resource_id", resourceID, "user_id", userID)
	return &comment, nil
}

func (s *CommentService) CreateOnReview(userID, reviewID uint64, content string) (*models.ReviewComment, error) {
	if content == "" {
		return nil, ErrEmptyComment
	}

	var review models.CourseReview
	if err := s.db.Select("id", "status").First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.Status == models.ContentStatusDeleted {
		return nil, ErrReviewNotFound
	}

	comment := models.ReviewComment{
		ReviewID: reviewID,
		UserID:   userID,
		Content:  content,
		Status:   models.ContentStatusNormal,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		stat := models.ReviewCommentStat{CommentID: comment.ID}
		return tx.Create(&stat).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("review comment created", "comment_id", comment.ID, "review_id", reviewID, "user_id", userID)
	return &comment, nil
}

// ListForResource returns a resource's comments in thread order, oldest
// first. Non-admin callers see deleted comments elided.
func (s *CommentService) ListForResource(resourceID uint64, isAdmin bool, page, limit int) ([]models.ResourceComment, int64, error) {
	query := s.db.Model(&models.ResourceComment{}).Where("resource_id = ?", resourceID)
	if !isAdmin {
		query = query.Where("status <> ?", models.ContentStatusDeleted)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.ResourceComment
	err := query.Preload("User").Preload("Stats").
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *CommentService) ListForReview(reviewID uint64, isAdmin bool, page, limit int) ([]models.ReviewComment, int64, error) {
	query := s.db.Model(&models.ReviewComment{}).Where("review_id = ?", reviewID)
	if !isAdmin {
		query = query.Where("status <> ?", models.ContentStatusDeleted)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.ReviewComment
	err := query.Preload("User").Preload("Stats").
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *CommentService) DeleteResourceComment(id, callerID uint64, isAdmin bool) error {
	var comment models.ResourceComment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.Status == models.ContentStatusDeleted {
		return ErrCommentNotFound
	}
	if comment.UserID != callerID && !isAdmin {
		return ErrNotCommentOwner
	}
	return s.db.Model(&comment).Update("status", models.ContentStatusDeleted).Error
}

func (s *CommentService) DeleteReviewComment(id, callerID uint64, isAdmin bool) error {
	var comment models.ReviewComment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.Status == models.ContentStatusDeleted {
		return ErrCommentNotFound
	}
	if comment.UserID != callerID && !isAdmin {
		return ErrNotCommentOwner
	}
	return s.db.Model(&comment).Update("status", models.ContentStatusDeleted).Error
}
