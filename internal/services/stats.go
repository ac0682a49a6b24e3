package services

import (
	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

// Stat rows are created lazily on first interaction. FirstOrCreate inside the
// caller's transaction keeps the read and the insert on one connection.

func findOrCreateResourceStat(tx *gorm.DB, resourceID uint64, stat *models.ResourceStat) error {
	return tx.FirstOrCreate(stat, models.ResourceStat{ResourceID: resourceID}).Error
}

func findOrCreateReviewStat(tx *gorm.DB, reviewID uint64, stat *models.ReviewStat) error {
	return tx.FirstOrCreate(stat, models.ReviewStat{ReviewID: reviewID}).Error
}

func findOrCreateResourceCommentStat(tx *gorm.DB, commentID uint64, stat *models.ResourceCommentStat) error {
	return tx.FirstOrCreate(stat, models.ResourceCommentStat{CommentID: commentID}).Error
}

func findOrCreateReviewCommentStat(tx *gorm.DB, commentID uint64, stat *models.ReviewCommentStat) error {
	return tx.FirstOrCreate(stat, models.ReviewCommentStat{CommentID: commentID}).Error
}
