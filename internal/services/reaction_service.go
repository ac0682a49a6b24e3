package services

import (
	"errors"
	"time"

	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidReaction = errors.New("reaction must be like or dislike")

// Reaction row operations produced by a toggle transition.
const (
	reactionOpCreate = "create"
	reactionOpDelete = "delete"
	reactionOpSwap   = "swap"
)

// toggleCounts applies one reaction toggle to a pair of counters and returns
// the row operation to perform. current is the user's existing reaction, ""
// when none. Counters never drop below zero even if a decrement arrives on an
// already-zero counter.
func toggleCounts(likeCount, dislikeCount *int, current, incoming string) string {
	counter := func(reaction string) *int {
		if reaction == models.ReactionLike {
			return likeCount
		}
		return dislikeCount
	}
	dec := func(n *int) {
		if *n > 0 {
			*n--
		}
	}

	switch current {
	case "":
		*counter(incoming)++
		return reactionOpCreate
	case incoming:
		dec(counter(incoming))
		return reactionOpDelete
	default:
		dec(counter(current))
		*counter(incoming)++
		return reactionOpSwap
	}
}

// ReactionService owns the like/dislike toggles on reviews and comments and
// the like/favorite toggles on resources, together with their derived stat
// rows.
type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

func (s *ReactionService) ReactToReview(userID, reviewID uint64, reaction string) (*models.ReviewStat, error) {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return nil, ErrInvalidReaction
	}

	var stat models.ReviewStat
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var review models.CourseReview
		if err := tx.Select("id", "status").First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if review.Status == models.ContentStatusDeleted {
			return ErrReviewNotFound
		}

		if err := findOrCreateReviewStat(tx, reviewID, &stat); err != nil {
			return err
		}

		var existing models.ReviewReaction
		current := ""
		err := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).First(&existing).Error
		if err == nil {
			current = existing.Reaction
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch toggleCounts(&stat.LikeCount, &stat.DislikeCount, current, reaction) {
		case reactionOpCreate:
			row := models.ReviewReaction{UserID: userID, ReviewID: reviewID, Reaction: reaction}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case reactionOpDelete:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case reactionOpSwap:
			if err := tx.Model(&existing).Update("reaction", reaction).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		stat.NetScore = stat.LikeCount - stat.DislikeCount
		stat.LastReactedAt = &now
		return tx.Save(&stat).Error
	})
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *ReactionService) ReactToResourceComment(userID, commentID uint64, reaction string) (*models.ResourceCommentStat, error) {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return nil, ErrInvalidReaction
	}

	var stat models.ResourceCommentStat
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.ResourceComment
		if err := tx.Select("id", "status").First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if comment.Status == models.ContentStatusDeleted {
			return ErrCommentNotFound
		}

		if err := findOrCreateResourceCommentStat(tx, commentID, &stat); err != nil {
			return err
		}

		var existing models.ResourceCommentReaction
		current := ""
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		if err == nil {
			current = existing.Reaction
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch toggleCounts(&stat.LikeCount, &stat.DislikeCount, current, reaction) {
		case reactionOpCreate:
			row := models.ResourceCommentReaction{UserID: userID, CommentID: commentID, Reaction: reaction}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case reactionOpDelete:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case reactionOpSwap:
			if err := tx.Model(&existing).Update("reaction", reaction).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		stat.NetScore = stat.LikeCount - stat.DislikeCount
		stat.LastReactedAt = &now
		return tx.Save(&stat).Error
	})
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *ReactionService) ReactToReviewComment(userID, commentID uint64, reaction string) (*models.ReviewCommentStat, error) {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return nil, ErrInvalidReaction
	}

	var stat models.ReviewCommentStat
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.ReviewComment
		if err := tx.Select("id", "status").First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if comment.Status == models.ContentStatusDeleted {
			return ErrCommentNotFound
		}

		if err := findOrCreateReviewCommentStat(tx, commentID, &stat); err != nil {
			return err
		}

		var existing models.ReviewCommentReaction
		current := ""
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		if err == nil {
			current = existing.Reaction
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch toggleCounts(&stat.LikeCount, &stat.DislikeCount, current, reaction) {
		case reactionOpCreate:
			row := models.ReviewCommentReaction{UserID: userID, CommentID: commentID, Reaction: reaction}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case reactionOpDelete:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case reactionOpSwap:
			if err := tx.Model(&existing).Update("reaction", reaction).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		stat.NetScore = stat.LikeCount - stat.DislikeCount
		stat.LastReactedAt = &now
		return tx.Save(&stat).Error
	})
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// LikeResource toggles the caller's like on a resource. Returns the updated
// stat row and whether the resource is now liked.
func (s *ReactionService) LikeResource(userID, resourceID uint64) (*models.ResourceStat, bool, error) {
	var (
		stat  models.ResourceStat
		liked bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureResourceLive(tx, resourceID); err != nil {
			return err
		}
		if err := findOrCreateResourceStat(tx, resourceID, &stat); err != nil {
			return err
		}

		var existing models.ResourceLike
		err := tx.Where("user_id = ? AND resource_id = ?", userID, resourceID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if stat.LikeCount > 0 {
				stat.LikeCount--
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := models.ResourceLike{UserID: userID, ResourceID: resourceID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			stat.LikeCount++
			liked = true
		default:
			return err
		}

		now := time.Now()
		stat.LastInteractedAt = &now
		return tx.Save(&stat).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &stat, liked, nil
}

// FavoriteResource toggles the caller's favorite on a resource.
func (s *ReactionService) FavoriteResource(userID, resourceID uint64) (*models.ResourceStat, bool, error) {
	var (
		stat      models.ResourceStat
		favorited bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureResourceLive(tx, resourceID); err != nil {
			return err
		}
		if err := findOrCreateResourceStat(tx, resourceID, &stat); err != nil {
			return err
		}

		var existing models.ResourceFavorite
		err := tx.Where("user_id = ? AND resource_id = ?", userID, resourceID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if stat.FavoriteCount > 0 {
				stat.FavoriteCount--
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := models.ResourceFavorite{UserID: userID, ResourceID: resourceID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			stat.FavoriteCount++
			favorited = true
		default:
			return err
		}

		now := time.Now()
		stat.LastInteractedAt = &now
		return tx.Save(&stat).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &stat, favorited, nil
}

func ensureResourceLive(tx *gorm.DB, resourceID uint64) error {
	var resource models.Resource
	if err := tx.Select("id", "status").First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	if resource.Status == models.ContentStatusDeleted {
		return ErrResourceNotFound
	}
	return nil
}
