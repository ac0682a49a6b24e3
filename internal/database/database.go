package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/campushare/campushare-backend/internal/config"
	"github.com/campushare/campushare-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Course{},
		&models.CourseOffering{},
		&models.Resource{},
		&models.ResourceCourseLink{},
		&models.ResourceStat{},
		&models.ResourceLike{},
		&models.ResourceFavorite{},
		&models.ResourceComment{},
		&models.ResourceCommentStat{},
		&models.ResourceCommentReaction{},
		&models.CourseReview{},
		&models.ReviewStat{},
		&models.ReviewReaction{},
		&models.ReviewComment{},
		&models.ReviewCommentStat{},
		&models.ReviewCommentReaction{},
		&models.Report{},
		&models.ModerationQueueItem{},
		&models.Notification{},
		&models.Announcement{},
		&models.UserAnnouncementRead{},
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
