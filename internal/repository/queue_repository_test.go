package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestFindOrCreateColdThenExisting(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.AutoMigrate(&models.ModerationQueueItem{}))
	repo := NewQueueRepository(db)

	ref := entity.Ref{Type: entity.TypeReview, ID: 5}
	defaults := models.ModerationQueueItem{ReportCount: 1, Status: models.QueueStatusPending}

	item, created, err := repo.FindOrCreate(ref, defaults)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, item.ReportCount)

	// The second caller gets the existing row back untouched.
	again, created, err := repo.FindOrCreate(ref, models.ModerationQueueItem{ReportCount: 99, Status: models.QueueStatusRemoved})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, item.ID, again.ID)
	assert.Equal(t, 1, again.ReportCount)
	assert.Equal(t, models.QueueStatusPending, again.Status)
}

// A competing writer inserts the row between the miss and our insert. The
// unique index on (entity_type, entity_id) rejects us and we must hand back
// the winner's row instead of an error.
func TestFindOrCreateLosesInsertRace(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.AutoMigrate(&models.ModerationQueueItem{}))
	repo := NewQueueRepository(db)

	ref := entity.Ref{Type: entity.TypeResource, ID: 42}
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("competing_insert", func(tx *gorm.DB) {
		if raced {
			return
		}
		raced = true
		competitor := models.ModerationQueueItem{
			EntityType:  string(ref.Type),
			EntityID:    ref.ID,
			ReportCount: 7,
			Status:      models.QueueStatusPending,
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(&competitor).Error; err != nil {
			t.Errorf("competing insert failed: %v", err)
		}
	})
	require.NoError(t, err)

	item, created, err := repo.FindOrCreate(ref, models.ModerationQueueItem{ReportCount: 1, Status: models.QueueStatusPending})
	require.NoError(t, err)
	assert.True(t, raced)
	assert.False(t, created)
	assert.Equal(t, 7, item.ReportCount)

	var total int64
	require.NoError(t, db.Model(&models.ModerationQueueItem{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}
