package entity

import (
	"fmt"
	"strings"
	"testing"
	"time"

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

func TestCommentFloorSkipsDeletedSiblings(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.AutoMigrate(&models.ResourceComment{}))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seed := []models.ResourceComment{
		{ResourceID: 1, UserID: 1, Content: "first", Status: models.ContentStatusNormal, CreatedAt: base},
		{ResourceID: 1, UserID: 2, Content: "second", Status: models.ContentStatusDeleted, CreatedAt: base.Add(time.Minute)},
		{ResourceID: 1, UserID: 3, Content: "third", Status: models.ContentStatusNormal, CreatedAt: base.Add(2 * time.Minute)},
		{ResourceID: 2, UserID: 4, Content: "other thread", Status: models.ContentStatusNormal, CreatedAt: base},
	}
	require.NoError(t, db.Create(&seed).Error)

	floor, err := commentFloor(db, &models.ResourceComment{}, "resource_id", 1, seed[0])
	require.NoError(t, err)
	assert.Equal(t, 1, floor)

	// The deleted sibling between first and third does not claim a floor,
	// and comments under another parent never count.
	floor, err = commentFloor(db, &models.ResourceComment{}, "resource_id", 1, seed[2])
	require.NoError(t, err)
	assert.Equal(t, 2, floor)
}

func TestCommentFloorSharedTimestamp(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.AutoMigrate(&models.ReviewComment{}))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seed := []models.ReviewComment{
		{ReviewID: 7, UserID: 1, Content: "opener", Status: models.ContentStatusNormal, CreatedAt: base},
		{ReviewID: 7, UserID: 2, Content: "same instant a", Status: models.ContentStatusNormal, CreatedAt: base.Add(time.Minute)},
		{ReviewID: 7, UserID: 3, Content: "same instant b", Status: models.ContentStatusNormal, CreatedAt: base.Add(time.Minute)},
	}
	require.NoError(t, db.Create(&seed).Error)

	// Comments created at the same instant share a floor.
	for _, cm := range seed[1:] {
		floor, err := commentFloor(db, &models.ReviewComment{}, "review_id", 7, cm)
		require.NoError(t, err)
		assert.Equal(t, 3, floor)
	}
}
