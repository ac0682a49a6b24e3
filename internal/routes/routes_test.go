package routes

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/campushare/campushare-backend/internal/config"
	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/handlers"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/campushare/campushare-backend/internal/repository"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
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

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.Report{},
		&models.ModerationQueueItem{},
		&models.Notification{},
	))

	cfg := &config.Config{
		JWTSecret:        "route-test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	reportRepo := repository.NewReportRepository(db)
	queueRepo := repository.NewQueueRepository(db)
	registry := entity.NewRegistry(db)

	notificationService := services.NewNotificationService(db)
	moderationService := services.NewModerationService(queueRepo, reportRepo, registry, notificationService)
	reportService := services.NewReportService(reportRepo, queueRepo, registry, moderationService, notificationService)
	reactionService := services.NewReactionService(db)

	h := Handlers{
		Auth:         handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:       handlers.NewHealthHandler(),
		Report:       handlers.NewReportHandler(reportService),
		Moderation:   handlers.NewModerationHandler(moderationService),
		Resource:     handlers.NewResourceHandler(services.NewResourceService(db, queueRepo), reactionService),
		Review:       handlers.NewReviewHandler(services.NewReviewService(db), reactionService),
		Comment:      handlers.NewCommentHandler(services.NewCommentService(db), reactionService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Announcement: handlers.NewAnnouncementHandler(services.NewAnnouncementService(db, notificationService)),
	}

	app := fiber.New()
	Setup(app, cfg, db, h)
	return app, db, cfg
}

func signToken(t *testing.T, cfg *config.Config, userID uint64, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(userID, 10),
		"email": fmt.Sprintf("user%d@campus.test", userID),
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return token
}

// Every moderation endpoint must be registered and sit behind the JWT
// middleware: an anonymous request gets 401, never 404 or 405.
func TestModerationRoutesRequireAuth(t *testing.T) {
	app, _, _ := testApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{fiber.MethodPost, "/api/reports"},
		{fiber.MethodGet, "/api/reports"},
		{fiber.MethodGet, "/api/reports/my"},
		{fiber.MethodGet, "/api/reports/1"},
		{fiber.MethodPut, "/api/reports/1/status"},
		{fiber.MethodDelete, "/api/reports/1"},
		{fiber.MethodGet, "/api/moderation-queue"},
		{fiber.MethodPost, "/api/moderation-queue"},
		{fiber.MethodGet, "/api/moderation-queue/stats"},
		{fiber.MethodGet, "/api/moderation-queue/1"},
		{fiber.MethodPut, "/api/moderation-queue/1/handle"},
		{fiber.MethodDelete, "/api/moderation-queue/1"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestModerationRoutesRequireAdmin(t *testing.T) {
	app, db, cfg := testApp(t)
	require.NoError(t, db.Create(&models.User{
		Email: "user2@campus.test", Password: "x", Role: "user", Status: models.UserStatusActive,
	}).Error)
	token := signToken(t, cfg, 1, "user")

	for _, tc := range []struct {
		method string
		path   string
	}{
		{fiber.MethodGet, "/api/moderation-queue"},
		{fiber.MethodPut, "/api/moderation-queue/1/handle"},
		{fiber.MethodGet, "/api/reports"},
		{fiber.MethodDelete, "/api/reports/1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

// PUT /api/moderation-queue/:id/handle takes the decision in the "status"
// body field and cascades: entity deleted, pending reports handled,
// reporters and owner notified.
func TestHandleQueueItemRoute(t *testing.T) {
	app, db, cfg := testApp(t)

	resource := models.Resource{
		UploaderID: 9, Title: "shared notes", Type: models.ResourceTypeNote,
		Visibility: models.ResourceVisibilityPublic, Status: models.ContentStatusNormal,
	}
	require.NoError(t, db.Create(&resource).Error)

	item := models.ModerationQueueItem{
		EntityType: string(entity.TypeResource), EntityID: resource.ID,
		ReportCount: 2, Status: models.QueueStatusPending,
	}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&[]models.Report{
		{ReporterID: 7, EntityType: string(entity.TypeResource), EntityID: resource.ID,
			Reason: models.ReportReasonSpam, Status: models.ReportStatusPending},
		{ReporterID: 8, EntityType: string(entity.TypeResource), EntityID: resource.ID,
			Reason: models.ReportReasonAbuse, Status: models.ReportStatusPending},
	}).Error)

	body := strings.NewReader(`{"status":"removed","notes":"confirmed spam"}`)
	req := httptest.NewRequest(fiber.MethodPut, fmt.Sprintf("/api/moderation-queue/%d/handle", item.ID), body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, 1, "admin"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.ModerationQueueItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, models.QueueStatusRemoved, reloaded.Status)
	require.NotNil(t, reloaded.HandledBy)
	assert.EqualValues(t, 1, *reloaded.HandledBy)
	assert.NotNil(t, reloaded.HandledAt)
	assert.Equal(t, "confirmed spam", reloaded.Notes)

	var gone models.Resource
	require.NoError(t, db.First(&gone, resource.ID).Error)
	assert.Equal(t, models.ContentStatusDeleted, gone.Status)

	var pending int64
	require.NoError(t, db.Model(&models.Report{}).
		Where("status = ?", models.ReportStatusPending).Count(&pending).Error)
	assert.Zero(t, pending)

	// Both reporters plus the owner hear about it.
	var recipients []uint64
	require.NoError(t, db.Model(&models.Notification{}).
		Order("user_id").Pluck("user_id", &recipients).Error)
	assert.Equal(t, []uint64{7, 8, 9}, recipients)
}

func TestQueueStatsRoute(t *testing.T) {
	app, db, cfg := testApp(t)
	require.NoError(t, db.Create(&models.ModerationQueueItem{
		EntityType: string(entity.TypeReview), EntityID: 3,
		ReportCount: 1, Status: models.QueueStatusPending,
	}).Error)

	req := httptest.NewRequest(fiber.MethodGet, "/api/moderation-queue/stats", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, 1, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope dto.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "success", envelope.Status)
}
