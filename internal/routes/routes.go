package routes

import (
	"time"

	"github.com/campushare/campushare-backend/internal/config"
	"github.com/campushare/campushare-backend/internal/handlers"
	"github.com/campushare/campushare-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Report       *handlers.ReportHandler
	Moderation   *handlers.ModerationHandler
	Resource     *handlers.ResourceHandler
	Review       *handlers.ReviewHandler
	Comment      *handlers.CommentHandler
	Notification *handlers.NotificationHandler
	Announcement *handlers.AnnouncementHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	protected := middleware.JWTProtected(cfg)
	adminOnly := middleware.AdminRequired(db, cfg)

	api.Post("/auth/logout", protected, h.Auth.Logout)
	api.Get("/auth/me", protected, h.Auth.Me)

	// Reports. Users file and list their own; everything else is admin.
	// /reports/my must precede /reports/:id.
	api.Post("/reports", protected, h.Report.Create)
	api.Get("/reports", protected, adminOnly, h.Report.List)
	api.Get("/reports/my", protected, h.Report.My)
	api.Get("/reports/:id", protected, adminOnly, h.Report.Get)
	api.Put("/reports/:id/status", protected, adminOnly, h.Report.SetStatus)
	api.Delete("/reports/:id", protected, adminOnly, h.Report.Delete)

	// Moderation queue, admin only. /stats must precede /:id.
	api.Get("/moderation-queue", protected, adminOnly, h.Moderation.List)
	api.Post("/moderation-queue", protected, adminOnly, h.Moderation.Create)
	api.Get("/moderation-queue/stats", protected, adminOnly, h.Moderation.Stats)
	api.Get("/moderation-queue/:id", protected, adminOnly, h.Moderation.Detail)
	api.Put("/moderation-queue/:id/handle", protected, adminOnly, h.Moderation.Handle)
	api.Delete("/moderation-queue/:id", protected, adminOnly, h.Moderation.Delete)

	// Resources
	api.Post("/resources", protected, h.Resource.Create)
	api.Get("/resources", protected, h.Resource.List)
	api.Get("/resources/:id", protected, h.Resource.Get)
	api.Put("/resources/:id", protected, h.Resource.Update)
	api.Delete("/resources/:id", protected, h.Resource.Delete)
	api.Post("/resources/:id/download", protected, h.Resource.Download)
	api.Post("/resources/:id/like", protected, h.Resource.Like)
	api.Post("/resources/:id/favorite", protected, h.Resource.Favorite)
	api.Post("/resources/:id/comments", protected, h.Comment.CreateOnResource)
	api.Get("/resources/:id/comments", protected, h.Comment.ListForResource)

	// Reviews
	api.Post("/reviews", protected, h.Review.Create)
	api.Get("/reviews/:id", protected, h.Review.Get)
	api.Delete("/reviews/:id", protected, h.Review.Delete)
	api.Get("/reviews/:id/stats", protected, h.Review.Stats)
	api.Post("/reviews/:id/reactions", protected, h.Review.React)
	api.Post("/reviews/:id/comments", protected, h.Comment.CreateOnReview)
	api.Get("/reviews/:id/comments", protected, h.Comment.ListForReview)
	api.Get("/courses/:courseId/reviews", protected, h.Review.ListByCourse)

	// Comments
	api.Delete("/resource-comments/:id", protected, h.Comment.DeleteResourceComment)
	api.Delete("/review-comments/:id", protected, h.Comment.DeleteReviewComment)
	api.Post("/resource-comments/:id/reactions", protected, h.Comment.ReactToResourceComment)
	api.Post("/review-comments/:id/reactions", protected, h.Comment.ReactToReviewComment)

	// Notifications. Listing is per-user; creation is admin push.
	api.Get("/notifications", protected, h.Notification.My)
	api.Post("/notifications", protected, adminOnly, h.Notification.Create)
	api.Get("/notifications/unread-count", protected, h.Notification.UnreadCount)
	api.Put("/notifications/read-all", protected, h.Notification.MarkAllRead)
	api.Put("/notifications/:id/read", protected, h.Notification.MarkRead)
	api.Delete("/notifications/:id", protected, h.Notification.Delete)

	// Announcements
	api.Get("/announcements", protected, h.Announcement.List)
	api.Post("/announcements", protected, adminOnly, h.Announcement.Create)
	api.Put("/announcements/:id/read", protected, h.Announcement.MarkRead)
	api.Put("/announcements/:id", protected, adminOnly, h.Announcement.Update)
	api.Delete("/announcements/:id", protected, adminOnly, h.Announcement.Delete)
}
