package handlers

import (
	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/principal"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) My(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notificationService.ListForUser(principal.UserID(c), unreadOnly, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(notifications, total, page, limit))
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.UnreadCount(principal.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(fiber.Map{"unread": count}))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(principal.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Notification marked read", nil))
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	updated, err := h.notificationService.MarkAllRead(principal.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(fiber.Map{"updated": updated}))
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.Delete(principal.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Notification deleted", nil))
}

// Create is the admin endpoint: single target via user_id or a batch via
// user_ids.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Type == "" || req.Title == "" {
		return badRequest(c, "type and title are required")
	}

	input := services.NotificationInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
	}
	if req.EntityType != "" && req.EntityID != 0 {
		entityType, ok := entity.Parse(req.EntityType)
		if !ok {
			return badRequest(c, "Unknown entity type")
		}
		input.Ref = &entity.Ref{Type: entityType, ID: req.EntityID}
	}

	if len(req.UserIDs) > 0 {
		rows, err := h.notificationService.CreateBatch(req.UserIDs, input)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.Success(rows))
	}

	if req.UserID == 0 {
		return badRequest(c, "user_id or user_ids is required")
	}
	row, err := h.notificationService.Create(input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(row))
}
