package handlers

import (
	"strings"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/principal"
	"github.com/campushare/campushare-backend/internal/repository"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ModerationHandler exposes the admin moderation queue.
type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	filter := repository.QueueFilter{
		Status:     c.Query("status"),
		EntityType: c.Query("entity_type"),
		SortBy:     c.Query("sort_by", "report_count"),
		SortOrder:  strings.ToUpper(c.Query("sort_order", "DESC")),
		Page:       page,
		Limit:      limit,
	}

	items, total, err := h.moderationService.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(items, total, page, limit))
}

func (h *ModerationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateQueueItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var errs []dto.FieldError
	entityType, ok := entity.Parse(req.EntityType)
	if !ok {
		errs = append(errs, dto.FieldError{Field: "entity_type", Message: "Unknown entity type"})
	}
	if req.EntityID == 0 {
		errs = append(errs, dto.FieldError{Field: "entity_id", Message: "entity_id is required"})
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ref := entity.Ref{Type: entityType, ID: req.EntityID}
	item, err := h.moderationService.CreateManual(ref, req.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(item))
}

func (h *ModerationHandler) Handle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid queue item ID")
	}

	var req dto.HandleQueueItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.moderationService.Handle(principal.UserID(c), id, req.Status, req.Action, req.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(item))
}

func (h *ModerationHandler) Detail(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid queue item ID")
	}

	detail, err := h.moderationService.Detail(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(detail))
}

func (h *ModerationHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.moderationService.Stats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(stats))
}

func (h *ModerationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid queue item ID")
	}

	if err := h.moderationService.DeleteItem(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Queue item deleted", nil))
}
