package handlers

import (
	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/principal"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	announcements, total, err := h.announcementService.List(principal.IsAdmin(c), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(announcements, total, page, limit))
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	announcement, err := h.announcementService.Create(principal.UserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(announcement))
}

func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid announcement ID")
	}

	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	announcement, err := h.announcementService.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(announcement))
}

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid announcement ID")
	}

	if err := h.announcementService.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Announcement deleted", nil))
}

func (h *AnnouncementHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid announcement ID")
	}

	if err := h.announcementService.MarkRead(principal.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Announcement marked read", nil))
}
