package handlers

import (
	"strconv"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/principal"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
	reactionService *services.ReactionService
}

func NewResourceHandler(resourceService *services.ResourceService, reactionService *services.ReactionService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, reactionService: reactionService}
}

func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resource, err := h.resourceService.Create(principal.UserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(resource))
}

func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	resource, err := h.resourceService.Get(id, principal.UserID(c), principal.IsAdmin(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(resource))
}

func (h *ResourceHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	uploaderID, _ := strconv.ParseUint(c.Query("uploader_id", "0"), 10, 64)
	offeringID, _ := strconv.ParseUint(c.Query("offering_id", "0"), 10, 64)

	filter := dto.ResourceListFilter{
		Type:       c.Query("type"),
		UploaderID: uploaderID,
		OfferingID: offeringID,
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	resources, total, err := h.resourceService.List(filter, principal.UserID(c), principal.IsAdmin(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(resources, total, page, limit))
}

func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	var req dto.UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resource, err := h.resourceService.Update(id, principal.UserID(c), principal.IsAdmin(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(resource))
}

func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	if err := h.resourceService.Delete(id, principal.UserID(c), principal.IsAdmin(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Resource deleted", nil))
}

func (h *ResourceHandler) Download(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	if err := h.resourceService.RecordDownload(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Download recorded", nil))
}

func (h *ResourceHandler) Like(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	stat, liked, err := h.reactionService.LikeResource(principal.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(fiber.Map{"liked": liked, "stats": stat}))
}

func (h *ResourceHandler) Favorite(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	stat, favorited, err := h.reactionService.FavoriteResource(principal.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(fiber.Map{"favorited": favorited, "stats": stat}))
}
