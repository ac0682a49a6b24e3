package handlers

import (
	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/principal"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	reviewService   *services.ReviewService
	reactionService *services.ReactionService
}

func NewReviewHandler(reviewService *services.ReviewService, reactionService *services.ReactionService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, reactionService: reactionService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	review, err := h.reviewService.Create(principal.UserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(review))
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid review ID")
	}

	review, err := h.reviewService.Get(id, principal.IsAdmin(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(review))
}

func (h *ReviewHandler) ListByCourse(c *fiber.Ctx) error {
	courseID, err := parseID(c, "courseId")
	if err != nil {
		return badRequest(c, "Invalid course ID")
	}

	page, limit := parsePagination(c)
	reviews, total, err := h.reviewService.ListByCourse(courseID, principal.IsAdmin(c), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(reviews, total, page, limit))
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid review ID")
	}

	if err := h.reviewService.Delete(id, principal.UserID(c), principal.IsAdmin(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Review deleted", nil))
}

func (h *ReviewHandler) Stats(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid review ID")
	}

	stats, err := h.reviewService.Stats(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(stats))
}

func (h *ReviewHandler) React(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid review ID")
	}

	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	stat, err := h.reactionService.ReactToReview(principal.UserID(c), id, req.Reaction)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(stat))
}
