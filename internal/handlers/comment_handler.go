package handlers

import (
	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/principal"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler covers comment threads on both resources and reviews,
// including reactions on individual comments.
type CommentHandler struct {
	commentService  *services.CommentService
	reactionService *services.ReactionService
}

func NewCommentHandler(commentService *services.CommentService, reactionService *services.ReactionService) *CommentHandler {
	return &CommentHandler{commentService: commentService, reactionService: reactionService}
}

func (h *CommentHandler) CreateOnResource(c *fiber.Ctx) error {
	resourceID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.commentService.CreateOnResource(principal.UserID(c), resourceID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(comment))
}

func (h *CommentHandler) ListForResource(c *fiber.Ctx) error {
	resourceID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid resource ID")
	}

	page, limit := parsePagination(c)
	comments, total, err := h.commentService.ListForResource(resourceID, principal.IsAdmin(c), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(comments, total, page, limit))
}

func (h *CommentHandler) CreateOnReview(c *fiber.Ctx) error {
	reviewID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid review ID")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.commentService.CreateOnReview(principal.UserID(c), reviewID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(comment))
}

func (h *CommentHandler) ListForReview(c *fiber.Ctx) error {
	reviewID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid review ID")
	}

	page, limit := parsePagination(c)
	comments, total, err := h.commentService.ListForReview(reviewID, principal.IsAdmin(c), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(comments, total, page, limit))
}

func (h *CommentHandler) DeleteResourceComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	if err := h.commentService.DeleteResourceComment(id, principal.UserID(c), principal.IsAdmin(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Comment deleted", nil))
}

func (h *CommentHandler) DeleteReviewComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	if err := h.commentService.DeleteReviewComment(id, principal.UserID(c), principal.IsAdmin(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Comment deleted", nil))
}

func (h *CommentHandler) ReactToResourceComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	stat, err := h.reactionService.ReactToResourceComment(principal.UserID(c), id, req.Reaction)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(stat))
}

func (h *CommentHandler) ReactToReviewComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	stat, err := h.reactionService.ReactToReviewComment(principal.UserID(c), id, req.Reaction)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(stat))
}
