// Package handlers maps the HTTP surface onto the service layer. Handlers
// parse and validate input, call one service method and translate its error
// into a status code; they hold no business rules.
package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps service sentinels onto HTTP status codes. Unknown errors
// fall through to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrQueueItemNotFound),
		errors.Is(err, services.ErrEntityNotFound),
		errors.Is(err, services.ErrResourceNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrOfferingNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrAnnouncementNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAccountDisabled),
		errors.Is(err, services.ErrNotResourceOwner),
		errors.Is(err, services.ErrNotReviewOwner),
		errors.Is(err, services.ErrNotCommentOwner):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrDuplicateReport),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCannotReportRemoved),
		errors.Is(err, services.ErrContentDeleted),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrUnknownEntityType),
		errors.Is(err, services.ErrInvalidReason),
		errors.Is(err, services.ErrReportNotHandled),
		errors.Is(err, services.ErrInvalidReaction),
		errors.Is(err, services.ErrInvalidResource),
		errors.Is(err, services.ErrInvalidReview),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrInvalidAnnouncement):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail renders a service error. 500s get a generic message; the real error
// goes to the log.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(dto.Error("Internal server error"))
	}
	return c.Status(status).JSON(dto.Error(err.Error()))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Error(message))
}

// validationFailed renders field-level validation errors so clients can
// attach messages to individual inputs.
func validationFailed(c *fiber.Ctx, errs []dto.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationError("Validation failed", errs))
}

// parsePagination reads page/limit query params, clamping limit to 100.
func parsePagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func parseID(c *fiber.Ctx, param string) (uint64, error) {
	return strconv.ParseUint(c.Params(param), 10, 64)
}

func paginated(items interface{}, total int64, page, limit int) dto.Response {
	return dto.Success(dto.Paginated{Items: items, Total: total, Page: page, Limit: limit})
}
