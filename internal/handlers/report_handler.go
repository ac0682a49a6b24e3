package handlers

import (
	"strconv"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/campushare/campushare-backend/internal/entity"
	"github.com/campushare/campushare-backend/internal/models"
	"github.com/campushare/campushare-backend/internal/principal"
	"github.com/campushare/campushare-backend/internal/repository"
	"github.com/campushare/campushare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
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
	if !validReportReason(req.Reason) {
		errs = append(errs, dto.FieldError{Field: "reason", Message: "reason must be one of plagiarism, abuse, spam, other"})
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ref := entity.Ref{Type: entityType, ID: req.EntityID}
	report, err := h.reportService.Create(principal.UserID(c), ref, req.Reason, req.Details)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Success(report))
}

func validReportReason(reason string) bool {
	switch reason {
	case models.ReportReasonPlagiarism, models.ReportReasonAbuse,
		models.ReportReasonSpam, models.ReportReasonOther:
		return true
	}
	return false
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	reporterID, _ := strconv.ParseUint(c.Query("reporter_id", "0"), 10, 64)

	filter := repository.ReportFilter{
		Status:     c.Query("status"),
		EntityType: c.Query("entity_type"),
		Reason:     c.Query("reason"),
		ReporterID: reporterID,
		Page:       page,
		Limit:      limit,
	}

	reports, total, err := h.reportService.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(reports, total, page, limit))
}

func (h *ReportHandler) My(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	reports, total, err := h.reportService.ListMine(principal.UserID(c), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(reports, total, page, limit))
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Success(report))
}

func (h *ReportHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.SetReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.reportService.SetStatus(id, req.Status); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Report status updated", nil))
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	if err := h.reportService.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SuccessMessage("Report deleted", nil))
}
