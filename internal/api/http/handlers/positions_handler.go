package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resume-server/internal/api/dto"
	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/query"
	"github.com/spec-kit/resume-server/internal/service"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

// PositionsHandler manages job posting endpoints.
type PositionsHandler struct {
	positions *service.PositionService
}

// NewPositionsHandler constructs handler.
func NewPositionsHandler(positionService *service.PositionService) *PositionsHandler {
	return &PositionsHandler{positions: positionService}
}

// List handles POST /positions/list.
func (h *PositionsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PositionListRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	records, pagination, err := h.positions.List(c.UserContext(), principal, query.Input{
		Page:      req.Page,
		PageSize:  req.EffectivePageSize(),
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Filters:   req.MergedFilters(req.NamedFilters()),
	})
	if err != nil {
		return err
	}

	items := make([]dto.PositionResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewPositionResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"positions": items, "pagination": pagination})
}

// Detail handles POST /positions/detail.
func (h *PositionsHandler) Detail(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.DetailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	position, err := h.positions.Get(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"position": dto.NewPositionResponse(position)})
}

// Create handles POST /positions/create.
func (h *PositionsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreatePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	position, err := h.positions.Create(c.UserContext(), principal, service.PositionCreateInput{
		PositionName:    req.PositionName,
		Department:      req.Department,
		Description:     req.Description,
		Requirements:    req.Requirements,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		WorkLocation:    req.WorkLocation,
		WorkType:        req.WorkType,
		ExperienceLevel: req.ExperienceLevel,
		Remarks:         req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"position": dto.NewPositionResponse(position)})
}

// Update handles PUT /positions/:id.
func (h *PositionsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	position, err := h.positions.Update(c.UserContext(), principal, id, service.PositionUpdateInput{
		PositionName:    req.PositionName,
		Department:      req.Department,
		Description:     req.Description,
		Requirements:    req.Requirements,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		WorkLocation:    req.WorkLocation,
		WorkType:        req.WorkType,
		ExperienceLevel: req.ExperienceLevel,
		Status:          req.Status,
		Remarks:         req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"position": dto.NewPositionResponse(position)})
}

// Delete handles POST /positions/delete.
func (h *PositionsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	if err := h.positions.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Position deleted successfully"})
}

// BatchStatus handles PATCH /positions/batch-status (admin).
func (h *PositionsHandler) BatchStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.BatchPositionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	affected, err := h.positions.BatchStatus(c.UserContext(), principal, req.PositionIDs, req.Status, req.Remarks)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":       "position statuses updated",
		"affectedCount": affected,
	})
}

// Stats handles GET /positions/stats/overview (admin).
func (h *PositionsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.positions.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": stats})
}
