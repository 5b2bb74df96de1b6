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

// ResumesHandler manages resume endpoints.
type ResumesHandler struct {
	resumes *service.ResumeService
}

// NewResumesHandler constructs handler.
func NewResumesHandler(resumeService *service.ResumeService) *ResumesHandler {
	return &ResumesHandler{resumes: resumeService}
}

// List handles POST /resumes/list.
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ResumeListRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	records, pagination, err := h.resumes.List(c.UserContext(), principal, query.Input{
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

	items := make([]dto.ResumeResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewResumeResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"resumes": items, "pagination": pagination})
}

// Detail handles POST /resumes/detail.
func (h *ResumesHandler) Detail(c *fiber.Ctx) error {
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

	resume, err := h.resumes.Get(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"resume": dto.NewResumeResponse(resume)})
}

// Create handles POST /resumes/create.
func (h *ResumesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	resume, err := h.resumes.Create(c.UserContext(), principal, service.ResumeCreateInput{
		ResumeName:    req.ResumeName,
		CandidateName: req.CandidateName,
		Phone:         req.Phone,
		Email:         req.Email,
		FilePath:      req.FilePath,
		FileName:      req.FileName,
		FileSize:      req.FileSize,
		AIScore:       req.AIScore,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"resume": dto.NewResumeResponse(resume)})
}

// Update handles PUT /resumes/:id.
func (h *ResumesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	resume, err := h.resumes.Update(c.UserContext(), principal, id, service.ResumeUpdateInput{
		ResumeName:    req.ResumeName,
		CandidateName: req.CandidateName,
		Phone:         req.Phone,
		Email:         req.Email,
		FilePath:      req.FilePath,
		FileName:      req.FileName,
		FileSize:      req.FileSize,
		AIScore:       req.AIScore,
		Status:        req.Status,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"resume": dto.NewResumeResponse(resume)})
}

// Delete handles POST /resumes/delete.
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
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

	if err := h.resumes.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Resume deleted successfully"})
}

// BatchStatus handles PATCH /resumes/batch-status (admin).
func (h *ResumesHandler) BatchStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.BatchResumeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	affected, err := h.resumes.BatchStatus(c.UserContext(), principal, req.ResumeIDs, req.Status, req.Remarks)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":       "resume statuses updated",
		"affectedCount": affected,
	})
}

// Stats handles GET /resumes/stats/overview (admin).
func (h *ResumesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.resumes.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": stats})
}
