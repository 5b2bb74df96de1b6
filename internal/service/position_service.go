package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/events"
	"github.com/spec-kit/resume-server/internal/persistence"
	"github.com/spec-kit/resume-server/internal/query"
	"github.com/spec-kit/resume-server/internal/repository"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

const positionStatsCacheKey = "resume-server:stats:positions"

// PositionService implements job posting operations behind the authorization
// policy.
type PositionService struct {
	positions  repository.PositionRepository
	dispatcher events.Dispatcher
	cache      *persistence.Redis
	logger     *zap.Logger
}

// NewPositionService builds the service.
func NewPositionService(positions repository.PositionRepository, dispatcher events.Dispatcher, cache *persistence.Redis, logger *zap.Logger) *PositionService {
	return &PositionService{positions: positions, dispatcher: dispatcher, cache: cache, logger: logger}
}

// List returns the caller-visible page of positions.
func (s *PositionService) List(ctx context.Context, principal *auth.Principal, in query.Input) ([]domain.Position, *Pagination, error) {
	spec, err := query.Build(repository.PositionFilterSchema, in)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error(), nil)
	}
	auth.ScopeVisibility(principal, spec, repository.PositionFilterSchema.OwnerColumn)

	records, total, err := s.positions.FindPage(ctx, spec)
	if err != nil {
		return nil, nil, err
	}
	return records, &Pagination{
		Total:      total,
		Page:       spec.Page,
		PageSize:   spec.PageSize,
		TotalPages: spec.TotalPages(total),
	}, nil
}

// Get loads one position, enforcing the ownership gate.
func (s *PositionService) Get(ctx context.Context, principal *auth.Principal, id int64) (*domain.Position, error) {
	position, err := s.positions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("position", nil)
		}
		return nil, err
	}
	if !auth.CanAccess(principal, position.UserID) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return position, nil
}

// PositionCreateInput carries creation fields.
type PositionCreateInput struct {
	PositionName    string
	Department      string
	Description     *string
	Requirements    *string
	SalaryMin       *int64
	SalaryMax       *int64
	WorkLocation    *string
	WorkType        domain.WorkType
	ExperienceLevel domain.ExperienceLevel
	Remarks         *string
}

// Create stores a new draft position owned by the caller.
func (s *PositionService) Create(ctx context.Context, principal *auth.Principal, in PositionCreateInput) (*domain.Position, error) {
	name := strings.TrimSpace(in.PositionName)
	department := strings.TrimSpace(in.Department)
	if name == "" || department == "" {
		return nil, apperrors.NewValidationError("positionName and department required", nil)
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMax < *in.SalaryMin {
		return nil, apperrors.NewValidationError("salaryMax must be greater than salaryMin", nil)
	}

	workType := in.WorkType
	if workType == "" {
		workType = domain.WorkTypeFullTime
	}
	level := in.ExperienceLevel
	if level == "" {
		level = domain.ExperienceMid
	}

	position := &domain.Position{
		UserID:          principal.ID(),
		PositionName:    name,
		Department:      department,
		Description:     in.Description,
		Requirements:    in.Requirements,
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		WorkLocation:    in.WorkLocation,
		WorkType:        workType,
		ExperienceLevel: level,
		Status:          domain.PositionStatusDraft,
		Remarks:         in.Remarks,
	}
	if err := s.positions.Create(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

// PositionUpdateInput carries partial update fields; nil leaves a field
// unchanged.
type PositionUpdateInput struct {
	PositionName    *string
	Department      *string
	Description     *string
	Requirements    *string
	SalaryMin       *int64
	SalaryMax       *int64
	WorkLocation    *string
	WorkType        *domain.WorkType
	ExperienceLevel *domain.ExperienceLevel
	Status          *domain.PositionStatus
	Remarks         *string
}

// Update applies a partial update behind the ownership gate. An admin
// publishing stamps publish time and publisher; closing stamps close time.
// Stamps land in the same write as the update.
func (s *PositionService) Update(ctx context.Context, principal *auth.Principal, id int64, in PositionUpdateInput) (*domain.Position, error) {
	position, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	oldStatus := position.Status
	if in.PositionName != nil && strings.TrimSpace(*in.PositionName) != "" {
		position.PositionName = strings.TrimSpace(*in.PositionName)
	}
	if in.Department != nil && strings.TrimSpace(*in.Department) != "" {
		position.Department = strings.TrimSpace(*in.Department)
	}
	if in.Description != nil {
		position.Description = in.Description
	}
	if in.Requirements != nil {
		position.Requirements = in.Requirements
	}
	if in.SalaryMin != nil {
		position.SalaryMin = in.SalaryMin
	}
	if in.SalaryMax != nil {
		position.SalaryMax = in.SalaryMax
	}
	if position.SalaryMin != nil && position.SalaryMax != nil && *position.SalaryMax < *position.SalaryMin {
		return nil, apperrors.NewValidationError("salaryMax must be greater than salaryMin", nil)
	}
	if in.WorkLocation != nil {
		position.WorkLocation = in.WorkLocation
	}
	if in.WorkType != nil {
		position.WorkType = *in.WorkType
	}
	if in.ExperienceLevel != nil {
		position.ExperienceLevel = *in.ExperienceLevel
	}
	if in.Remarks != nil {
		position.Remarks = in.Remarks
	}

	statusChanged := in.Status != nil && *in.Status != oldStatus
	if statusChanged {
		if !domain.ValidPositionStatus(*in.Status) {
			return nil, apperrors.NewValidationError("invalid position status", nil)
		}
		position.Status = *in.Status
		now := time.Now()
		if principal.IsAdmin() && position.Status == domain.PositionStatusPublished {
			publisherID := principal.ID()
			position.PublishTime = &now
			position.PublisherID = &publisherID
		}
		if position.Status == domain.PositionStatusClosed {
			position.CloseTime = &now
		}
	}

	if err := s.positions.Update(ctx, position); err != nil {
		return nil, err
	}

	if statusChanged {
		s.publishStatusChange(ctx, principal, position.ID, oldStatus, position.Status)
	}
	return position, nil
}

// Delete removes a position behind the ownership gate.
func (s *PositionService) Delete(ctx context.Context, principal *auth.Principal, id int64) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	if err := s.positions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("position", nil)
		}
		return err
	}
	return nil
}

// BatchStatus updates many positions at once, stamping the acting admin on
// publish and the close time on close. Admin-gated at the route.
func (s *PositionService) BatchStatus(ctx context.Context, principal *auth.Principal, ids []int64, status domain.PositionStatus, remarks *string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("position ids are required", nil)
	}
	if !domain.ValidPositionStatus(status) {
		return 0, apperrors.NewValidationError("invalid position status", nil)
	}

	update := repository.PositionStatusUpdate{Status: status, Remarks: remarks}
	now := time.Now()
	switch status {
	case domain.PositionStatusPublished:
		publisherID := principal.ID()
		update.PublishTime = &now
		update.PublisherID = &publisherID
	case domain.PositionStatusClosed:
		update.CloseTime = &now
	}

	affected, err := s.positions.BatchStatus(ctx, ids, update)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		s.publishStatusChange(ctx, principal, id, "", status)
	}
	return affected, nil
}

// Stats returns the admin overview, cached briefly in Redis.
func (s *PositionService) Stats(ctx context.Context) (*repository.PositionStats, error) {
	return cachedStats(ctx, s.cache, s.logger, positionStatsCacheKey, s.positions.Stats)
}

func (s *PositionService) publishStatusChange(ctx context.Context, principal *auth.Principal, id int64, oldStatus, newStatus domain.PositionStatus) {
	if s.dispatcher == nil {
		return
	}
	eventType := events.EventPositionStatusChanged
	switch newStatus {
	case domain.PositionStatusPublished:
		eventType = events.EventPositionPublished
	case domain.PositionStatusClosed:
		eventType = events.EventPositionClosed
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: id,
		ActorID:    principal.ID(),
		Timestamp:  time.Now(),
		Payload: events.PositionStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}
