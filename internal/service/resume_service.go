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

const resumeStatsCacheKey = "resume-server:stats:resumes"

// ResumeService implements resume operations behind the authorization
// policy.
type ResumeService struct {
	resumes    repository.ResumeRepository
	dispatcher events.Dispatcher
	cache      *persistence.Redis
	logger     *zap.Logger
}

// NewResumeService builds the service.
func NewResumeService(resumes repository.ResumeRepository, dispatcher events.Dispatcher, cache *persistence.Redis, logger *zap.Logger) *ResumeService {
	return &ResumeService{resumes: resumes, dispatcher: dispatcher, cache: cache, logger: logger}
}

// List returns the caller-visible page of resumes.
func (s *ResumeService) List(ctx context.Context, principal *auth.Principal, in query.Input) ([]domain.Resume, *Pagination, error) {
	spec, err := query.Build(repository.ResumeFilterSchema, in)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error(), nil)
	}
	auth.ScopeVisibility(principal, spec, repository.ResumeFilterSchema.OwnerColumn)

	records, total, err := s.resumes.FindPage(ctx, spec)
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

// Get loads one resume, enforcing the ownership gate against the stored
// owner id.
func (s *ResumeService) Get(ctx context.Context, principal *auth.Principal, id int64) (*domain.Resume, error) {
	resume, err := s.resumes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("resume", nil)
		}
		return nil, err
	}
	if !auth.CanAccess(principal, resume.UserID) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return resume, nil
}

// ResumeCreateInput carries creation fields; ownership comes from the
// caller, never the payload.
type ResumeCreateInput struct {
	ResumeName    string
	CandidateName string
	Phone         *string
	Email         *string
	FilePath      *string
	FileName      *string
	FileSize      *int64
	AIScore       *float64
	Remarks       *string
}

// Create stores a new pending resume owned by the caller.
func (s *ResumeService) Create(ctx context.Context, principal *auth.Principal, in ResumeCreateInput) (*domain.Resume, error) {
	name := strings.TrimSpace(in.ResumeName)
	candidate := strings.TrimSpace(in.CandidateName)
	if name == "" || candidate == "" {
		return nil, apperrors.NewValidationError("resumeName and candidateName required", nil)
	}

	resume := &domain.Resume{
		UserID:        principal.ID(),
		ResumeName:    name,
		CandidateName: candidate,
		Phone:         in.Phone,
		Email:         in.Email,
		FilePath:      in.FilePath,
		FileName:      in.FileName,
		FileSize:      in.FileSize,
		AIScore:       in.AIScore,
		Status:        domain.ResumeStatusPending,
		UploadTime:    time.Now(),
		Remarks:       in.Remarks,
	}
	if err := s.resumes.Create(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// ResumeUpdateInput carries partial update fields; nil leaves a field
// unchanged.
type ResumeUpdateInput struct {
	ResumeName    *string
	CandidateName *string
	Phone         *string
	Email         *string
	FilePath      *string
	FileName      *string
	FileSize      *int64
	AIScore       *float64
	Status        *domain.ResumeStatus
	Remarks       *string
}

// Update applies a partial update behind the ownership gate. An admin
// changing the status stamps review time and reviewer atomically with the
// update.
func (s *ResumeService) Update(ctx context.Context, principal *auth.Principal, id int64, in ResumeUpdateInput) (*domain.Resume, error) {
	resume, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	oldStatus := resume.Status
	if in.ResumeName != nil && strings.TrimSpace(*in.ResumeName) != "" {
		resume.ResumeName = strings.TrimSpace(*in.ResumeName)
	}
	if in.CandidateName != nil && strings.TrimSpace(*in.CandidateName) != "" {
		resume.CandidateName = strings.TrimSpace(*in.CandidateName)
	}
	if in.Phone != nil {
		resume.Phone = in.Phone
	}
	if in.Email != nil {
		resume.Email = in.Email
	}
	if in.FilePath != nil {
		resume.FilePath = in.FilePath
	}
	if in.FileName != nil {
		resume.FileName = in.FileName
	}
	if in.FileSize != nil {
		resume.FileSize = in.FileSize
	}
	if in.AIScore != nil {
		resume.AIScore = in.AIScore
	}
	if in.Remarks != nil {
		resume.Remarks = in.Remarks
	}

	statusChanged := in.Status != nil && *in.Status != oldStatus
	if statusChanged {
		if !domain.ValidResumeStatus(*in.Status) {
			return nil, apperrors.NewValidationError("invalid resume status", nil)
		}
		resume.Status = *in.Status
		if principal.IsAdmin() {
			now := time.Now()
			reviewerID := principal.ID()
			resume.ReviewTime = &now
			resume.ReviewerID = &reviewerID
		}
	}

	if err := s.resumes.Update(ctx, resume); err != nil {
		return nil, err
	}

	if statusChanged {
		s.publishStatusChange(ctx, principal, resume.ID, oldStatus, resume.Status)
	}
	return resume, nil
}

// Delete removes a resume behind the ownership gate.
func (s *ResumeService) Delete(ctx context.Context, principal *auth.Principal, id int64) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	if err := s.resumes.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("resume", nil)
		}
		return err
	}
	return nil
}

// BatchStatus updates many resumes at once, stamping the reviewing admin.
// Admin-gated at the route.
func (s *ResumeService) BatchStatus(ctx context.Context, principal *auth.Principal, ids []int64, status domain.ResumeStatus, remarks *string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("resume ids are required", nil)
	}
	if !domain.ValidResumeStatus(status) {
		return 0, apperrors.NewValidationError("invalid resume status", nil)
	}

	affected, err := s.resumes.BatchStatus(ctx, ids, repository.ResumeStatusUpdate{
		Status:     status,
		ReviewTime: time.Now(),
		ReviewerID: principal.ID(),
		Remarks:    remarks,
	})
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		s.publishStatusChange(ctx, principal, id, "", status)
	}
	return affected, nil
}

// Stats returns the admin overview, cached briefly in Redis.
func (s *ResumeService) Stats(ctx context.Context) (*repository.ResumeStats, error) {
	return cachedStats(ctx, s.cache, s.logger, resumeStatsCacheKey, s.resumes.Stats)
}

func (s *ResumeService) publishStatusChange(ctx context.Context, principal *auth.Principal, id int64, oldStatus, newStatus domain.ResumeStatus) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventResumeStatusChanged,
		ResourceID: id,
		ActorID:    principal.ID(),
		Timestamp:  time.Now(),
		Payload: events.ResumeStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}
