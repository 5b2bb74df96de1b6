package dto

import (
	"time"

	"github.com/spec-kit/resume-server/internal/domain"
)

// PositionListRequest payload for POST /positions/list.
type PositionListRequest struct {
	ListRequest
	Status          string `json:"status"`
	Department      string `json:"department"`
	WorkType        string `json:"workType"`
	ExperienceLevel string `json:"experienceLevel"`
	PositionName    string `json:"positionName"`
	WorkLocation    string `json:"workLocation"`
}

// NamedFilters returns the request's named filter fields.
func (r PositionListRequest) NamedFilters() map[string]string {
	return map[string]string{
		"status":          r.Status,
		"department":      r.Department,
		"workType":        r.WorkType,
		"experienceLevel": r.ExperienceLevel,
		"positionName":    r.PositionName,
		"workLocation":    r.WorkLocation,
	}
}

// CreatePositionRequest payload.
type CreatePositionRequest struct {
	PositionName    string                 `json:"positionName"`
	Department      string                 `json:"department"`
	Description     *string                `json:"description"`
	Requirements    *string                `json:"requirements"`
	SalaryMin       *int64                 `json:"salaryMin"`
	SalaryMax       *int64                 `json:"salaryMax"`
	WorkLocation    *string                `json:"workLocation"`
	WorkType        domain.WorkType        `json:"workType"`
	ExperienceLevel domain.ExperienceLevel `json:"experienceLevel"`
	Remarks         *string                `json:"remarks"`
}

// UpdatePositionRequest payload; absent fields stay unchanged.
type UpdatePositionRequest struct {
	PositionName    *string                 `json:"positionName"`
	Department      *string                 `json:"department"`
	Description     *string                 `json:"description"`
	Requirements    *string                 `json:"requirements"`
	SalaryMin       *int64                  `json:"salaryMin"`
	SalaryMax       *int64                  `json:"salaryMax"`
	WorkLocation    *string                 `json:"workLocation"`
	WorkType        *domain.WorkType        `json:"workType"`
	ExperienceLevel *domain.ExperienceLevel `json:"experienceLevel"`
	Status          *domain.PositionStatus  `json:"status"`
	Remarks         *string                 `json:"remarks"`
}

// BatchPositionStatusRequest payload for PATCH /positions/batch-status.
type BatchPositionStatusRequest struct {
	PositionIDs []int64               `json:"positionIds"`
	Status      domain.PositionStatus `json:"status"`
	Remarks     *string               `json:"remarks"`
}

// PositionResponse is the API projection of a position.
type PositionResponse struct {
	ID              int64                  `json:"id"`
	UserID          int64                  `json:"userId"`
	PositionName    string                 `json:"positionName"`
	Department      string                 `json:"department"`
	Description     *string                `json:"description,omitempty"`
	Requirements    *string                `json:"requirements,omitempty"`
	SalaryMin       *int64                 `json:"salaryMin,omitempty"`
	SalaryMax       *int64                 `json:"salaryMax,omitempty"`
	WorkLocation    *string                `json:"workLocation,omitempty"`
	WorkType        domain.WorkType        `json:"workType"`
	ExperienceLevel domain.ExperienceLevel `json:"experienceLevel"`
	Status          domain.PositionStatus  `json:"status"`
	PublishTime     *time.Time             `json:"publishTime,omitempty"`
	CloseTime       *time.Time             `json:"closeTime,omitempty"`
	PublisherID     *int64                 `json:"publisherId,omitempty"`
	Remarks         *string                `json:"remarks,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// NewPositionResponse maps a domain position to its response shape.
func NewPositionResponse(position *domain.Position) PositionResponse {
	return PositionResponse{
		ID:              position.ID,
		UserID:          position.UserID,
		PositionName:    position.PositionName,
		Department:      position.Department,
		Description:     position.Description,
		Requirements:    position.Requirements,
		SalaryMin:       position.SalaryMin,
		SalaryMax:       position.SalaryMax,
		WorkLocation:    position.WorkLocation,
		WorkType:        position.WorkType,
		ExperienceLevel: position.ExperienceLevel,
		Status:          position.Status,
		PublishTime:     position.PublishTime,
		CloseTime:       position.CloseTime,
		PublisherID:     position.PublisherID,
		Remarks:         position.Remarks,
		CreatedAt:       position.CreatedAt,
		UpdatedAt:       position.UpdatedAt,
	}
}
