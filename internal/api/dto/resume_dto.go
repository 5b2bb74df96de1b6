package dto

import (
	"time"

	"github.com/spec-kit/resume-server/internal/domain"
)

// ResumeListRequest payload for POST /resumes/list.
type ResumeListRequest struct {
	ListRequest
	Status        string `json:"status"`
	ResumeName    string `json:"resumeName"`
	CandidateName string `json:"candidateName"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// NamedFilters returns the request's named filter fields.
func (r ResumeListRequest) NamedFilters() map[string]string {
	return map[string]string{
		"status":        r.Status,
		"resumeName":    r.ResumeName,
		"candidateName": r.CandidateName,
		"phone":         r.Phone,
		"email":         r.Email,
	}
}

// CreateResumeRequest payload.
type CreateResumeRequest struct {
	ResumeName    string   `json:"resumeName"`
	CandidateName string   `json:"candidateName"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	FilePath      *string  `json:"filePath"`
	FileName      *string  `json:"fileName"`
	FileSize      *int64   `json:"fileSize"`
	AIScore       *float64 `json:"aiScore"`
	Remarks       *string  `json:"remarks"`
}

// UpdateResumeRequest payload; absent fields stay unchanged.
type UpdateResumeRequest struct {
	ResumeName    *string              `json:"resumeName"`
	CandidateName *string              `json:"candidateName"`
	Phone         *string              `json:"phone"`
	Email         *string              `json:"email"`
	FilePath      *string              `json:"filePath"`
	FileName      *string              `json:"fileName"`
	FileSize      *int64               `json:"fileSize"`
	AIScore       *float64             `json:"aiScore"`
	Status        *domain.ResumeStatus `json:"status"`
	Remarks       *string              `json:"remarks"`
}

// BatchResumeStatusRequest payload for PATCH /resumes/batch-status.
type BatchResumeStatusRequest struct {
	ResumeIDs []int64             `json:"resumeIds"`
	Status    domain.ResumeStatus `json:"status"`
	Remarks   *string             `json:"remarks"`
}

// ResumeResponse is the API projection of a resume.
type ResumeResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"userId"`
	ResumeName    string              `json:"resumeName"`
	CandidateName string              `json:"candidateName"`
	Phone         *string             `json:"phone,omitempty"`
	Email         *string             `json:"email,omitempty"`
	FilePath      *string             `json:"filePath,omitempty"`
	FileName      *string             `json:"fileName,omitempty"`
	FileSize      *int64              `json:"fileSize,omitempty"`
	AIScore       *float64            `json:"aiScore,omitempty"`
	Status        domain.ResumeStatus `json:"status"`
	UploadTime    time.Time           `json:"uploadTime"`
	ReviewTime    *time.Time          `json:"reviewTime,omitempty"`
	ReviewerID    *int64              `json:"reviewerId,omitempty"`
	Remarks       *string             `json:"remarks,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// NewResumeResponse maps a domain resume to its response shape.
func NewResumeResponse(resume *domain.Resume) ResumeResponse {
	return ResumeResponse{
		ID:            resume.ID,
		UserID:        resume.UserID,
		ResumeName:    resume.ResumeName,
		CandidateName: resume.CandidateName,
		Phone:         resume.Phone,
		Email:         resume.Email,
		FilePath:      resume.FilePath,
		FileName:      resume.FileName,
		FileSize:      resume.FileSize,
		AIScore:       resume.AIScore,
		Status:        resume.Status,
		UploadTime:    resume.UploadTime,
		ReviewTime:    resume.ReviewTime,
		ReviewerID:    resume.ReviewerID,
		Remarks:       resume.Remarks,
		CreatedAt:     resume.CreatedAt,
		UpdatedAt:     resume.UpdatedAt,
	}
}
