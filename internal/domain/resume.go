package domain

import "time"

// ResumeStatus enumerates review lifecycle states for resumes.
type ResumeStatus string

const (
	ResumeStatusPending  ResumeStatus = "pending"
	ResumeStatusReviewed ResumeStatus = "reviewed"
	ResumeStatusApproved ResumeStatus = "approved"
	ResumeStatusRejected ResumeStatus = "rejected"
)

// ValidResumeStatus reports whether s is a known status value.
func ValidResumeStatus(s ResumeStatus) bool {
	switch s {
	case ResumeStatusPending, ResumeStatusReviewed, ResumeStatusApproved, ResumeStatusRejected:
		return true
	}
	return false
}

// Resume is the aggregate for uploaded candidate resumes.
type Resume struct {
	ID            int64
	UserID        int64
	ResumeName    string
	CandidateName string
	Phone         *string
	Email         *string
	FilePath      *string
	FileName      *string
	FileSize      *int64
	AIScore       *float64
	Status        ResumeStatus
	UploadTime    time.Time
	ReviewTime    *time.Time
	ReviewerID    *int64
	Remarks       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
