package domain

import "time"

// PositionStatus enumerates publication lifecycle states for job postings.
type PositionStatus string

const (
	PositionStatusDraft     PositionStatus = "draft"
	PositionStatusPublished PositionStatus = "published"
	PositionStatusPaused    PositionStatus = "paused"
	PositionStatusClosed    PositionStatus = "closed"
)

// ValidPositionStatus reports whether s is a known status value.
func ValidPositionStatus(s PositionStatus) bool {
	switch s {
	case PositionStatusDraft, PositionStatusPublished, PositionStatusPaused, PositionStatusClosed:
		return true
	}
	return false
}

// WorkType enumerates employment arrangements.
type WorkType string

const (
	WorkTypeFullTime   WorkType = "full-time"
	WorkTypePartTime   WorkType = "part-time"
	WorkTypeContract   WorkType = "contract"
	WorkTypeInternship WorkType = "internship"
)

// ExperienceLevel enumerates seniority bands.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

// Position is the aggregate for job postings.
type Position struct {
	ID              int64
	UserID          int64
	PositionName    string
	Department      string
	Description     *string
	Requirements    *string
	SalaryMin       *int64
	SalaryMax       *int64
	WorkLocation    *string
	WorkType        WorkType
	ExperienceLevel ExperienceLevel
	Status          PositionStatus
	PublishTime     *time.Time
	CloseTime       *time.Time
	PublisherID     *int64
	Remarks         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
