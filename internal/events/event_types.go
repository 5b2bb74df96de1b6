package events

import (
	"time"

	"github.com/spec-kit/resume-server/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventResumeStatusChanged   EventType = "resume_status_changed"
	EventPositionStatusChanged EventType = "position_status_changed"
	EventPositionPublished     EventType = "position_published"
	EventPositionClosed        EventType = "position_closed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID int64       `json:"resource_id"`
	ActorID    int64       `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ResumeStatusChangedPayload payload.
type ResumeStatusChangedPayload struct {
	OldStatus domain.ResumeStatus `json:"old_status"`
	NewStatus domain.ResumeStatus `json:"new_status"`
	Remarks   string              `json:"remarks,omitempty"`
}

// PositionStatusChangedPayload payload.
type PositionStatusChangedPayload struct {
	OldStatus domain.PositionStatus `json:"old_status"`
	NewStatus domain.PositionStatus `json:"new_status"`
}
