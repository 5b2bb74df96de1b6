package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/resume-server/internal/events"
)

// NotificationService emits notifications for domain events. Delivery is a
// logging stub; the subscription wiring is real.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventResumeStatusChanged, n.handleResumeStatusChanged)
	n.dispatcher.Subscribe(events.EventPositionPublished, n.handlePositionPublished)
	n.dispatcher.Subscribe(events.EventPositionClosed, n.handlePositionClosed)
}

func (n *NotificationService) handleResumeStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("ResumeStatusChanged",
		zap.Int64("resume_id", event.ResourceID),
		zap.Int64("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePositionPublished(_ context.Context, event events.Event) error {
	n.logger.Info("PositionPublished",
		zap.Int64("position_id", event.ResourceID),
		zap.Int64("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePositionClosed(_ context.Context, event events.Event) error {
	n.logger.Info("PositionClosed",
		zap.Int64("position_id", event.ResourceID),
		zap.Int64("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
