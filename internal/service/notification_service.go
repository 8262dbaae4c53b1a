package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/eats-service/internal/events"
)

// NotificationService observes account lifecycle events. Delivery of the
// verification email itself happens inline in AccountService; this layer only
// records what happened.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountCreated, n.handleAccountCreated)
	n.dispatcher.Subscribe(events.EventProfileUpdated, n.handleProfileUpdated)
	n.dispatcher.Subscribe(events.EventEmailVerified, n.handleEmailVerified)
}

func (n *NotificationService) handleAccountCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("AccountCreated", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleProfileUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("ProfileUpdated", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleEmailVerified(ctx context.Context, event events.Event) error {
	n.logger.Info("EmailVerified", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}
