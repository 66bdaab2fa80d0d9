package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tiktok/internal/delivery/context"
	"tiktok/internal/domain/entity"
	"tiktok/internal/domain/service"

	"github.com/google/uuid"
)

// eventEmitter publishes account events on a best-effort basis.
type eventEmitter struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

func newEventEmitter(publisher service.EventPublisher, logger *slog.Logger) *eventEmitter {
	return &eventEmitter{publisher: publisher, logger: logger}
}

func (e *eventEmitter) emit(ctx context.Context, eventType string, user *entity.User) {
	if e.publisher == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID:  deliverycontext.RequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}

	if err := e.publisher.PublishAccountEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, e.logger).Warn("Failed to publish account event",
			slog.String("event_type", eventType),
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}
