// Package emitter delivers the side effects of a committed state change:
// the activity log entry and the user notification. Both are fire and
// forget. A failure is logged and never reaches the caller.
package emitter

import (
	"context"

	"care-app-go/internal/domain/audit"
	"care-app-go/internal/domain/notification"
	"care-app-go/pkg/logger"
)

// Sink is what the workflows depend on. Neither method reports failure.
type Sink interface {
	Record(ctx context.Context, entry audit.Entry)
	Notify(ctx context.Context, input notification.NotifyInput)
}

type Recorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

type Notifier interface {
	Notify(ctx context.Context, input notification.NotifyInput) (*notification.Notification, error)
}

type Emitter struct {
	recorder Recorder
	notifier Notifier
	log      logger.Logger
}

func New(recorder Recorder, notifier Notifier, log logger.Logger) *Emitter {
	if log == nil {
		log = logger.Nop()
	}
	return &Emitter{recorder: recorder, notifier: notifier, log: log}
}

func (e *Emitter) Record(ctx context.Context, entry audit.Entry) {
	if e == nil || e.recorder == nil {
		return
	}
	if err := e.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		e.log.InternalError("activity log write failed", err,
			"action", string(entry.Action),
			"actor_id", entry.ActorID,
		)
	}
}

func (e *Emitter) Notify(ctx context.Context, input notification.NotifyInput) {
	if e == nil || e.notifier == nil {
		return
	}
	if _, err := e.notifier.Notify(context.WithoutCancel(ctx), input); err != nil {
		e.log.InternalError("notification write failed", err,
			"recipient_id", input.RecipientID,
			"type", input.Type,
		)
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Record(context.Context, audit.Entry)             {}
func (Nop) Notify(context.Context, notification.NotifyInput) {}
