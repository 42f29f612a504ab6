package notification

import "context"

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// SetRead updates one notification owned by recipientID and returns
	// ErrNotificationNotFound when no such row exists.
	SetRead(ctx context.Context, recipientID, id string, isRead bool) (*Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}
