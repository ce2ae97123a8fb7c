package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n Notification) error
	ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, employeeID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, employeeID string) error

	// Outbox side, used by the relay.
	ListUnpublished(ctx context.Context, limit int) ([]Notification, error)
	MarkPublished(ctx context.Context, ids []string, at time.Time) error
}

// Sink accepts notifications produced by the vacation engine. Emit joins
// the caller's transaction when one is open on ctx.
type Sink interface {
	Emit(ctx context.Context, n Notification) error
}

// Publisher forwards committed notifications to an external stream.
type Publisher interface {
	Publish(ctx context.Context, notifications []Notification) error
}
