package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	GetNotifications(ctx context.Context, employeeID string, unreadOnly bool) (NotificationListResponse, error)
	MarkAsRead(ctx context.Context, employeeID string, req MarkAsReadRequest) error

	// Subscribe streams notifications for employeeID until ctx ends or
	// the returned cleanup is called.
	Subscribe(ctx context.Context, employeeID string) (<-chan SSEEvent, func())

	// RelayPending publishes committed notifications that have not been
	// delivered yet and returns how many were marked published.
	RelayPending(ctx context.Context) (int, error)
}
