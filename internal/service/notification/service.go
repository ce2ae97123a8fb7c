package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	BatchSize int // default: 100
}

type service struct {
	repo      notification.Repository
	hub       *sse.Hub
	publisher notification.Publisher
	clock     calendar.Clock
	logger    *slog.Logger
	config    Config
}

// NewNotificationService creates the notification service. publisher may be
// nil when no event stream is configured.
func NewNotificationService(
	repo notification.Repository,
	hub *sse.Hub,
	publisher notification.Publisher,
	clock calendar.Clock,
	logger *slog.Logger,
	cfg Config,
) notification.Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	return &service{
		repo:      repo,
		hub:       hub,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		config:    cfg,
	}
}

// RelayPending moves one batch of committed notifications to the event
// stream and to live subscribers. No transaction is held while the
// publisher runs. Delivery is at least once: a batch whose bookkeeping
// fails is sent again on the next run.
func (s *service) RelayPending(ctx context.Context) (int, error) {
	batch, err := s.repo.ListUnpublished(ctx, s.config.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, batch); err != nil {
			return 0, fmt.Errorf("publish notifications: %w", err)
		}
	}

	ids := make([]string, len(batch))
	for i, n := range batch {
		ids[i] = n.ID
	}
	if err := s.repo.MarkPublished(ctx, ids, s.clock.Now()); err != nil {
		return 0, err
	}

	for _, n := range batch {
		s.hub.Publish(n.EmployeeID, sse.Event{
			UserID: n.EmployeeID,
			Event:  "notification",
			Data:   notification.NewNotificationResponse(n),
		})
	}

	s.logger.Debug("notifications relayed", "count", len(batch))
	return len(batch), nil
}

// GetNotifications retrieves the caller's notifications
func (s *service) GetNotifications(ctx context.Context, employeeID string, unreadOnly bool) (notification.NotificationListResponse, error) {
	notifications, err := s.repo.ListByEmployee(ctx, employeeID, unreadOnly)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	unreadCount, err := s.repo.CountUnread(ctx, employeeID)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NewNotificationResponse(n)
	}

	return notification.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unreadCount,
	}, nil
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, employeeID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, employeeID)
}

// Subscribe creates an SSE subscription for an employee
func (s *service) Subscribe(ctx context.Context, employeeID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(employeeID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					select {
					case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}
