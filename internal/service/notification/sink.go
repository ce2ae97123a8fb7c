package notification

import (
	"context"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
)

// outboxSink stores notifications in the caller's transaction. The relay
// delivers them after commit.
type outboxSink struct {
	repo notification.Repository
}

func NewOutboxSink(repo notification.Repository) notification.Sink {
	return &outboxSink{repo: repo}
}

// Emit implements notification.Sink.
func (s *outboxSink) Emit(ctx context.Context, n notification.Notification) error {
	if n.EmployeeID == "" {
		return notification.ErrNoRecipient
	}
	return s.repo.Create(ctx, n)
}
