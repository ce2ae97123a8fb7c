package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const notificationColumns = `id, employee_id, message, is_read, is_manager_notification, related_vacation_id, created_at, published_at`

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, employee_id, message, is_read, is_manager_notification, related_vacation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		n.ID,
		n.EmployeeID,
		n.Message,
		n.IsRead,
		n.IsManagerNotification,
		n.RelatedVacationID,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func scanNotifications(rows pgx.Rows) ([]notification.Notification, error) {
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(
			&n.ID,
			&n.EmployeeID,
			&n.Message,
			&n.IsRead,
			&n.IsManagerNotification,
			&n.RelatedVacationID,
			&n.CreatedAt,
			&n.PublishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// ListByEmployee retrieves notifications of an employee, newest first
func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE employee_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return scanNotifications(rows)
}

// CountUnread returns the count of unread notifications
func (r *notificationRepository) CountUnread(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE employee_id = $1 AND is_read = FALSE`, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get unread count: %w", err)
	}
	return count, nil
}

// MarkAsRead marks notifications of employeeID as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = ANY($1) AND employee_id = $2
	`

	tag, err := q.Exec(ctx, query, ids, employeeID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// ListUnpublished returns the oldest notifications not relayed yet
func (r *notificationRepository) ListUnpublished(ctx context.Context, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpublished notifications: %w", err)
	}
	return scanNotifications(rows)
}

// MarkPublished stamps published_at on the given notifications
func (r *notificationRepository) MarkPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE notifications SET published_at = $1 WHERE id = ANY($2)`, at, ids)
	if err != nil {
		return fmt.Errorf("failed to mark notifications published: %w", err)
	}
	return nil
}
