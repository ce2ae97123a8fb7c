package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
)

const notificationColumns = `id, employee_id, message, is_read, is_manager_notification, related_vacation_id, created_at, published_at`

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, employee_id, message, is_read, is_manager_notification, related_vacation_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		n.ID,
		n.EmployeeID,
		n.Message,
		n.IsRead,
		n.IsManagerNotification,
		nullString(n.RelatedVacationID),
		FormatTimestamp(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) query(ctx context.Context, query string, args ...any) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var (
			n           notification.Notification
			related     sql.NullString
			createdAt   string
			publishedAt sql.NullString
		)
		err := rows.Scan(
			&n.ID,
			&n.EmployeeID,
			&n.Message,
			&n.IsRead,
			&n.IsManagerNotification,
			&related,
			&createdAt,
			&publishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.RelatedVacationID = stringPtr(related)
		if n.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			at, err := parseTimestamp(publishedAt.String)
			if err != nil {
				return nil, err
			}
			n.PublishedAt = &at
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// ListByEmployee retrieves notifications of an employee, newest first
func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE employee_id = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id`

	notifications, err := r.query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread returns the count of unread notifications
func (r *notificationRepository) CountUnread(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE employee_id = ? AND is_read = 0`, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get unread count: %w", err)
	}
	return count, nil
}

// MarkAsRead marks notifications of employeeID as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, employeeID string) error {
	if len(ids) == 0 {
		return notification.ErrNotificationNotFound
	}

	q := GetQuerier(ctx, r.db)

	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, employeeID)

	query := `UPDATE notifications SET is_read = 1 WHERE id IN (` + placeholders(len(ids)) + `) AND employee_id = ?`

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	if affected == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// ListUnpublished returns the oldest notifications not relayed yet
func (r *notificationRepository) ListUnpublished(ctx context.Context, limit int) ([]notification.Notification, error) {
	query := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT ?`

	notifications, err := r.query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpublished notifications: %w", err)
	}
	return notifications, nil
}

// MarkPublished stamps published_at on the given notifications
func (r *notificationRepository) MarkPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	args := make([]any, 0, len(ids)+1)
	args = append(args, FormatTimestamp(at))
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := q.ExecContext(ctx, `UPDATE notifications SET published_at = ? WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notifications published: %w", err)
	}
	return nil
}
