package notification

import (
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/validator"
)

// MarkAsReadRequest represents a request to mark notifications as read
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (r *MarkAsReadRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.NotificationIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "notification_ids",
			Message: "notification_ids must contain at least one id",
		})
	}
	for _, id := range r.NotificationIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "notification_ids",
				Message: "notification_ids must not contain empty values",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID                    string    `json:"id"`
	Message               string    `json:"message"`
	IsRead                bool      `json:"is_read"`
	IsManagerNotification bool      `json:"is_manager_notification"`
	RelatedVacationID     *string   `json:"related_vacation_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

func NewNotificationResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:                    n.ID,
		Message:               n.Message,
		IsRead:                n.IsRead,
		IsManagerNotification: n.IsManagerNotification,
		RelatedVacationID:     n.RelatedVacationID,
		CreatedAt:             n.CreatedAt,
	}
}

// NotificationListResponse represents the caller's notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
