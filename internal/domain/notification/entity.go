package notification

import (
	"time"
)

// Notification represents a notification entity. PublishedAt is set once the
// relay has pushed it to live subscribers and the event stream.
type Notification struct {
	ID                    string
	EmployeeID            string
	Message               string
	IsRead                bool
	IsManagerNotification bool
	RelatedVacationID     *string
	CreatedAt             time.Time
	PublishedAt           *time.Time
}
