package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoRecipient          = errors.New("notification has no recipient")
)
