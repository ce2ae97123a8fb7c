package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	kafkago "github.com/segmentio/kafka-go"
)

const eventNotificationCreated = "notification.created"

// MessageWriter is the subset of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewWriter builds a writer that keys messages by employee so one
// employee's notifications stay ordered within a partition.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

type notificationEvent struct {
	ID                    string    `json:"id"`
	EmployeeID            string    `json:"employee_id"`
	Message               string    `json:"message"`
	IsManagerNotification bool      `json:"is_manager_notification"`
	RelatedVacationID     *string   `json:"related_vacation_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// Publisher forwards notifications to a Kafka topic.
type Publisher struct {
	writer MessageWriter
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

var _ notification.Publisher = (*Publisher)(nil)

// Publish implements notification.Publisher.
func (p *Publisher) Publish(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(notifications))
	for _, n := range notifications {
		payload, err := json.Marshal(notificationEvent{
			ID:                    n.ID,
			EmployeeID:            n.EmployeeID,
			Message:               n.Message,
			IsManagerNotification: n.IsManagerNotification,
			RelatedVacationID:     n.RelatedVacationID,
			CreatedAt:             n.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal notification %s: %w", n.ID, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(n.EmployeeID),
			Value: payload,
			Headers: []kafkago.Header{
				{Key: "event_type", Value: []byte(eventNotificationCreated)},
				{Key: "aggregate_type", Value: []byte("employee")},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d notifications to kafka: %w", len(msgs), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
