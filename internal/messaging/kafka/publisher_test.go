package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/vacation-planner-go/internal/domain/notification"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewPublisher(w)

	vacationID := "vac-1"
	created := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), []notification.Notification{
		{ID: "n-1", EmployeeID: "emp-1", Message: "Your vacation request is approved", RelatedVacationID: &vacationID, CreatedAt: created},
		{ID: "n-2", EmployeeID: "mgr-1", Message: "New vacation request from Ann Lee", IsManagerNotification: true, CreatedAt: created},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	assert.Equal(t, []byte("emp-1"), w.msgs[0].Key)
	assert.Equal(t, "event_type", w.msgs[0].Headers[0].Key)
	assert.Equal(t, []byte(eventNotificationCreated), w.msgs[0].Headers[0].Value)

	var event notificationEvent
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &event))
	assert.Equal(t, "n-2", event.ID)
	assert.True(t, event.IsManagerNotification)
	assert.Nil(t, event.RelatedVacationID)
}

func TestPublisher_WriteError(t *testing.T) {
	p := NewPublisher(&recordingWriter{err: errors.New("leader not available")})

	err := p.Publish(context.Background(), []notification.Notification{{ID: "n-1", EmployeeID: "emp-1"}})
	assert.ErrorContains(t, err, "leader not available")
}

func TestPublisher_EmptyBatch(t *testing.T) {
	w := &recordingWriter{err: errors.New("must not be called")}
	assert.NoError(t, NewPublisher(w).Publish(context.Background(), nil))
}
