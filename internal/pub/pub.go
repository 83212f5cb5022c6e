package pub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PostingEvent is emitted after a successful create (never on replay).
type PostingEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"` // posting.transaction_created, posting.cashflow_created
	RecordID  string    `json:"record_id"`
	UserID    string    `json:"user_id"`
	ExtID     string    `json:"ext_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PostingEventPublisher pushes posting events to Kafka. A nil writer turns
// publishing into a no-op so tests and minimal deployments need no broker.
type PostingEventPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewPostingEventPublisher(writer *kafka.Writer, logger *zap.Logger) *PostingEventPublisher {
	return &PostingEventPublisher{writer: writer, logger: logger}
}

// Publish sends one event. Failures are logged and swallowed: event delivery
// must never fail a write that the database already committed.
func (p *PostingEventPublisher) Publish(ctx context.Context, eventType, recordID, userID, extID string) {
	if p == nil || p.writer == nil {
		return
	}

	event := PostingEvent{
		EventID:   ulid.Make().String(),
		EventType: eventType,
		RecordID:  recordID,
		UserID:    userID,
		ExtID:     extID,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("failed to marshal posting event", zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(recordID),
		Value: payload,
		Time:  event.Timestamp,
	})
	if err != nil {
		p.logger.Warn("failed to publish posting event",
			zap.String("event_type", eventType),
			zap.String("record_id", recordID),
			zap.Error(err))
	}
}
