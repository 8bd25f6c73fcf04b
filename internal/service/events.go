package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/courtside/platform/internal/domain"
)

const publishTimeout = 3 * time.Second

// EventPublisher sends a keyed message to a topic. infra.KafkaProducer
// satisfies it and only queues, so publishing stays off the broker's
// latency path.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// publishBestEffort is a non-fatal side effect: the write that produced the
// event has already committed, so a publish failure is logged and dropped.
func publishBestEffort(ctx context.Context, pub EventPublisher, logger *slog.Logger, ev domain.Event) {
	if pub == nil {
		return
	}

	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("encode event failed", "tag", "EVENT_PUBLISH", "event_type", ev.EventType, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := pub.Publish(ctx, ev.EventType, []byte(ev.AggregateID), msg); err != nil {
		logger.Warn("event publish failed",
			"tag", "EVENT_PUBLISH",
			"event_id", ev.EventID,
			"event_type", ev.EventType,
			"error", err,
		)
	}
}
