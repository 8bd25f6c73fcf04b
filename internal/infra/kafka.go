package infra

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	kafkaQueueSize    = 1024
	kafkaWriteTimeout = 5 * time.Second
)

var (
	// ErrProducerQueueFull is returned when the send queue has no room.
	ErrProducerQueueFull = errors.New("kafka producer queue full")
	// ErrProducerClosed is returned by Publish after Close.
	ErrProducerClosed = errors.New("kafka producer closed")
)

// KafkaProducer publishes domain events through a bounded queue drained by
// one background writer, so Publish never waits on the broker.
type KafkaProducer struct {
	writer       *kafka.Writer
	logger       *slog.Logger
	enabled      bool
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

// NewKafkaProducer creates a Kafka producer. If brokers is empty or disabled, writes are no-ops.
func NewKafkaProducer(brokers string, enabled bool, logger *slog.Logger) *KafkaProducer {
	if !enabled || brokers == "" {
		logger.Info("kafka producer disabled")
		return &KafkaProducer{enabled: false, logger: logger}
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("kafka producer initialized", "brokers", brokers)
	return newKafkaProducer(w, logger, kafkaWriteTimeout, kafkaQueueSize)
}

func newKafkaProducer(w *kafka.Writer, logger *slog.Logger, writeTimeout time.Duration, queueSize int) *KafkaProducer {
	p := &KafkaProducer{
		writer:       w,
		logger:       logger,
		enabled:      true,
		writeTimeout: writeTimeout,
		queue:        make(chan kafka.Message, queueSize),
		done:         make(chan struct{}),
	}
	go p.run()
	return p
}

// Enabled reports whether messages are actually sent.
func (p *KafkaProducer) Enabled() bool { return p.enabled }

// Publish queues a message for the given topic. No-op if disabled. It does
// not block: a full queue is reported as ErrProducerQueueFull.
func (p *KafkaProducer) Publish(_ context.Context, topic string, key, value []byte) error {
	if !p.enabled {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}

	select {
	case p.queue <- kafka.Message{Topic: topic, Key: key, Value: value}:
		return nil
	default:
		return ErrProducerQueueFull
	}
}

func (p *KafkaProducer) run() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			p.logger.Warn("event publish failed",
				"tag", "EVENT_PUBLISH",
				"topic", msg.Topic,
				"error", err,
			)
		}
	}
}

// Close stops accepting messages, drains the queue and shuts down the writer.
func (p *KafkaProducer) Close() error {
	if !p.enabled {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
