package infra

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaProducer_Disabled(t *testing.T) {
	p := NewKafkaProducer("localhost:9092", false, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), "courtside.user.created", []byte("k"), []byte("{}")))
	assert.NoError(t, p.Close())
}

func TestKafkaProducer_PublishDoesNotWaitForBroker(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	// Nothing listens on port 1, so every write fails.
	w := &kafka.Writer{Addr: kafka.TCP("127.0.0.1:1"), MaxAttempts: 1}
	p := newKafkaProducer(w, logger, 200*time.Millisecond, 8)
	require.True(t, p.Enabled())

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Publish(context.Background(), "courtside.user.created", []byte("k"), []byte("{}")))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	require.NoError(t, p.Close())
	assert.Contains(t, buf.String(), `"tag":"EVENT_PUBLISH"`)
	assert.ErrorIs(t, p.Publish(context.Background(), "courtside.user.created", nil, nil), ErrProducerClosed)
	assert.NoError(t, p.Close())
}
