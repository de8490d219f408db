package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"example.com/extracurricular/internal/events"
)

const flushTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// Dispatcher drains the queue and delivers roster events to Kafka.
type Dispatcher struct {
	queue            *Queue
	producer         messageWriter
	topic            string
	pollInterval     time.Duration
	batchSize        int
	logger           *zap.Logger
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(queue *Queue, producer messageWriter, topic string, pollInterval time.Duration, batchSize int, logger *zap.Logger) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		queue:            queue,
		producer:         producer,
		topic:            topic,
		pollInterval:     pollInterval,
		batchSize:        batchSize,
		logger:           logger,
		shutdownComplete: make(chan struct{}),
	}
}

// Start launches the polling loop. It should be called in a goroutine.
// When ctx is cancelled the remaining queue is flushed before returning.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	for {
		select {
		case <-ctx.Done():
			d.flush()
			return
		case <-ticker.C:
		}

		for {
			n, err := d.processBatch(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				d.logger.Error("outbox dispatcher error", zap.Error(err))
			}
			if n < d.batchSize || err != nil {
				break
			}
		}
	}
}

// Wait waits until dispatcher stops.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for d.queue.Len() > 0 {
		if _, err := d.processBatch(ctx); err != nil {
			d.logger.Error("outbox flush failed", zap.Int("remaining", d.queue.Len()), zap.Error(err))
			return
		}
	}
}

// processBatch delivers one batch and reports how many events it took from the queue.
// Failed batches are counted and discarded.
func (d *Dispatcher) processBatch(ctx context.Context) (int, error) {
	batch := d.queue.drain(d.batchSize)
	if len(batch) == 0 {
		return 0, nil
	}

	start := time.Now()
	defer func() { batchDuration.Observe(time.Since(start).Seconds()) }()

	messages, err := encode(batch)
	if err != nil {
		failedCounter.Add(float64(len(batch)))
		return len(batch), err
	}

	if err := d.producer.WriteMessages(ctx, d.topic, messages...); err != nil {
		failedCounter.Add(float64(len(batch)))
		d.logger.Warn("outbox delivery failure",
			zap.String("topic", d.topic),
			zap.Int("events", len(batch)),
			zap.Error(err),
		)
		return len(batch), fmt.Errorf("deliver %d events: %w", len(batch), err)
	}

	deliveredCounter.Add(float64(len(batch)))
	return len(batch), nil
}

func encode(batch []events.RosterChanged) ([]kafka.Message, error) {
	out := make([]kafka.Message, 0, len(batch))
	for _, event := range batch {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("marshal event %s: %w", event.EventID, err)
		}
		out = append(out, kafka.Message{
			Key:   []byte(event.Activity),
			Value: payload,
			Time:  event.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(events.EventType)},
				{Key: "event_id", Value: []byte(event.EventID)},
			},
		})
	}
	return out, nil
}
