package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"

	"hotelier/pkg/logger"
)

// Consumer reads messages from one topic within a consumer group and feeds
// them to a MessageHandler. Messages that keep failing past the retry budget
// go to the dead-letter topic when one is configured, otherwise they are
// dropped with an error log so the partition does not stall.
type Consumer struct {
	reader     *kafka.Reader
	dlq        *Producer
	topic      string
	groupID    string
	maxRetries int
	handler    MessageHandler
	log        *logger.Logger
	closed     bool
	mu         sync.Mutex
	wg         sync.WaitGroup
}

func NewConsumer(cfg *Config, topic, groupID string, dlq *Producer, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       cfg.ConsumerMinBytes,
		MaxBytes:       cfg.ConsumerMaxBytes,
		MaxWait:        cfg.ConsumerMaxWait,
		CommitInterval: cfg.ConsumerCommitInterval,
		Logger:         kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka reader error", "topic", topic, "detail", fmt.Sprintf(msg, args...))
		}),
	})

	return &Consumer{
		reader:     reader,
		dlq:        dlq,
		topic:      topic,
		groupID:    groupID,
		maxRetries: cfg.ConsumerMaxRetries,
		handler:    handler,
		log:        log,
	}, nil
}

// Run consumes until ctx is cancelled or the consumer is closed.
func (c *Consumer) Run(ctx context.Context) {
	c.wg.Add(1)
	defer c.wg.Done()

	c.log.Info("Kafka consumer started", "topic", c.topic, "group_id", c.groupID)

	for {
		raw, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.log.Info("Kafka consumer stopping", "topic", c.topic)
				return
			}
			c.log.Error("Failed to fetch message", "topic", c.topic, "error", err)
			continue
		}

		msg := fromKafkaMessage(raw)
		c.process(ctx, msg)

		if err := c.reader.CommitMessages(ctx, raw); err != nil {
			c.log.Error("Failed to commit message",
				"topic", c.topic,
				"offset", raw.Offset,
				"error", err,
			)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg Message) {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err = c.handler(ctx, msg); err == nil {
			return
		}
		msg.IncrementRetryCount()
		c.log.Warn("Message handling failed",
			"topic", c.topic,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"attempt", attempt+1,
			"error", err,
		)
	}

	if c.dlq != nil {
		if dlqErr := c.dlq.PublishToDLQ(ctx, msg); dlqErr != nil {
			c.log.Error("Failed to publish message to DLQ",
				"topic", c.topic,
				"event_id", msg.GetEventID(),
				"error", dlqErr,
			)
		}
		return
	}

	c.log.Error("Dropping message after exhausting retries",
		"topic", c.topic,
		"event_id", msg.GetEventID(),
		"error", err,
	)
}

func fromKafkaMessage(raw kafka.Message) Message {
	headers := make(map[string]string, len(raw.Headers))
	for _, h := range raw.Headers {
		headers[h.Key] = string(h.Value)
	}

	return Message{
		Key:       string(raw.Key),
		Value:     raw.Value,
		Headers:   headers,
		Topic:     raw.Topic,
		Partition: raw.Partition,
		Offset:    raw.Offset,
		Timestamp: raw.Time,
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	err := c.reader.Close()
	c.wg.Wait()
	return err
}
