package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// Config carries the broker settings shared by producers and consumers.
type Config struct {
	Brokers []string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	ProducerCompression  string // "none", "gzip", "snappy", "lz4", "zstd"

	ConsumerMinBytes       int
	ConsumerMaxBytes       int
	ConsumerMaxWait        time.Duration
	ConsumerCommitInterval time.Duration
	ConsumerMaxRetries     int
}

// DefaultConfig returns settings suitable for the booking event volumes this
// system sees; override fields before constructing producers/consumers.
func DefaultConfig(brokers []string) *Config {
	return &Config{
		Brokers:              brokers,
		ProducerMaxAttempts:  3,
		ProducerBatchTimeout: 100 * time.Millisecond,
		ProducerRequireAcks:  -1,
		ProducerCompression:  "snappy",

		ConsumerMinBytes:       1,
		ConsumerMaxBytes:       10 * 1024 * 1024,
		ConsumerMaxWait:        500 * time.Millisecond,
		ConsumerCommitInterval: time.Second,
		ConsumerMaxRetries:     3,
	}
}

// Producer wraps a kafka-go writer with header-aware publishing and an
// optional dead-letter topic.
type Producer struct {
	writer    *kafka.Writer
	dlqWriter *kafka.Writer
	topic     string
	dlqTopic  string
	closed    bool
	mu        sync.RWMutex
}

func NewProducer(cfg *Config, topic string, dlqTopic string) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	producer := &Producer{
		writer:   newWriter(cfg, topic),
		topic:    topic,
		dlqTopic: dlqTopic,
	}
	if dlqTopic != "" {
		producer.dlqWriter = newWriter(cfg, dlqTopic)
	}

	return producer, nil
}

func newWriter(cfg *Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.ProducerMaxAttempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
		RequiredAcks: mapRequiredAcks(cfg.ProducerRequireAcks),
		Compression:  mapCompression(cfg.ProducerCompression),
	}
}

func mapCompression(name string) kafka.Compression {
	switch name {
	case "gzip":
		return kafka.Compression(compress.Gzip)
	case "lz4":
		return kafka.Compression(compress.Lz4)
	case "zstd":
		return kafka.Compression(compress.Zstd)
	case "none":
		return 0
	default:
		return kafka.Compression(compress.Snappy)
	}
}

func mapRequiredAcks(acks int) kafka.RequiredAcks {
	switch acks {
	case 0:
		return kafka.RequireNone
	case 1:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("producer is closed")
	}
	p.mu.RUnlock()

	if msg.Value == nil {
		return fmt.Errorf("message value cannot be nil")
	}

	return p.writer.WriteMessages(ctx, toKafkaMessage(msg))
}

// PublishToDLQ sends a failed message to the dead-letter topic, recording the
// topic it originally came from.
func (p *Producer) PublishToDLQ(ctx context.Context, msg Message) error {
	if p.dlqWriter == nil {
		return fmt.Errorf("no DLQ topic configured")
	}

	msg.Headers[HeaderOriginalTopic] = p.topic
	return p.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg))
}

func toKafkaMessage(msg Message) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for key, value := range msg.Headers {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	return kafka.Message{
		Key:     []byte(msg.Key),
		Value:   msg.Value,
		Headers: headers,
		Time:    msg.Timestamp,
	}
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	if p.dlqWriter != nil {
		if err := p.dlqWriter.Close(); err != nil {
			return fmt.Errorf("failed to close DLQ writer: %w", err)
		}
	}
	return nil
}
