package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует доменные события для внешних потребителей (Notifier)
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaPublisher публикует события в Kafka
// Доставка at-least-once: потребители дедуплицируют по event_id
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logs   Logger
}

// NewKafkaPublisher создает publisher поверх kafka.Writer
// Ключ сообщения - appointmentId, чтобы события одной записи
// попадали в одну партицию и сохраняли порядок
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, logs Logger) *KafkaPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
	})

	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logs:   logs,
	}
}

// Publish отправляет событие в Kafka
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events.publisher: Publish - marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.AppointmentID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.publisher: Publish - write message: %w", err)
	}

	p.logs.Info("events.publisher: published %s event_id=%s appointment_id=%d", event.Type, event.EventID, event.AppointmentID)
	return nil
}

// Close закрывает соединение с Kafka
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher заглушка для окружений без Kafka (events.enabled = false)
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (p *NopPublisher) Publish(_ context.Context, _ Event) error {
	return nil
}

func (p *NopPublisher) Close() error {
	return nil
}
